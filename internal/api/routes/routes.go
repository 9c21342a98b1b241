package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewace/interviewace/internal/api/handlers"
	"github.com/interviewace/interviewace/internal/api/middleware"
	"github.com/interviewace/interviewace/internal/auth"
)

type Deps struct {
	Tokens    *auth.TokenManager
	User      *handlers.UserHandler
	Interview *handlers.InterviewHandler
	Progress  *handlers.ProgressHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "InterviewAce API is running"})
	})

	api := r.Group("/api")

	users := api.Group("/users")
	users.POST("/register", d.User.Register)
	users.POST("/login", d.User.Login)

	// Protected routes (JWT)
	authed := api.Group("/")
	authed.Use(middleware.JWTAuth(d.Tokens))

	authed.POST("/users/logout", d.User.Logout)
	authed.GET("/users/profile", d.User.Profile)

	authed.POST("/interviews/sessions", d.Interview.Create)
	authed.GET("/interviews/sessions", d.Interview.List)
	authed.GET("/interviews/sessions/:session_id", d.Interview.Get)
	authed.GET("/interviews/sessions/:session_id/state", d.Interview.State)
	authed.POST("/interviews/sessions/:session_id/prepare/skip", d.Interview.SkipPreparation)
	authed.POST("/interviews/sessions/:session_id/responses", d.Interview.SubmitResponse)
	authed.PUT("/interviews/sessions/:session_id/complete", d.Interview.Complete)
	authed.GET("/interviews/questions", d.Interview.Questions)
	authed.GET("/interviews/options", d.Interview.Options)

	authed.GET("/progress", d.Progress.Overview)
	authed.POST("/progress/upgrade", d.Progress.Upgrade)
	authed.POST("/progress/reset", d.Progress.Reset)

	// WebSocket
	ws := r.Group("/ws")
	ws.Use(middleware.JWTAuth(d.Tokens))
	ws.GET("/interviews/:session_id", d.WS.InterviewWS)
}
