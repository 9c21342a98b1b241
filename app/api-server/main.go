package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/interviewace/interviewace/config"
	"github.com/interviewace/interviewace/internal/api/handlers"
	"github.com/interviewace/interviewace/internal/api/middleware"
	"github.com/interviewace/interviewace/internal/api/routes"
	"github.com/interviewace/interviewace/internal/auth"
	"github.com/interviewace/interviewace/internal/interview"
	"github.com/interviewace/interviewace/internal/keyvalue"
	"github.com/interviewace/interviewace/internal/logger"
	"github.com/interviewace/interviewace/internal/questions"
	"github.com/interviewace/interviewace/internal/repositories/memory"
	"github.com/interviewace/interviewace/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("interviewace-api")

	// Progress records go to redis when configured, otherwise stay in
	// process memory. Either way a storage failure degrades to defaults.
	var kv keyvalue.Store
	if rdb, err := config.NewRedis(cfg.RedisAddr); err != nil {
		log.WithError(err).Warn("redis unavailable, using in-memory progress store")
		kv = keyvalue.NewMemoryStore()
	} else if rdb != nil {
		log.Info("redis connected")
		kv = keyvalue.NewRedisStore(rdb)
	} else {
		kv = keyvalue.NewMemoryStore()
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret)
	bus := auth.NewBroadcaster()

	userRepo := memory.NewUserRepo()
	interviewRepo := memory.NewInterviewRepo()

	progressSvc := services.NewProgressService(kv, log, nil)
	progressSvc.Attach(bus)
	defer progressSvc.Close()

	userSvc := services.NewUserService(userRepo, tokens, bus)
	interviewSvc := services.NewInterviewService(
		interviewRepo,
		questions.NewSource(nil),
		progressSvc,
		log,
		interview.Config{
			PrepDuration:   cfg.PrepDuration,
			AnswerDuration: cfg.AnswerDuration,
		},
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:    tokens,
		User:      handlers.NewUserHandler(userSvc),
		Interview: handlers.NewInterviewHandler(interviewSvc),
		Progress:  handlers.NewProgressHandler(progressSvc),
		WS:        handlers.NewWSHandler(interviewSvc),
	})

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
