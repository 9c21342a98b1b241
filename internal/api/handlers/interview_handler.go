package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/interviewace/interviewace/internal/interview"
	"github.com/interviewace/interviewace/internal/models"
	"github.com/interviewace/interviewace/internal/questions"
	"github.com/interviewace/interviewace/internal/services"
	"github.com/interviewace/interviewace/internal/utils"
)

type InterviewHandler struct {
	svc services.InterviewService
}

func NewInterviewHandler(svc services.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type CreateSessionRequest struct {
	Mode     models.InterviewMode `json:"mode"` // technical|behavioral
	Category string               `json:"category"`
	Role     string               `json:"role"`
	Level    string               `json:"level"`
	Count    int                  `json:"count"`
}

type SessionResponse struct {
	Message string                   `json:"message,omitempty"`
	Session *models.InterviewSession `json:"session"`
	State   *interview.Snapshot      `json:"state,omitempty"`
}

func (h *InterviewHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Create", "invalid request body", err))
		return
	}

	session, err := h.svc.Create(c.Request.Context(), userID, userKey(c), services.CreateInterviewParams{
		Mode:     req.Mode,
		Category: req.Category,
		Role:     req.Role,
		Level:    req.Level,
		Count:    req.Count,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	snap, _ := h.svc.Snapshot(c.Request.Context(), session.ID)
	c.JSON(http.StatusCreated, SessionResponse{
		Message: "Interview session created",
		Session: session,
		State:   &snap,
	})
}

func (h *InterviewHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessions, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	session, ok := h.authorize(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *InterviewHandler) State(c *gin.Context) {
	session, ok := h.authorize(c)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context(), session.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *InterviewHandler) SkipPreparation(c *gin.Context) {
	session, ok := h.authorize(c)
	if !ok {
		return
	}

	snap, err := h.svc.SkipPreparation(c.Request.Context(), session.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

type SubmitResponseRequest struct {
	Response string `json:"response"`
}

func (h *InterviewHandler) SubmitResponse(c *gin.Context) {
	session, ok := h.authorize(c)
	if !ok {
		return
	}

	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.SubmitResponse", "invalid request body", err))
		return
	}

	snap, err := h.svc.SubmitResponse(c.Request.Context(), session.ID, req.Response)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Response submitted",
		"state":   snap,
	})
}

func (h *InterviewHandler) Complete(c *gin.Context) {
	session, ok := h.authorize(c)
	if !ok {
		return
	}

	completed, err := h.svc.Complete(c.Request.Context(), session.ID, userKey(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{
		Message: "Interview session completed",
		Session: completed,
	})
}

// Questions previews a catalog selection without starting a session.
func (h *InterviewHandler) Questions(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	count, _ := strconv.Atoi(c.Query("count"))
	qs := h.svc.PreviewQuestions(models.InterviewMode(c.Query("mode")), questions.Params{
		Category: c.Query("category"),
		Role:     c.Query("role"),
		Level:    c.Query("level"),
		Count:    count,
	})
	c.JSON(http.StatusOK, gin.H{"questions": qs})
}

// Options returns the selectable categories and roles for the setup screen.
func (h *InterviewHandler) Options(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"technical_categories": questions.TechnicalCategories(),
		"roles":                questions.Roles(),
	})
}

// authorize loads the session and enforces ownership.
func (h *InterviewHandler) authorize(c *gin.Context) (*models.InterviewSession, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}

	session, err := h.svc.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if session.UserID != userID {
		writeError(c, utils.E(utils.CodeForbidden, "InterviewHandler", "forbidden", nil))
		return nil, false
	}
	return session, true
}
