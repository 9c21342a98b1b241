package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewace/interviewace/internal/services"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) Overview(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Overview(userKey(c)))
}

func (h *ProgressHandler) Upgrade(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	t := h.svc.TrackerFor(userKey(c))
	t.UpgradeAccount()
	c.JSON(http.StatusOK, gin.H{
		"message":     "Account upgraded",
		"entitlement": t.Entitlement(),
	})
}

func (h *ProgressHandler) Reset(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	t := h.svc.TrackerFor(userKey(c))
	t.ResetUserData()
	c.JSON(http.StatusOK, gin.H{
		"message": "Progress reset",
		"skills":  t.Skills(),
	})
}
