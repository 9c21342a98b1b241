package memory

import (
	"context"
	"sync"
	"time"

	"github.com/interviewace/interviewace/internal/models"
	"github.com/interviewace/interviewace/internal/utils"
)

// InterviewRepository stores interview sessions in process memory. Lost on
// restart; clients must not rely on durability here.
type InterviewRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	GetByID(ctx context.Context, id string) (*models.InterviewSession, error)
	ListByUser(ctx context.Context, userID string) ([]models.InterviewSession, error)
	// SetResult marks the session completed exactly once; a second call
	// reports Conflict.
	SetResult(ctx context.Context, id string, res *models.SessionResult, completedAt time.Time) error
}

type interviewRepo struct {
	mu     sync.RWMutex
	byID   map[string]models.InterviewSession
	byUser map[string][]string // newest first
}

func NewInterviewRepo() InterviewRepository {
	return &interviewRepo{
		byID:   make(map[string]models.InterviewSession),
		byUser: make(map[string][]string),
	}
}

func (r *interviewRepo) Create(_ context.Context, s *models.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[s.ID]; exists {
		return utils.E(utils.CodeConflict, "InterviewRepo.Create", "session id already exists", nil)
	}
	r.byID[s.ID] = *s
	r.byUser[s.UserID] = append([]string{s.ID}, r.byUser[s.UserID]...)
	return nil
}

func (r *interviewRepo) GetByID(_ context.Context, id string) (*models.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &s, nil
}

func (r *interviewRepo) ListByUser(_ context.Context, userID string) ([]models.InterviewSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byUser[userID]
	out := make([]models.InterviewSession, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *interviewRepo) SetResult(_ context.Context, id string, res *models.SessionResult, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	if s.Completed {
		return utils.E(utils.CodeConflict, "InterviewRepo.SetResult", "session already completed", nil)
	}
	s.Completed = true
	s.CompletedAt = &completedAt
	s.Result = res
	r.byID[id] = s
	return nil
}
