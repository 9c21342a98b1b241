package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/interviewace/interviewace/internal/models"
	"github.com/interviewace/interviewace/internal/utils"
)

// UserRepository is the demo user registry. Process memory only; users are
// gone on restart by design.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type userRepo struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string // email -> id
}

// NewUserRepo builds an empty registry. The store is constructed in main and
// injected; nothing here is package-global.
func NewUserRepo() UserRepository {
	return &userRepo{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepo) Create(_ context.Context, u *models.User) error {
	email := normalizeEmail(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return utils.E(utils.CodeConflict, "UserRepo.Create", "user already exists", nil)
	}
	r.byID[u.ID] = *u
	r.byEmail[email] = u.ID
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, utils.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
