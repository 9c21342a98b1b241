package services

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/interviewace/interviewace/internal/auth"
	"github.com/interviewace/interviewace/internal/keyvalue"
	"github.com/interviewace/interviewace/internal/models"
	"github.com/interviewace/interviewace/internal/progress"
)

// ProgressService holds one progress tracker per user namespace. Trackers are
// created lazily and load their user's persisted records on first use, so
// switching accounts never leaks another namespace's state.
type ProgressService struct {
	kv  keyvalue.Store
	log *logrus.Logger

	mu       sync.Mutex
	trackers map[string]*progress.Tracker
	rng      progress.Rand

	unsubscribe func()
}

func NewProgressService(kv keyvalue.Store, log *logrus.Logger, rng progress.Rand) *ProgressService {
	return &ProgressService{
		kv:       kv,
		log:      log,
		trackers: make(map[string]*progress.Tracker),
		rng:      rng,
	}
}

// Attach reloads the active namespace whenever the auth layer announces a
// user change. Reloading the same user twice is harmless.
func (s *ProgressService) Attach(b *auth.Broadcaster) {
	s.Close()
	s.unsubscribe = b.Subscribe(func(userKey string) {
		s.TrackerFor(userKey).SetUser(userKeyOr(userKey))
	})
}

func (s *ProgressService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// TrackerFor returns the tracker for a user key, creating it on first use.
// An empty key maps to the shared guest namespace.
func (s *ProgressService) TrackerFor(userKey string) *progress.Tracker {
	key := userKeyOr(userKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.trackers[key]; ok {
		return t
	}
	opts := []progress.Option{progress.WithUserKey(key)}
	if s.rng != nil {
		opts = append(opts, progress.WithRand(s.rng))
	}
	t := progress.NewTracker(s.kv, s.log, opts...)
	s.trackers[key] = t
	return t
}

// Overview bundles what the dashboard needs in one call.
type Overview struct {
	Sessions    []models.CompletedSession `json:"sessions"`
	Skills      []models.SkillScore       `json:"skills"`
	Entitlement models.Entitlement        `json:"entitlement"`
}

func (s *ProgressService) Overview(userKey string) Overview {
	t := s.TrackerFor(userKey)
	return Overview{
		Sessions:    t.Sessions(),
		Skills:      t.Skills(),
		Entitlement: t.Entitlement(),
	}
}

func userKeyOr(key string) string {
	if key == "" {
		return progress.DefaultUserKey
	}
	return key
}
