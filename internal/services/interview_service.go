package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/interviewace/interviewace/internal/feedback"
	"github.com/interviewace/interviewace/internal/interview"
	"github.com/interviewace/interviewace/internal/models"
	"github.com/interviewace/interviewace/internal/progress"
	"github.com/interviewace/interviewace/internal/questions"
	"github.com/interviewace/interviewace/internal/repositories/memory"
	"github.com/interviewace/interviewace/internal/speech"
	"github.com/interviewace/interviewace/internal/utils"
)

type CreateInterviewParams struct {
	Mode     models.InterviewMode
	Category string
	Role     string
	Level    string
	Count    int
}

type InterviewService interface {
	Create(ctx context.Context, userID, userKey string, p CreateInterviewParams) (*models.InterviewSession, error)
	List(ctx context.Context, userID string) ([]models.InterviewSession, error)
	Get(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	Snapshot(ctx context.Context, sessionID string) (interview.Snapshot, error)
	SkipPreparation(ctx context.Context, sessionID string) (interview.Snapshot, error)
	SubmitResponse(ctx context.Context, sessionID, text string) (interview.Snapshot, error)
	FeedTranscript(ctx context.Context, sessionID, chunk string) (interview.Snapshot, error)
	SetRecording(ctx context.Context, sessionID string, on bool) error
	Complete(ctx context.Context, sessionID, userKey string) (*models.InterviewSession, error)
	SubscribeSnapshots(sessionID string) (<-chan interview.Snapshot, func(), error)
	PreviewQuestions(mode models.InterviewMode, p questions.Params) []string
}

// runtime is the in-process half of a live session: the flow state machine
// and the speech accumulator. It is dropped on completion; there is no
// resume after a restart.
type runtime struct {
	flow *interview.Flow
	tr   *speech.Transcriber

	mu        sync.Mutex
	nextSub   int
	listeners map[int]chan interview.Snapshot
}

func (rt *runtime) broadcast(snap interview.Snapshot) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, ch := range rt.listeners {
		select {
		case ch <- snap:
		default: // slow listener, drop
		}
	}
}

type interviewService struct {
	repo     memory.InterviewRepository
	source   *questions.Source
	progress *ProgressService
	log      *logrus.Logger
	cfg      interview.Config

	mu       sync.Mutex
	runtimes map[string]*runtime
}

func NewInterviewService(
	repo memory.InterviewRepository,
	source *questions.Source,
	prog *ProgressService,
	log *logrus.Logger,
	cfg interview.Config,
) InterviewService {
	return &interviewService{
		repo:     repo,
		source:   source,
		progress: prog,
		log:      log,
		cfg:      cfg,
		runtimes: make(map[string]*runtime),
	}
}

func (s *interviewService) Create(ctx context.Context, userID, userKey string, p CreateInterviewParams) (*models.InterviewSession, error) {
	const op = "InterviewService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if ent := s.progress.TrackerFor(userKey).Entitlement(); ent.IsTrialExpired {
		return nil, utils.E(utils.CodeForbidden, op, "trial attempts exhausted, upgrade to continue", nil)
	}

	mode := p.Mode
	if mode != models.ModeTechnical {
		mode = models.ModeBehavioral
	}

	// missing role/level or an unknown category fall back inside the source
	qs := s.source.Questions(mode, questions.Params{
		Category: p.Category,
		Role:     p.Role,
		Level:    p.Level,
		Count:    p.Count,
	})

	session := &models.InterviewSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mode:      mode,
		Category:  p.Category,
		Role:      p.Role,
		Level:     p.Level,
		Questions: qs,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}

	rt := &runtime{
		tr:        speech.New(),
		listeners: make(map[int]chan interview.Snapshot),
	}
	rt.flow = interview.NewFlow(qs, s.cfg, rt.broadcast)
	rt.tr.Start()

	s.mu.Lock()
	s.runtimes[session.ID] = rt
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"mode":       mode,
		"questions":  len(qs),
	}).Info("interview session created")
	return session, nil
}

func (s *interviewService) List(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	const op = "InterviewService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sessions", err)
	}
	return out, nil
}

func (s *interviewService) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	const op = "InterviewService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	out, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}
	return out, nil
}

func (s *interviewService) Snapshot(_ context.Context, sessionID string) (interview.Snapshot, error) {
	rt, err := s.runtime("InterviewService.Snapshot", sessionID)
	if err != nil {
		return interview.Snapshot{}, err
	}
	return rt.flow.Snapshot(), nil
}

func (s *interviewService) SkipPreparation(_ context.Context, sessionID string) (interview.Snapshot, error) {
	rt, err := s.runtime("InterviewService.SkipPreparation", sessionID)
	if err != nil {
		return interview.Snapshot{}, err
	}
	return rt.flow.SkipPreparation(), nil
}

// SubmitResponse commits an answer and advances the flow. Non-empty text
// replaces whatever transcript chunks had accumulated; empty text commits the
// pending (possibly spoken) answer as-is.
func (s *interviewService) SubmitResponse(_ context.Context, sessionID, text string) (interview.Snapshot, error) {
	rt, err := s.runtime("InterviewService.SubmitResponse", sessionID)
	if err != nil {
		return interview.Snapshot{}, err
	}
	if text != "" {
		rt.flow.SetAnswer(text)
	}
	snap, err := rt.flow.Advance()
	if err != nil {
		return snap, err
	}
	rt.tr.Reset()
	return snap, nil
}

func (s *interviewService) FeedTranscript(_ context.Context, sessionID, chunk string) (interview.Snapshot, error) {
	rt, err := s.runtime("InterviewService.FeedTranscript", sessionID)
	if err != nil {
		return interview.Snapshot{}, err
	}
	if rt.tr.Feed(chunk) {
		rt.flow.AppendTranscript(chunk)
	}
	return rt.flow.Snapshot(), nil
}

func (s *interviewService) SetRecording(_ context.Context, sessionID string, on bool) error {
	rt, err := s.runtime("InterviewService.SetRecording", sessionID)
	if err != nil {
		return err
	}
	if on {
		rt.tr.Start()
	} else {
		rt.tr.Stop()
	}
	return nil
}

// Complete turns a finished flow into feedback and a progress record.
// Completing an already-completed session returns the stored result.
func (s *interviewService) Complete(ctx context.Context, sessionID, userKey string) (*models.InterviewSession, error) {
	const op = "InterviewService.Complete"

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return session, nil
	}

	rt, err := s.runtime(op, sessionID)
	if err != nil {
		return nil, err
	}

	qs, answers, duration, err := rt.flow.Result()
	if err != nil {
		return nil, err
	}

	result := feedback.Summarize(qs, answers)
	result.DurationSeconds = duration

	completedAt := time.Now().UTC()
	if err := s.repo.SetResult(ctx, sessionID, result, completedAt); err != nil {
		// a concurrent Complete won the write: hand back its stored result
		// without recording progress twice
		if utils.IsCode(err, utils.CodeConflict) {
			return s.Get(ctx, sessionID)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to store result", err)
	}

	s.progress.TrackerFor(userKey).AddSession(progress.SessionInput{
		Role:           session.Role,
		Type:           session.Mode,
		Category:       session.Category,
		Score:          result.OverallScore,
		QuestionsCount: len(qs),
		Duration:       duration,
	})

	s.mu.Lock()
	delete(s.runtimes, sessionID)
	s.mu.Unlock()
	rt.flow.Stop()

	session.Completed = true
	session.CompletedAt = &completedAt
	session.Result = result

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"score":      result.OverallScore,
	}).Info("interview session completed")
	return session, nil
}

func (s *interviewService) SubscribeSnapshots(sessionID string) (<-chan interview.Snapshot, func(), error) {
	rt, err := s.runtime("InterviewService.SubscribeSnapshots", sessionID)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan interview.Snapshot, 8)
	rt.mu.Lock()
	id := rt.nextSub
	rt.nextSub++
	rt.listeners[id] = ch
	rt.mu.Unlock()

	cancel := func() {
		rt.mu.Lock()
		delete(rt.listeners, id)
		rt.mu.Unlock()
	}
	return ch, cancel, nil
}

func (s *interviewService) PreviewQuestions(mode models.InterviewMode, p questions.Params) []string {
	if mode != models.ModeTechnical {
		mode = models.ModeBehavioral
	}
	return s.source.Questions(mode, p)
}

func (s *interviewService) runtime(op, sessionID string) (*runtime, error) {
	s.mu.Lock()
	rt, ok := s.runtimes[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "no live interview for session", nil)
	}
	return rt, nil
}
