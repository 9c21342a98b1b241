package interview

import (
	"sync"
	"time"

	"github.com/interviewace/interviewace/internal/utils"
)

type Phase string

const (
	PhasePreparing Phase = "preparing"
	PhaseAnswering Phase = "answering"
	PhaseFinished  Phase = "finished"
)

const (
	DefaultPrepDuration   = 30 * time.Second
	DefaultAnswerDuration = 120 * time.Second
)

type Config struct {
	PrepDuration   time.Duration
	AnswerDuration time.Duration
}

func (c Config) withDefaults() Config {
	if c.PrepDuration <= 0 {
		c.PrepDuration = DefaultPrepDuration
	}
	if c.AnswerDuration <= 0 {
		c.AnswerDuration = DefaultAnswerDuration
	}
	return c
}

// Snapshot is a value copy of the flow state, safe to hand to callers.
type Snapshot struct {
	Phase         Phase    `json:"phase"`
	QuestionIndex int      `json:"question_index"`
	QuestionCount int      `json:"question_count"`
	Question      string   `json:"question,omitempty"`
	PendingAnswer string   `json:"pending_answer,omitempty"`
	Answers       []string `json:"answers"`
	TimeRemaining int64    `json:"time_remaining_seconds"`
	TimeExpired   bool     `json:"time_expired"`
}

// Flow drives one interview through preparing -> answering -> finished.
// Exactly one countdown is live at a time; every transition stops the
// previous timer and bumps the generation counter, so a timer that already
// fired for an older phase is ignored when its callback finally runs.
//
// The answer countdown reaching zero is a signal only (TimeExpired); it never
// commits or skips the answer on its own.
type Flow struct {
	mu  sync.Mutex
	cfg Config

	questions []string
	answers   []string
	idx       int
	phase     Phase
	pending   string
	expired   bool

	deadline   time.Time
	timer      *time.Timer
	gen        uint64
	startedAt  time.Time
	finishedAt time.Time

	onChange func(Snapshot)
}

// NewFlow starts the preparation countdown for the first question
// immediately. onChange (optional) observes every phase transition.
func NewFlow(questions []string, cfg Config, onChange func(Snapshot)) *Flow {
	f := &Flow{
		cfg:       cfg.withDefaults(),
		questions: questions,
		answers:   make([]string, 0, len(questions)),
		phase:     PhasePreparing,
		startedAt: time.Now().UTC(),
		onChange:  onChange,
	}
	if len(questions) == 0 {
		f.phase = PhaseFinished
		f.finishedAt = f.startedAt
		return f
	}
	f.mu.Lock()
	f.armLocked(f.cfg.PrepDuration, f.prepExpiredLocked)
	f.mu.Unlock()
	return f
}

// SkipPreparation moves straight to answering. No-op outside preparing.
func (f *Flow) SkipPreparation() Snapshot {
	f.mu.Lock()
	changed := false
	if f.phase == PhasePreparing {
		f.enterAnsweringLocked()
		changed = true
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()
	if changed {
		f.notify(snap)
	}
	return snap
}

// SetAnswer replaces the pending answer with typed text.
func (f *Flow) SetAnswer(text string) {
	f.mu.Lock()
	if f.phase != PhaseFinished {
		f.pending = text
	}
	f.mu.Unlock()
}

// AppendTranscript adds a transcribed speech chunk to the pending answer.
// Transcripts and typed text are equivalent downstream.
func (f *Flow) AppendTranscript(chunk string) {
	if chunk == "" {
		return
	}
	f.mu.Lock()
	if f.phase != PhaseFinished {
		if f.pending != "" {
			f.pending += " "
		}
		f.pending += chunk
	}
	f.mu.Unlock()
}

// Advance commits the pending answer at the current index and moves on:
// next question's preparation phase, or finished after the last one.
// Advancing out of preparing commits whatever answer has been set so far.
func (f *Flow) Advance() (Snapshot, error) {
	f.mu.Lock()
	if f.phase == PhaseFinished {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, utils.E(utils.CodeConflict, "Flow.Advance", "interview already finished", nil)
	}

	f.answers = append(f.answers, f.pending)
	f.pending = ""

	if f.idx >= len(f.questions)-1 {
		f.finishLocked()
	} else {
		f.idx++
		f.phase = PhasePreparing
		f.expired = false
		f.armLocked(f.cfg.PrepDuration, f.prepExpiredLocked)
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)
	return snap, nil
}

// Result returns the collected answers once the flow is finished.
func (f *Flow) Result() (questions, answers []string, durationSeconds int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != PhaseFinished {
		return nil, nil, 0, utils.E(utils.CodeConflict, "Flow.Result", "interview not finished", nil)
	}
	dur := int64(f.finishedAt.Sub(f.startedAt).Seconds())
	if dur < 0 {
		dur = 0
	}
	return append([]string(nil), f.questions...), append([]string(nil), f.answers...), dur, nil
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Stop cancels any live countdown. Used on teardown; the flow stays usable
// for reads.
func (f *Flow) Stop() {
	f.mu.Lock()
	f.gen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()
}

func (f *Flow) enterAnsweringLocked() {
	f.phase = PhaseAnswering
	f.expired = false
	f.armLocked(f.cfg.AnswerDuration, f.answerExpiredLocked)
}

func (f *Flow) finishLocked() {
	f.phase = PhaseFinished
	f.finishedAt = time.Now().UTC()
	f.gen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.deadline = time.Time{}
}

func (f *Flow) prepExpiredLocked() {
	f.enterAnsweringLocked()
}

func (f *Flow) answerExpiredLocked() {
	// signal only: the answer stays open until the client advances
	f.expired = true
	f.deadline = time.Time{}
}

// armLocked replaces the live countdown. The generation check keeps a timer
// that fired just before Stop from mutating a later phase.
func (f *Flow) armLocked(d time.Duration, fn func()) {
	f.gen++
	gen := f.gen
	if f.timer != nil {
		f.timer.Stop()
	}
	f.deadline = time.Now().Add(d)
	f.timer = time.AfterFunc(d, func() {
		f.mu.Lock()
		if gen != f.gen {
			f.mu.Unlock()
			return
		}
		fn()
		snap := f.snapshotLocked()
		f.mu.Unlock()
		f.notify(snap)
	})
}

func (f *Flow) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:         f.phase,
		QuestionIndex: f.idx,
		QuestionCount: len(f.questions),
		PendingAnswer: f.pending,
		Answers:       append([]string(nil), f.answers...),
		TimeExpired:   f.expired,
	}
	if f.phase != PhaseFinished && f.idx < len(f.questions) {
		snap.Question = f.questions[f.idx]
	}
	if !f.deadline.IsZero() {
		if left := time.Until(f.deadline); left > 0 {
			snap.TimeRemaining = int64(left.Seconds())
		}
	}
	return snap
}

func (f *Flow) notify(snap Snapshot) {
	if f.onChange != nil {
		f.onChange(snap)
	}
}
