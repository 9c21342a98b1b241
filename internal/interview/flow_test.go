package interview

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewace/interviewace/internal/utils"
)

// long durations so no timer fires unless a test wants it to
var idleCfg = Config{PrepDuration: time.Hour, AnswerDuration: time.Hour}

func TestFlowHappyPath(t *testing.T) {
	f := NewFlow([]string{"q1", "q2"}, idleCfg, nil)
	defer f.Stop()

	snap := f.Snapshot()
	assert.Equal(t, PhasePreparing, snap.Phase)
	assert.Equal(t, 0, snap.QuestionIndex)
	assert.Equal(t, "q1", snap.Question)

	snap = f.SkipPreparation()
	assert.Equal(t, PhaseAnswering, snap.Phase)

	f.SetAnswer("first answer")
	snap, err := f.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhasePreparing, snap.Phase)
	assert.Equal(t, 1, snap.QuestionIndex)
	assert.Equal(t, "q2", snap.Question)

	f.SkipPreparation()
	f.AppendTranscript("second")
	f.AppendTranscript("answer")
	snap, err = f.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, snap.Phase)

	questions, answers, _, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, questions)
	assert.Equal(t, []string{"first answer", "second answer"}, answers)
}

func TestFlowAdvanceCommitsAtIndex(t *testing.T) {
	f := NewFlow([]string{"q1", "q2", "q3"}, idleCfg, nil)
	defer f.Stop()

	// advancing straight out of preparing commits the (empty) answer
	_, err := f.Advance()
	require.NoError(t, err)

	f.SkipPreparation()
	f.SetAnswer("middle")
	_, err = f.Advance()
	require.NoError(t, err)

	_, err = f.Advance()
	require.NoError(t, err)

	_, answers, _, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"", "middle", ""}, answers)
}

func TestFlowAdvanceAfterFinished(t *testing.T) {
	f := NewFlow([]string{"q1"}, idleCfg, nil)
	defer f.Stop()

	_, err := f.Advance()
	require.NoError(t, err)

	_, err = f.Advance()
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestFlowResultBeforeFinished(t *testing.T) {
	f := NewFlow([]string{"q1"}, idleCfg, nil)
	defer f.Stop()

	_, _, _, err := f.Result()
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestFlowEmptyQuestionsFinishImmediately(t *testing.T) {
	f := NewFlow(nil, idleCfg, nil)
	assert.Equal(t, PhaseFinished, f.Snapshot().Phase)

	questions, answers, _, err := f.Result()
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.Empty(t, answers)
}

func TestFlowPrepExpiryEntersAnswering(t *testing.T) {
	f := NewFlow([]string{"q1"}, Config{PrepDuration: 20 * time.Millisecond, AnswerDuration: time.Hour}, nil)
	defer f.Stop()

	require.Eventually(t, func() bool {
		return f.Snapshot().Phase == PhaseAnswering
	}, 2*time.Second, 5*time.Millisecond)
}

func TestFlowAnswerExpiryIsSignalOnly(t *testing.T) {
	f := NewFlow([]string{"q1"}, Config{PrepDuration: time.Hour, AnswerDuration: 20 * time.Millisecond}, nil)
	defer f.Stop()

	f.SkipPreparation()

	require.Eventually(t, func() bool {
		return f.Snapshot().TimeExpired
	}, 2*time.Second, 5*time.Millisecond)

	// still answering: expiry never force-advances
	snap := f.Snapshot()
	assert.Equal(t, PhaseAnswering, snap.Phase)

	f.SetAnswer("late but accepted")
	snap, err := f.Advance()
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, snap.Phase)
}

func TestFlowStaleTimerNeverFires(t *testing.T) {
	var mu sync.Mutex
	var phases []Phase
	f := NewFlow([]string{"q1"}, Config{PrepDuration: 30 * time.Millisecond, AnswerDuration: time.Hour},
		func(s Snapshot) {
			mu.Lock()
			phases = append(phases, s.Phase)
			mu.Unlock()
		})
	defer f.Stop()

	// skip before the prep timer fires; its callback must be a no-op
	f.SkipPreparation()
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, PhaseAnswering, f.Snapshot().Phase)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Phase{PhaseAnswering}, phases)
}

func TestFlowSkipOutsidePreparingIsNoop(t *testing.T) {
	f := NewFlow([]string{"q1"}, idleCfg, nil)
	defer f.Stop()

	f.SkipPreparation()
	snap := f.SkipPreparation()
	assert.Equal(t, PhaseAnswering, snap.Phase)
}
