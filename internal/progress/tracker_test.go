package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewace/interviewace/internal/auth"
	"github.com/interviewace/interviewace/internal/keyvalue"
	"github.com/interviewace/interviewace/internal/models"
)

// scriptRand replays a fixed sequence so skill updates are exact.
type scriptRand struct {
	vals []float64
	i    int
}

func (r *scriptRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func newTestTracker(t *testing.T, opts ...Option) *Tracker {
	t.Helper()
	return NewTracker(keyvalue.NewMemoryStore(), nil, opts...)
}

func behavioralSession(score float64) SessionInput {
	return SessionInput{
		Role:           "software-engineer",
		Type:           models.ModeBehavioral,
		Score:          score,
		QuestionsCount: 5,
		Duration:       600,
	}
}

func TestDefaults(t *testing.T) {
	tr := newTestTracker(t)

	assert.Empty(t, tr.Sessions())
	ent := tr.Entitlement()
	assert.Equal(t, 3, ent.RemainingAttempts)
	assert.False(t, ent.IsPremium)
	assert.False(t, ent.IsTrialExpired)

	skills := tr.Skills()
	require.Len(t, skills, 4)
	names := []string{"Communication", "Problem Solving", "Technical Knowledge", "Confidence"}
	for i, s := range skills {
		assert.Equal(t, names[i], s.Name)
		assert.Zero(t, s.Score)
		assert.Equal(t, models.SkillUnchanged, s.LastChange)
	}
}

func TestAddSessionDecrementsAttempts(t *testing.T) {
	tr := newTestTracker(t)

	tr.AddSession(behavioralSession(4))
	assert.Equal(t, 2, tr.Entitlement().RemainingAttempts)

	tr.AddSession(behavioralSession(4))
	tr.AddSession(behavioralSession(4))
	ent := tr.Entitlement()
	assert.Equal(t, 0, ent.RemainingAttempts)
	assert.True(t, ent.IsTrialExpired)

	// floored at zero
	tr.AddSession(behavioralSession(4))
	assert.Equal(t, 0, tr.Entitlement().RemainingAttempts)
}

func TestAddSessionOrdering(t *testing.T) {
	tr := newTestTracker(t)

	first := tr.AddSession(behavioralSession(2))
	second := tr.AddSession(behavioralSession(3))
	third := tr.AddSession(behavioralSession(4))

	sessions := tr.Sessions()
	require.Len(t, sessions, 3)
	assert.Equal(t, third.ID, sessions[0].ID)
	assert.Equal(t, second.ID, sessions[1].ID)
	assert.Equal(t, first.ID, sessions[2].ID)
}

func TestUpgradeAccount(t *testing.T) {
	tr := newTestTracker(t)

	tr.UpgradeAccount()
	ent := tr.Entitlement()
	assert.True(t, ent.IsPremium)
	assert.False(t, ent.IsTrialExpired)

	// premium never decrements and never expires
	for i := 0; i < 5; i++ {
		tr.AddSession(behavioralSession(4))
	}
	ent = tr.Entitlement()
	assert.Equal(t, premiumAttempts, ent.RemainingAttempts)
	assert.False(t, ent.IsTrialExpired)
}

func TestResetUserData(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddSession(behavioralSession(5))
	tr.UpgradeAccount()

	tr.ResetUserData()

	assert.Empty(t, tr.Sessions())
	ent := tr.Entitlement()
	assert.Equal(t, 3, ent.RemainingAttempts)
	assert.False(t, ent.IsPremium)
	for _, s := range tr.Skills() {
		assert.Zero(t, s.Score)
		assert.Equal(t, models.SkillUnchanged, s.LastChange)
	}
}

func TestResetUserDataDropsPersistedRecords(t *testing.T) {
	kv := keyvalue.NewMemoryStore()
	ctx := context.Background()

	tr := NewTracker(kv, nil, WithUserKey("alice@example.com"))
	tr.AddSession(behavioralSession(4))

	var remaining int
	hit, err := kv.GetJSON(ctx, "alice@example.com-remaining_attempts", &remaining)
	require.NoError(t, err)
	require.True(t, hit)

	tr.ResetUserData()

	for _, key := range []string{
		"alice@example.com-interview_sessions",
		"alice@example.com-remaining_attempts",
		"alice@example.com-is_premium",
		"alice@example.com-skills",
	} {
		var raw any
		hit, err := kv.GetJSON(ctx, key, &raw)
		require.NoError(t, err)
		assert.False(t, hit, "record %q must be gone after reset", key)
	}

	// a fresh tracker over the same store starts clean
	again := NewTracker(kv, nil, WithUserKey("alice@example.com"))
	assert.Empty(t, again.Sessions())
	assert.Equal(t, 3, again.Entitlement().RemainingAttempts)
}

func TestSkillUpdateExact(t *testing.T) {
	// per skill: affected-check then delta draw; 0.9 affects,
	// delta = (5/5)*(0.9*0.4+0.8) = 1.16 -> 1.2 after rounding
	tr := newTestTracker(t, WithRand(&scriptRand{vals: []float64{0.9, 0.9}}))

	tr.AddSession(behavioralSession(5))

	for _, s := range tr.Skills() {
		assert.InDelta(t, 1.2, s.Score, 1e-9)
		assert.Equal(t, models.SkillImproved, s.LastChange)
	}
}

func TestSkillUpdateTechnicalBonus(t *testing.T) {
	tr := newTestTracker(t, WithRand(&scriptRand{vals: []float64{0.9, 0.9}}))

	tr.AddSession(SessionInput{
		Type:           models.ModeTechnical,
		Category:       "dbms",
		Score:          5,
		QuestionsCount: 5,
	})

	for _, s := range tr.Skills() {
		if s.Name == "Technical Knowledge" {
			// 1.16 + 0.58 = 1.74 -> 1.7
			assert.InDelta(t, 1.7, s.Score, 1e-9)
		} else {
			assert.InDelta(t, 1.2, s.Score, 1e-9)
		}
		assert.Equal(t, models.SkillImproved, s.LastChange)
	}
}

func TestSkillUpdateUnaffectedSkillsKeepState(t *testing.T) {
	// 0.1 fails the affected check; only one draw is consumed per skipped skill
	tr := newTestTracker(t, WithRand(&scriptRand{vals: []float64{0.1}}))

	tr.AddSession(behavioralSession(5))

	for _, s := range tr.Skills() {
		assert.Zero(t, s.Score)
		assert.Equal(t, models.SkillUnchanged, s.LastChange)
	}
}

func TestSkillScoreClampedAtFive(t *testing.T) {
	tr := newTestTracker(t, WithRand(&scriptRand{vals: []float64{0.9, 0.9}}))

	for i := 0; i < 10; i++ {
		tr.AddSession(behavioralSession(5))
	}
	for _, s := range tr.Skills() {
		assert.LessOrEqual(t, s.Score, 5.0)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := keyvalue.NewMemoryStore()

	tr := NewTracker(kv, nil, WithUserKey("alice@example.com"))
	tr.AddSession(behavioralSession(4))
	tr.UpgradeAccount()

	// fresh tracker over the same store sees the same state
	again := NewTracker(kv, nil, WithUserKey("alice@example.com"))
	assert.Len(t, again.Sessions(), 1)
	assert.True(t, again.Entitlement().IsPremium)
}

func TestUserSwitchDoesNotLeak(t *testing.T) {
	kv := keyvalue.NewMemoryStore()

	tr := NewTracker(kv, nil, WithUserKey("alice@example.com"))
	tr.AddSession(behavioralSession(4))
	require.Len(t, tr.Sessions(), 1)

	tr.SetUser("bob@example.com")
	assert.Empty(t, tr.Sessions())
	assert.Equal(t, 3, tr.Entitlement().RemainingAttempts)

	tr.SetUser("alice@example.com")
	assert.Len(t, tr.Sessions(), 1)
	assert.Equal(t, 2, tr.Entitlement().RemainingAttempts)
}

func TestDefaultNamespaceNotPersisted(t *testing.T) {
	kv := keyvalue.NewMemoryStore()

	tr := NewTracker(kv, nil) // default-user
	tr.AddSession(behavioralSession(4))
	require.Len(t, tr.Sessions(), 1)

	again := NewTracker(kv, nil)
	assert.Empty(t, again.Sessions())
	assert.Equal(t, 3, again.Entitlement().RemainingAttempts)
}

func TestCorruptRecordFallsBackToDefaults(t *testing.T) {
	kv := keyvalue.NewMemoryStore()
	ctx := context.Background()

	// a string where a number is expected
	require.NoError(t, kv.SetJSON(ctx, "alice@example.com-remaining_attempts", "garbage"))

	tr := NewTracker(kv, nil, WithUserKey("alice@example.com"))
	assert.Equal(t, 3, tr.Entitlement().RemainingAttempts)
}

func TestBroadcasterAttach(t *testing.T) {
	kv := keyvalue.NewMemoryStore()
	bus := auth.NewBroadcaster()

	tr := NewTracker(kv, nil)
	tr.Attach(bus)
	defer tr.Close()

	bus.Publish("carol@example.com")
	assert.Equal(t, "carol@example.com", tr.UserKey())

	// logout falls back to the shared namespace
	bus.Publish("")
	assert.Equal(t, DefaultUserKey, tr.UserKey())

	tr.Close()
	bus.Publish("dave@example.com")
	assert.Equal(t, DefaultUserKey, tr.UserKey(), "unsubscribed tracker must not react")
}
