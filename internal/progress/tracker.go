package progress

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/interviewace/interviewace/internal/auth"
	"github.com/interviewace/interviewace/internal/keyvalue"
	"github.com/interviewace/interviewace/internal/models"
)

const (
	// DefaultUserKey is the shared namespace used when no user is resolved.
	// It behaves as guest mode: reads work, writes are skipped.
	DefaultUserKey = "default-user"

	defaultAttempts = 3
	premiumAttempts = 999

	keySessions = "interview_sessions"
	keyAttempts = "remaining_attempts"
	keyPremium  = "is_premium"
	keySkills   = "skills"
)

// Rand is the randomness source behind skill updates. *rand.Rand satisfies
// it; tests inject a scripted sequence to pin outcomes.
type Rand interface {
	Float64() float64
}

func defaultSkills() []models.SkillScore {
	return []models.SkillScore{
		{Name: "Communication", Score: 0, LastChange: models.SkillUnchanged},
		{Name: "Problem Solving", Score: 0, LastChange: models.SkillUnchanged},
		{Name: "Technical Knowledge", Score: 0, LastChange: models.SkillUnchanged},
		{Name: "Confidence", Score: 0, LastChange: models.SkillUnchanged},
	}
}

// SessionInput is what a finished interview hands over; id and date are
// assigned here.
type SessionInput struct {
	Role           string
	Type           models.InterviewMode
	Category       string
	Score          float64
	QuestionsCount int
	Duration       int64
}

// Tracker accumulates one user's completed sessions, trial attempts, premium
// flag and skill scores, and writes them through the key-value store under
// keys namespaced by the user. Storage failures never surface: a bad read
// leaves defaults in place, a bad write is logged and dropped.
type Tracker struct {
	mu sync.Mutex

	kv  keyvalue.Store
	log *logrus.Logger
	rng Rand

	userKey   string
	sessions  []models.CompletedSession
	remaining int
	premium   bool
	skills    []models.SkillScore

	unsubscribe func()
}

type Option func(*Tracker)

// WithRand overrides the skill-update randomness source.
func WithRand(r Rand) Option {
	return func(t *Tracker) { t.rng = r }
}

// WithUserKey sets the initial namespace instead of the shared default.
func WithUserKey(key string) Option {
	return func(t *Tracker) { t.userKey = userKeyOrDefault(key) }
}

func NewTracker(kv keyvalue.Store, log *logrus.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		kv:      kv,
		log:     log,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		userKey: DefaultUserKey,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logrus.New()
	}

	t.mu.Lock()
	t.resetLocked()
	t.loadLocked()
	t.mu.Unlock()
	return t
}

// Attach subscribes the tracker to user changes. Detach with Close.
func (t *Tracker) Attach(b *auth.Broadcaster) {
	t.Close()
	t.unsubscribe = b.Subscribe(t.SetUser)
}

func (t *Tracker) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

// SetUser switches the active namespace: state is reset to defaults, then the
// new user's records are loaded. Safe to call repeatedly with the same key.
func (t *Tracker) SetUser(userKey string) {
	t.mu.Lock()
	t.userKey = userKeyOrDefault(userKey)
	t.resetLocked()
	t.loadLocked()
	t.mu.Unlock()
}

func (t *Tracker) UserKey() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.userKey
}

// AddSession records a completed interview: prepend to history, burn a trial
// attempt unless premium, then update skills from the session score.
func (t *Tracker) AddSession(in SessionInput) models.CompletedSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	session := models.CompletedSession{
		ID:             "session-" + uuid.NewString(),
		Date:           time.Now().UTC(),
		Role:           in.Role,
		Type:           in.Type,
		Category:       in.Category,
		Score:          in.Score,
		QuestionsCount: in.QuestionsCount,
		Duration:       in.Duration,
	}

	t.sessions = append([]models.CompletedSession{session}, t.sessions...)

	if !t.premium {
		t.remaining--
		if t.remaining < 0 {
			t.remaining = 0
		}
	}

	t.updateSkillsLocked(in.Score, in.Type)
	t.saveLocked()
	return session
}

// updateSkillsLocked applies a bounded random perturbation per skill. A skill
// is touched with probability 0.7; the delta scales with the session score,
// and technical sessions give Technical Knowledge a half-weighted extra.
func (t *Tracker) updateSkillsLocked(score float64, typ models.InterviewMode) {
	for i := range t.skills {
		skill := &t.skills[i]

		if !(t.rng.Float64() > 0.3) {
			continue
		}

		delta := (score / 5) * (t.rng.Float64()*0.4 + 0.8)
		newScore := clamp(skill.Score + delta)
		if typ == models.ModeTechnical && skill.Name == "Technical Knowledge" {
			newScore = clamp(newScore + delta*0.5)
		}
		newScore = math.Round(newScore*10) / 10

		switch {
		case newScore > skill.Score:
			skill.LastChange = models.SkillImproved
		case newScore < skill.Score:
			skill.LastChange = models.SkillDeclined
		default:
			skill.LastChange = models.SkillUnchanged
		}
		skill.Score = newScore
	}
}

// UpgradeAccount flips the premium flag; attempts become effectively
// unlimited.
func (t *Tracker) UpgradeAccount() {
	t.mu.Lock()
	t.premium = true
	t.remaining = premiumAttempts
	t.saveLocked()
	t.mu.Unlock()
}

// ResetUserData restores the zero state for the active namespace and drops
// its persisted records.
func (t *Tracker) ResetUserData() {
	t.mu.Lock()
	t.resetLocked()
	t.deleteLocked()
	t.mu.Unlock()
}

func (t *Tracker) Sessions() []models.CompletedSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.CompletedSession(nil), t.sessions...)
}

func (t *Tracker) Skills() []models.SkillScore {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.SkillScore(nil), t.skills...)
}

func (t *Tracker) Entitlement() models.Entitlement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.Entitlement{
		RemainingAttempts: t.remaining,
		IsPremium:         t.premium,
		IsTrialExpired:    t.remaining <= 0 && !t.premium,
	}
}

func (t *Tracker) resetLocked() {
	t.sessions = nil
	t.remaining = defaultAttempts
	t.premium = false
	t.skills = defaultSkills()
}

func (t *Tracker) loadLocked() {
	ctx := context.Background()

	var sessions []models.CompletedSession
	if hit, err := t.kv.GetJSON(ctx, t.storageKey(keySessions), &sessions); err != nil {
		t.logLoadError(keySessions, err)
	} else if hit {
		t.sessions = sessions
	}

	var remaining int
	if hit, err := t.kv.GetJSON(ctx, t.storageKey(keyAttempts), &remaining); err != nil {
		t.logLoadError(keyAttempts, err)
	} else if hit {
		t.remaining = remaining
	}

	var premium bool
	if hit, err := t.kv.GetJSON(ctx, t.storageKey(keyPremium), &premium); err != nil {
		t.logLoadError(keyPremium, err)
	} else if hit {
		t.premium = premium
	}

	var skills []models.SkillScore
	if hit, err := t.kv.GetJSON(ctx, t.storageKey(keySkills), &skills); err != nil {
		t.logLoadError(keySkills, err)
	} else if hit && len(skills) > 0 {
		t.skills = skills
	}
}

// saveLocked is fire-and-forget: last write wins, errors are logged and
// swallowed. The shared default namespace is never written.
func (t *Tracker) saveLocked() {
	if t.userKey == DefaultUserKey {
		return
	}
	ctx := context.Background()

	records := []struct {
		field string
		val   any
	}{
		{keySessions, t.sessions},
		{keyAttempts, t.remaining},
		{keyPremium, t.premium},
		{keySkills, t.skills},
	}
	for _, rec := range records {
		if err := t.kv.SetJSON(ctx, t.storageKey(rec.field), rec.val); err != nil {
			t.log.WithFields(logrus.Fields{
				"user_key": t.userKey,
				"field":    rec.field,
			}).WithError(err).Warn("progress save failed")
		}
	}
}

// deleteLocked removes the namespace's records; absent keys then load as
// defaults. Best-effort like saveLocked.
func (t *Tracker) deleteLocked() {
	if t.userKey == DefaultUserKey {
		return
	}
	keys := []string{
		t.storageKey(keySessions),
		t.storageKey(keyAttempts),
		t.storageKey(keyPremium),
		t.storageKey(keySkills),
	}
	if err := t.kv.Del(context.Background(), keys...); err != nil {
		t.log.WithField("user_key", t.userKey).WithError(err).Warn("progress delete failed")
	}
}

func (t *Tracker) logLoadError(field string, err error) {
	t.log.WithFields(logrus.Fields{
		"user_key": t.userKey,
		"field":    field,
	}).WithError(err).Warn("progress load failed, using defaults")
}

func (t *Tracker) storageKey(field string) string {
	return t.userKey + "-" + field
}

func userKeyOrDefault(key string) string {
	if key == "" {
		return DefaultUserKey
	}
	return key
}

func clamp(v float64) float64 {
	return math.Min(5, math.Max(0, v))
}
