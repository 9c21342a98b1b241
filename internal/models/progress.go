package models

import "time"

// CompletedSession is the durable per-interview record kept by the progress
// tracker, newest first.
type CompletedSession struct {
	ID             string        `json:"id"`
	Date           time.Time     `json:"date"`
	Role           string        `json:"role"`
	Type           InterviewMode `json:"type"`
	Category       string        `json:"category,omitempty"`
	Score          float64       `json:"score"` // 0..5
	QuestionsCount int           `json:"questions_count"`
	Duration       int64         `json:"duration"` // seconds
}

type SkillChange string

const (
	SkillImproved  SkillChange = "improved"
	SkillDeclined  SkillChange = "declined"
	SkillUnchanged SkillChange = "unchanged"
)

type SkillScore struct {
	Name       string      `json:"name"`
	Score      float64     `json:"score"` // 0..5
	LastChange SkillChange `json:"last_change"`
}

// Entitlement governs whether the user may start another session.
type Entitlement struct {
	RemainingAttempts int  `json:"remaining_attempts"`
	IsPremium         bool `json:"is_premium"`
	IsTrialExpired    bool `json:"is_trial_expired"`
}
