package models

import "time"

type InterviewMode string

const (
	ModeTechnical  InterviewMode = "technical"
	ModeBehavioral InterviewMode = "behavioral"
)

// InterviewSession is one live interview owned by a user. Questions are fixed
// at creation; answers accumulate in the in-process flow until completion.
type InterviewSession struct {
	ID     string `json:"session_id"` // uuid v4
	UserID string `json:"user_id"`

	Mode     InterviewMode `json:"mode"`
	Category string        `json:"category,omitempty"` // technical only
	Role     string        `json:"role,omitempty"`
	Level    string        `json:"level,omitempty"`

	Questions []string `json:"questions"`

	CreatedAt   time.Time  `json:"created_at"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Result *SessionResult `json:"result,omitempty"`
}

// QuestionFeedback is the per-question output of the feedback generator.
type QuestionFeedback struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Score        int      `json:"score"` // 1..5
	Commentary   string   `json:"commentary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// SessionResult is the aggregate produced when a session completes.
type SessionResult struct {
	OverallScore    float64            `json:"overall_score"` // 0..5
	Questions       []QuestionFeedback `json:"questions"`
	TopStrengths    []string           `json:"top_strengths"`
	TopImprovements []string           `json:"top_improvements"`
	DurationSeconds int64              `json:"duration_seconds"`
}
