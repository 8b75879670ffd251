package model

import (
	"fmt"
	"time"
)

// Persona represents the interviewer style used to frame questions.
// It biases tone and focus-area weighting, never scoring.
type Persona string

const (
	PersonaExpert     Persona = "expert"
	PersonaAnalytical Persona = "analytical"
	PersonaCreative   Persona = "creative"
	PersonaDefault    Persona = "default"
)

// Tier is an ordered question difficulty level.
type Tier int

const (
	TierBasic Tier = iota
	TierIntermediate
	TierPractical
	TierAdvanced
	TierExpert
)

var tierNames = [...]string{"basic", "intermediate", "practical", "advanced", "expert"}

func (t Tier) String() string {
	if t < TierBasic || t > TierExpert {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// MarshalText renders the tier name in JSON exports.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	for i, name := range tierNames {
		if name == string(b) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}

// Clamp bounds the tier to the valid range.
func (t Tier) Clamp() Tier {
	if t < TierBasic {
		return TierBasic
	}
	if t > TierExpert {
		return TierExpert
	}
	return t
}

// SessionState represents the assessment lifecycle state.
type SessionState string

const (
	StateCollecting SessionState = "collecting"
	StateAssessing  SessionState = "assessing"
	StateCompleted  SessionState = "completed"
	StateAborted    SessionState = "aborted"
)

// Terminal reports whether no further transitions are allowed.
func (s SessionState) Terminal() bool {
	return s == StateCompleted || s == StateAborted
}

// ExitReason records why a session reached a terminal state.
type ExitReason string

const (
	ExitQuestionsExhausted ExitReason = "questions_exhausted"
	ExitExplicit           ExitReason = "explicit_exit"
	ExitEarlyCompletion    ExitReason = "early_completion"
	ExitSkipThreshold      ExitReason = "skip_threshold"
)

// SentimentLabel classifies the communication confidence of an answer.
type SentimentLabel string

const (
	SentimentConfident SentimentLabel = "confident"
	SentimentModerate  SentimentLabel = "moderate"
	SentimentUncertain SentimentLabel = "uncertain"
)

// MatchStatus is the outcome of checking one declared profile field
// against the resume text.
type MatchStatus string

const (
	MatchMatched      MatchStatus = "matched"
	MatchUnmatched    MatchStatus = "unmatched"
	MatchUnverifiable MatchStatus = "unverifiable"
)

// CandidateProfile holds validated candidate input. Immutable once the
// assessment begins.
type CandidateProfile struct {
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	YearsExperience int      `json:"years_experience"`
	DesiredPosition string   `json:"desired_position"`
	TechStack       []string `json:"tech_stack"`
}

// FieldCheck is one declared-field result from the resume consistency check.
type FieldCheck struct {
	Field  string      `json:"field"`
	Status MatchStatus `json:"status"`
	Note   string      `json:"note,omitempty"`
}

// ConsistencySummary aggregates the resume consistency check.
// Ratio counts matched over matched+unmatched; unverifiable fields are
// excluded from the denominator.
type ConsistencySummary struct {
	Checks []FieldCheck `json:"checks"`
	Ratio  float64      `json:"ratio"`
}

// Question is a single issued question. Immutable once issued.
type Question struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	FocusArea string    `json:"focus_area"`
	Tier      Tier      `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
	// FromBank marks questions served from the static fallback bank.
	FromBank bool `json:"from_bank,omitempty"`
}

// Answer is the candidate's response to one question.
type Answer struct {
	QuestionID  int       `json:"question_id"`
	Text        string    `json:"text"`
	Skipped     bool      `json:"skipped"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Evaluation scores one non-skipped answer. Exactly one Evaluation exists
// per answered question; none for skipped questions.
type Evaluation struct {
	QuestionID      int            `json:"question_id"`
	Score           float64        `json:"score"`
	Feedback        []string       `json:"feedback"`
	Sentiment       SentimentLabel `json:"sentiment"`
	ConfidenceScore int            `json:"confidence_score"`
	// Fallback marks evaluations produced by the keyword heuristic
	// instead of the text-generation collaborator.
	Fallback bool `json:"fallback,omitempty"`
}

// Turn groups a question with its (optional) answer and evaluation.
type Turn struct {
	Question   Question    `json:"question"`
	Answer     *Answer     `json:"answer,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Config holds the tunable assessment parameters. It is passed to the
// session constructor; there is no module-level mutable state.
type Config struct {
	MaxQuestions     int
	SkipThreshold    int
	SimilarityCutoff float64
	QuestionsPerTech int
	MaxRetries       int
	GenerateTimeout  time.Duration
	ExitKeywords     []string
}

// DefaultConfig returns the standard assessment parameters.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:     15,
		SkipThreshold:    3,
		SimilarityCutoff: 0.7,
		QuestionsPerTech: 2,
		MaxRetries:       2,
		GenerateTimeout:  10 * time.Second,
		ExitKeywords:     []string{"exit", "quit", "stop", "end assessment", "end"},
	}
}
