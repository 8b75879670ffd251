package model

import "time"

// ReportPayload is the read-only snapshot exported when a session reaches
// a terminal state. It is consumed by an external formatter; the engine
// does not serialize it to any particular file format.
type ReportPayload struct {
	Candidate       CandidateProfile    `json:"candidate"`
	Persona         Persona             `json:"persona"`
	State           SessionState        `json:"state"`
	ExitReason      ExitReason          `json:"exit_reason"`
	Partial         bool                `json:"partial"`
	StartedAt       time.Time           `json:"started_at"`
	QuestionsIssued int                 `json:"questions_issued"`
	Answered        int                 `json:"answered"`
	Skipped         int                 `json:"skipped"`
	MeanScore       float64             `json:"mean_score"`
	ConfidenceTrend []int               `json:"confidence_trend"`
	Consistency     *ConsistencySummary `json:"consistency,omitempty"`
	Questions       []QuestionResult    `json:"questions"`
	Recommendation  string              `json:"recommendation"`
}

// QuestionResult holds per-question detail for export.
type QuestionResult struct {
	ID              int            `json:"id"`
	Text            string         `json:"text"`
	FocusArea       string         `json:"focus_area"`
	Tier            Tier           `json:"tier"`
	Answer          string         `json:"answer,omitempty"`
	Skipped         bool           `json:"skipped"`
	Score           float64        `json:"score"`
	Feedback        []string       `json:"feedback,omitempty"`
	Sentiment       SentimentLabel `json:"sentiment,omitempty"`
	ConfidenceScore int            `json:"confidence_score,omitempty"`
	Annotations     []string       `json:"annotations,omitempty"`
}
