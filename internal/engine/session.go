package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abs6187/talentscout/internal/model"
)

// Session owns one candidate assessment: the ordered question/answer/
// evaluation history, the running aggregate, and the lifecycle state.
// It is single-threaded by design; the caller serializes access.
type Session struct {
	cfg  model.Config
	gen  *Generator
	eval *Evaluator
	now  func() time.Time

	state       model.SessionState
	profile     model.CandidateProfile
	persona     model.Persona
	consistency *model.ConsistencySummary
	startedAt   time.Time
	turns       []model.Turn
	skips       int
	exitReason  model.ExitReason
	scoreSum    float64
	scored      int
	trend       []int
}

// NewSession creates a session in the Collecting state. All tunables come
// from cfg; the session holds no global state.
func NewSession(cfg model.Config, gen *Generator, eval *Evaluator) *Session {
	return &Session{
		cfg:   cfg,
		gen:   gen,
		eval:  eval,
		now:   time.Now,
		state: model.StateCollecting,
	}
}

// Begin validates the profile and moves the session into Assessing. The
// consistency summary is optional; a nil summary means no resume was
// available. Begin fires at most once.
func (s *Session) Begin(profile model.CandidateProfile, consistency *model.ConsistencySummary) error {
	if s.state != model.StateCollecting {
		return fmt.Errorf("session already started (state %s)", s.state)
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	s.profile = profile
	s.persona = SelectPersona(profile)
	s.consistency = consistency
	s.startedAt = s.now()
	s.state = model.StateAssessing
	return nil
}

// State returns the lifecycle state.
func (s *Session) State() model.SessionState { return s.state }

// Persona returns the selected interviewer persona.
func (s *Session) Persona() model.Persona { return s.persona }

// ExitReason returns the terminal exit reason, or empty while active.
func (s *Session) ExitReason() model.ExitReason { return s.exitReason }

// SkipCount returns the number of skipped answers.
func (s *Session) SkipCount() int { return s.skips }

// QuestionsIssued returns how many questions have been issued.
func (s *Session) QuestionsIssued() int { return len(s.turns) }

// NextQuestion is the scheduling decision. It returns the pending
// question if one is outstanding; otherwise it applies the termination
// rules (skip threshold, question maximum) and only then generates a new
// question. When a terminal transition occurs, ErrSessionTerminal is
// returned and State reflects the outcome.
func (s *Session) NextQuestion(ctx context.Context) (model.Question, error) {
	if s.state.Terminal() {
		return model.Question{}, ErrSessionTerminal
	}
	if s.state != model.StateAssessing {
		return model.Question{}, fmt.Errorf("session is not assessing (state %s)", s.state)
	}

	if t := s.pendingTurn(); t != nil {
		return t.Question, nil
	}

	if s.skips > s.cfg.SkipThreshold {
		s.terminate(model.StateAborted, model.ExitSkipThreshold)
		return model.Question{}, ErrSessionTerminal
	}
	if len(s.turns) >= s.cfg.MaxQuestions {
		s.terminate(model.StateCompleted, model.ExitQuestionsExhausted)
		return model.Question{}, ErrSessionTerminal
	}

	q, err := s.gen.Next(ctx, s.profile, s.persona, s.snapshot())
	if err != nil {
		// Nothing left to ask for this tier/focus combination; end the
		// assessment normally instead of surfacing a failure.
		slog.Warn("no question could be produced, completing session", "error", err)
		s.terminate(model.StateCompleted, model.ExitQuestionsExhausted)
		return model.Question{}, ErrSessionTerminal
	}

	s.turns = append(s.turns, model.Turn{Question: q})
	return q, nil
}

// SubmitAnswer records the candidate's answer to the pending question and
// evaluates it. An exit keyword completes the session instead; the
// returned evaluation is nil in that case.
func (s *Session) SubmitAnswer(ctx context.Context, text string) (*model.Evaluation, error) {
	if s.state.Terminal() {
		return nil, ErrSessionTerminal
	}
	t := s.pendingTurn()
	if t == nil {
		return nil, ErrNoPendingQuestion
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("answer must not be empty")
	}

	if s.isExitKeyword(trimmed) {
		t.Answer = &model.Answer{
			QuestionID:  t.Question.ID,
			Text:        trimmed,
			Skipped:     true,
			SubmittedAt: s.now(),
		}
		s.skips++
		s.terminate(model.StateCompleted, model.ExitExplicit)
		return nil, nil
	}

	t.Answer = &model.Answer{
		QuestionID:  t.Question.ID,
		Text:        trimmed,
		SubmittedAt: s.now(),
	}

	ev := s.eval.Evaluate(ctx, t.Question, trimmed, s.profile.TechStack)
	t.Evaluation = &ev

	s.scoreSum += ev.Score
	s.scored++
	s.trend = append(s.trend, ev.ConfidenceScore)
	return &ev, nil
}

// Skip records a skipped answer for the pending question. No evaluation
// is created. The skip threshold is enforced on the next scheduling
// decision, never mid-question.
func (s *Session) Skip() error {
	if s.state.Terminal() {
		return ErrSessionTerminal
	}
	t := s.pendingTurn()
	if t == nil {
		return ErrNoPendingQuestion
	}

	t.Answer = &model.Answer{
		QuestionID:  t.Question.ID,
		Skipped:     true,
		SubmittedAt: s.now(),
	}
	s.skips++
	return nil
}

// CompleteEarly ends the assessment at the candidate's request. At least
// one answered (non-skipped) question is required.
func (s *Session) CompleteEarly() error {
	if s.state.Terminal() {
		return ErrSessionTerminal
	}
	if s.scored == 0 {
		return fmt.Errorf("early completion requires at least one answered question")
	}
	s.terminate(model.StateCompleted, model.ExitEarlyCompletion)
	return nil
}

// MeanScore returns the running mean over all evaluations, 0 when none.
func (s *Session) MeanScore() float64 {
	if s.scored == 0 {
		return 0
	}
	return s.scoreSum / float64(s.scored)
}

// Report exports the read-only terminal snapshot. Calling it repeatedly
// on the same terminal session yields identical payloads; it never
// mutates the session.
func (s *Session) Report() (model.ReportPayload, error) {
	if !s.state.Terminal() {
		return model.ReportPayload{}, fmt.Errorf("report requires a terminal session (state %s)", s.state)
	}

	answered := 0
	results := make([]model.QuestionResult, 0, len(s.turns))
	for _, t := range s.turns {
		hasEval := t.Evaluation != nil
		answeredTurn := t.Answer != nil && !t.Answer.Skipped
		if hasEval != answeredTurn {
			return model.ReportPayload{}, &InvariantError{
				Msg: fmt.Sprintf("question %d: evaluation/answer mismatch", t.Question.ID),
			}
		}

		qr := model.QuestionResult{
			ID:        t.Question.ID,
			Text:      t.Question.Text,
			FocusArea: t.Question.FocusArea,
			Tier:      t.Question.Tier,
		}
		if t.Question.FromBank {
			qr.Annotations = append(qr.Annotations, "served from static question bank")
		}
		if t.Answer != nil {
			qr.Answer = t.Answer.Text
			qr.Skipped = t.Answer.Skipped
		}
		if t.Evaluation != nil {
			answered++
			qr.Score = t.Evaluation.Score
			qr.Feedback = t.Evaluation.Feedback
			qr.Sentiment = t.Evaluation.Sentiment
			qr.ConfidenceScore = t.Evaluation.ConfidenceScore
			if t.Evaluation.Fallback {
				qr.Annotations = append(qr.Annotations, "evaluated via fallback heuristic")
			}
		}
		results = append(results, qr)
	}

	trend := make([]int, len(s.trend))
	copy(trend, s.trend)

	mean := s.MeanScore()
	return model.ReportPayload{
		Candidate:       s.profile,
		Persona:         s.persona,
		State:           s.state,
		ExitReason:      s.exitReason,
		Partial:         s.state == model.StateAborted,
		StartedAt:       s.startedAt,
		QuestionsIssued: len(s.turns),
		Answered:        answered,
		Skipped:         s.skips,
		MeanScore:       mean,
		ConfidenceTrend: trend,
		Consistency:     s.consistency,
		Questions:       results,
		Recommendation:  recommendation(mean, answered),
	}, nil
}

func (s *Session) pendingTurn() *model.Turn {
	if len(s.turns) == 0 {
		return nil
	}
	t := &s.turns[len(s.turns)-1]
	if t.Answer == nil {
		return t
	}
	return nil
}

// snapshot builds the immutable history view handed to the generator, so
// no session state is held while the generation call is in flight.
func (s *Session) snapshot() Snapshot {
	questions := make([]model.Question, len(s.turns))
	for i, t := range s.turns {
		questions[i] = t.Question
	}

	var recent []float64
	for i := len(s.turns) - 1; i >= 0 && len(recent) < 3; i-- {
		if ev := s.turns[i].Evaluation; ev != nil {
			recent = append(recent, ev.Score)
		}
	}
	// Collected newest-first; restore chronological order.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	return Snapshot{
		NextID:       len(s.turns) + 1,
		Questions:    questions,
		RecentScores: recent,
	}
}

func (s *Session) terminate(state model.SessionState, reason model.ExitReason) {
	if s.state.Terminal() {
		return
	}
	s.state = state
	s.exitReason = reason
}

func (s *Session) isExitKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range s.cfg.ExitKeywords {
		if lower == strings.ToLower(kw) {
			return true
		}
	}
	return false
}

func recommendation(mean float64, answered int) string {
	if answered == 0 {
		return "No answers were evaluated; further assessment is required."
	}
	switch {
	case mean >= 0.8:
		return "Strong candidate: responses demonstrate solid technical knowledge."
	case mean >= 0.6:
		return "Qualified candidate: responses show competence with room for improvement."
	default:
		return "Needs further assessment: responses lacked technical depth."
	}
}
