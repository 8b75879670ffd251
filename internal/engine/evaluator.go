package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abs6187/talentscout/internal/llm/prompts"
	"github.com/abs6187/talentscout/internal/model"
	"github.com/abs6187/talentscout/internal/sentiment"
)

// Scoring weights for the four evaluation criteria.
const (
	weightAccuracy     = 0.4
	weightCompleteness = 0.3
	weightClarity      = 0.2
	weightPractical    = 0.1
)

// domainKeywords feed the fallback heuristic alongside the candidate's
// declared tech stack.
var domainKeywords = []string{
	"algorithm", "complexity", "optimization", "architecture",
	"design pattern", "framework", "library", "api", "database",
	"performance", "scalability", "security", "testing", "cache",
}

// Evaluator scores free-text answers. The primary path asks the
// text-generation collaborator for criterion scores; any failure routes
// to a deterministic keyword heuristic, so evaluation never fails
// outward.
type Evaluator struct {
	gen   TextGenerator
	retry Policy
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(gen TextGenerator, retry Policy) *Evaluator {
	return &Evaluator{gen: gen, retry: retry}
}

// Evaluate scores one non-skipped answer. The sentiment sub-step always
// runs, independent of which scoring path produced the score.
func (e *Evaluator) Evaluate(ctx context.Context, q model.Question, answerText string, techStack []string) model.Evaluation {
	ev := model.Evaluation{QuestionID: q.ID}

	score, feedback, err := e.llmScore(ctx, q, answerText, techStack)
	if err != nil {
		slog.Warn("LLM evaluation failed, using keyword heuristic",
			"question_id", q.ID, "error", err)
		score, feedback = heuristicScore(answerText, techStack)
		ev.Fallback = true
	}
	ev.Score = score
	ev.Feedback = feedback

	sent := sentiment.Analyze(answerText)
	ev.Sentiment = sent.Label
	ev.ConfidenceScore = sent.ConfidenceScore
	ev.Feedback = append(ev.Feedback, sentiment.Feedback(sent)...)

	return ev
}

// llmScore asks the collaborator to score the answer against the four
// weighted criteria and parses its JSON reply.
func (e *Evaluator) llmScore(ctx context.Context, q model.Question, answerText string, techStack []string) (float64, []string, error) {
	prompt := prompts.Evaluation(q.Text, answerText, techStack)

	var raw string
	err := e.retry.Do(ctx, func(ctx context.Context) error {
		out, genErr := e.gen.Generate(ctx, prompt, nil)
		if genErr != nil {
			return genErr
		}
		raw = out
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	body := extractJSON(raw)
	if !gjson.Valid(body) {
		return 0, nil, fmt.Errorf("unparsable evaluation response")
	}

	accuracy := gjson.Get(body, "technical_accuracy")
	if !accuracy.Exists() {
		return 0, nil, fmt.Errorf("evaluation response missing criteria")
	}

	score := weightAccuracy*clamp01(accuracy.Float()) +
		weightCompleteness*clamp01(gjson.Get(body, "completeness").Float()) +
		weightClarity*clamp01(gjson.Get(body, "clarity").Float()) +
		weightPractical*clamp01(gjson.Get(body, "practical_understanding").Float())

	var feedback []string
	for _, item := range gjson.Get(body, "feedback").Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			feedback = append(feedback, s)
		}
	}

	return clamp01(score), feedback, nil
}

// heuristicScore is the deterministic fallback: keyword overlap between
// the answer and the tech stack plus general domain terms.
func heuristicScore(answerText string, techStack []string) (float64, []string) {
	lower := strings.ToLower(answerText)

	hits := 0
	seen := make(map[string]bool)
	for _, kw := range append(lowerAll(techStack), domainKeywords...) {
		if kw != "" && !seen[kw] && strings.Contains(lower, kw) {
			seen[kw] = true
			hits++
		}
	}

	score := 0.3 + 0.1*float64(hits)
	if score > 1.0 {
		score = 1.0
	}

	var feedback []string
	switch {
	case score < 0.4:
		feedback = []string{
			"The answer could use more technical depth and detail.",
			"Try to reference concrete technologies or techniques you would apply.",
		}
	case score <= 0.7:
		feedback = []string{
			"The answer shows competence with room for improvement.",
			"Expanding on the reasoning behind your approach would strengthen it.",
		}
	default:
		feedback = []string{
			"The answer demonstrates solid technical knowledge.",
			"Good coverage of relevant concepts.",
		}
	}

	return score, feedback
}

// extractJSON strips markdown code fences and surrounding prose from a
// model reply, leaving the outermost JSON object.
func extractJSON(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
