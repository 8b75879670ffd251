// Package sentiment derives communication-confidence signals from answer
// text using lexical heuristics. It has no external dependencies and
// never fails.
package sentiment

import (
	"strings"

	"github.com/abs6187/talentscout/internal/model"
)

var (
	confidenceMarkers = []string{"confident", "definitely", "experience", "implemented", "built", "optimized"}
	hedgeMarkers      = []string{"maybe", "perhaps", "might", "not sure", "i think", "probably", "unsure"}
	fillerMarkers     = []string{"um", "uh", "like", "you know", "basically"}

	technicalMarkers = []string{
		"algorithm", "complexity", "optimization", "architecture",
		"design pattern", "framework", "library", "api", "database",
		"performance", "scalability", "security",
	}
)

// Result holds the analysis of one answer.
type Result struct {
	ConfidenceScore   int
	Label             model.SentimentLabel
	WordCount         int
	TechnicalDepth    int
	ConfidenceMarkers int
	HedgeMarkers      int
	FillerMarkers     int
}

// Analyze scans the answer text for confidence, hedge, and filler markers
// and derives a confidence score in [0, 100]:
// clamp(50 + 10*confidence - 8*hedge - 5*filler, 0, 100).
func Analyze(text string) Result {
	lower := strings.ToLower(strings.TrimSpace(text))
	tokens := tokenSet(lower)

	r := Result{
		WordCount:         len(strings.Fields(text)),
		ConfidenceMarkers: countPresent(lower, tokens, confidenceMarkers),
		HedgeMarkers:      countPresent(lower, tokens, hedgeMarkers),
		FillerMarkers:     countPresent(lower, tokens, fillerMarkers),
		TechnicalDepth:    countPresent(lower, tokens, technicalMarkers),
	}

	score := 50 + 10*r.ConfidenceMarkers - 8*r.HedgeMarkers - 5*r.FillerMarkers
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	r.ConfidenceScore = score

	switch {
	case score >= 70:
		r.Label = model.SentimentConfident
	case score >= 50:
		r.Label = model.SentimentModerate
	default:
		r.Label = model.SentimentUncertain
	}

	return r
}

// Feedback renders short communication feedback lines for a result.
func Feedback(r Result) []string {
	var out []string

	switch r.Label {
	case model.SentimentConfident:
		out = append(out, "Your response shows strong confidence and clarity.")
	case model.SentimentModerate:
		out = append(out, "Your response shows moderate confidence.")
	default:
		out = append(out, "Your response could benefit from more confident language.")
	}

	if r.TechnicalDepth >= 3 {
		out = append(out, "Good use of technical terminology.")
	} else if r.TechnicalDepth == 0 {
		out = append(out, "Consider using more technical terms to demonstrate depth.")
	}

	if r.WordCount < 10 {
		out = append(out, "Try to provide more detailed explanations.")
	} else if r.WordCount > 200 {
		out = append(out, "Consider being more concise in your responses.")
	}

	if r.FillerMarkers > 3 {
		out = append(out, "Reduce filler words for clearer communication.")
	}

	return out
}

// countPresent counts how many markers occur in the text. Presence is
// counted once per marker, not per occurrence. Single-word markers match
// whole tokens only, so "um" does not fire inside "number"; multi-word
// markers match as substrings.
func countPresent(text string, tokens map[string]bool, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(m, " ") {
			if strings.Contains(text, m) {
				n++
			}
		} else if tokens[m] {
			n++
		}
	}
	return n
}

func tokenSet(lower string) map[string]bool {
	fields := strings.Fields(lower)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, ".,;:!?'\"()")] = true
	}
	return set
}
