package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/abs6187/talentscout/internal/bank"
	"github.com/abs6187/talentscout/internal/llm/prompts"
	"github.com/abs6187/talentscout/internal/model"
)

// Snapshot is an immutable view of session history handed to the
// generator. The session builds it before calling out so no session
// state is held while a generation call is in flight.
type Snapshot struct {
	NextID    int
	Questions []model.Question
	// RecentScores holds the last up-to-3 evaluation scores, oldest first.
	RecentScores []float64
}

// Generator produces the next question for a session. Generation goes
// through the injected retry policy; candidates too similar to prior
// questions are rejected and regenerated, and the static bank serves as
// the final fallback.
type Generator struct {
	gen   TextGenerator
	retry Policy
	bank  *bank.Bank
	cfg   model.Config
	now   func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(gen TextGenerator, retry Policy, b *bank.Bank, cfg model.Config) *Generator {
	return &Generator{gen: gen, retry: retry, bank: b, cfg: cfg, now: time.Now}
}

// Next produces the next question given the session snapshot. It returns
// ErrGenerationUnavailable only when the collaborator produced nothing
// usable and the bank has no acceptable entry for the required tier and
// focus area.
func (g *Generator) Next(ctx context.Context, profile model.CandidateProfile, persona model.Persona, snap Snapshot) (model.Question, error) {
	tier := nextTier(snap)
	focus := nextFocus(profile.TechStack, persona, snap.Questions, g.cfg.QuestionsPerTech)
	prior := questionTexts(snap.Questions)
	prompt := prompts.Question(persona, tier, focus, profile.TechStack, len(prior))

	attempts := g.cfg.MaxRetries + 1
	for i := 0; i < attempts; i++ {
		var text string
		err := g.retry.Do(ctx, func(ctx context.Context) error {
			out, genErr := g.gen.Generate(ctx, prompt, prior)
			if genErr != nil {
				return genErr
			}
			text = strings.TrimSpace(out)
			return nil
		})
		if err != nil {
			slog.Warn("question generation failed, falling back to bank",
				"focus", focus, "tier", tier.String(), "error", err)
			break
		}

		if text != "" && maxSimilarity(text, prior) < g.cfg.SimilarityCutoff {
			return g.question(snap.NextID, text, focus, tier, false), nil
		}
		// Too close to an earlier question; regenerate with an explicit
		// differentiation instruction, as many times as the budget allows.
		prompt += "\nIMPORTANT: The question must be substantially different from every previous question!"
	}

	for _, entry := range g.bank.Find(focus, tier) {
		if maxSimilarity(entry.Text, prior) < g.cfg.SimilarityCutoff {
			return g.question(snap.NextID, entry.Text, focus, tier, true), nil
		}
	}

	return model.Question{}, ErrGenerationUnavailable
}

func (g *Generator) question(id int, text, focus string, tier model.Tier, fromBank bool) model.Question {
	return model.Question{
		ID:        id,
		Text:      text,
		FocusArea: focus,
		Tier:      tier,
		CreatedAt: g.now(),
		FromBank:  fromBank,
	}
}

// nextTier derives the target difficulty from the last issued question
// and the running mean of the most recent evaluations. The tier moves at
// most one step per question.
func nextTier(snap Snapshot) model.Tier {
	if len(snap.Questions) == 0 {
		return model.TierBasic
	}
	tier := snap.Questions[len(snap.Questions)-1].Tier
	if len(snap.RecentScores) == 0 {
		return tier
	}

	var sum float64
	for _, s := range snap.RecentScores {
		sum += s
	}
	mean := sum / float64(len(snap.RecentScores))

	switch {
	case mean >= 0.75:
		tier++
	case mean <= 0.4:
		tier--
	}
	return tier.Clamp()
}

// nextFocus picks the focus area by round-robin over tech-stack entries
// until each is covered perTech times, then round-robin over the
// persona-weighted general categories.
func nextFocus(techStack []string, persona model.Persona, prior []model.Question, perTech int) string {
	if perTech < 1 {
		perTech = 1
	}

	counts := make(map[string]int, len(prior))
	for _, q := range prior {
		counts[q.FocusArea]++
	}

	for round := 0; round < perTech; round++ {
		for _, tech := range techStack {
			focus := strings.ToLower(strings.TrimSpace(tech))
			if focus != "" && counts[focus] == round {
				return focus
			}
		}
	}

	general := generalFocusAreas(persona)
	best := general[0]
	for _, focus := range general[1:] {
		if counts[focus] < counts[best] {
			best = focus
		}
	}
	return best
}

func questionTexts(questions []model.Question) []string {
	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}
	return texts
}

func maxSimilarity(text string, prior []string) float64 {
	var max float64
	for _, p := range prior {
		if s := Similarity(text, p); s > max {
			max = s
		}
	}
	return max
}
