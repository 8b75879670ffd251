package prompts

import (
	"strings"
	"testing"

	"github.com/abs6187/talentscout/internal/model"
)

func TestSystemDistinctPerPersona(t *testing.T) {
	personas := []model.Persona{
		model.PersonaExpert,
		model.PersonaAnalytical,
		model.PersonaCreative,
		model.PersonaDefault,
	}

	seen := make(map[string]model.Persona)
	for _, p := range personas {
		text := System(p)
		if text == "" {
			t.Fatalf("System(%v) is empty", p)
		}
		if prev, dup := seen[text]; dup {
			t.Errorf("System(%v) identical to System(%v)", p, prev)
		}
		seen[text] = p
	}
}

func TestQuestionPrompt(t *testing.T) {
	got := Question(model.PersonaExpert, model.TierAdvanced, "python", []string{"python", "sql"}, 3)

	for _, want := range []string{
		`"python"`,
		"advanced",
		"python, sql",
		"3 questions were already asked",
		"substantially different",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
	if !strings.HasPrefix(got, System(model.PersonaExpert)) {
		t.Error("prompt does not open with the persona system text")
	}
}

func TestQuestionPromptFirstQuestion(t *testing.T) {
	got := Question(model.PersonaDefault, model.TierBasic, "sql", []string{"sql"}, 0)
	if strings.Contains(got, "already asked") {
		t.Error("first-question prompt mentions prior questions")
	}
	if !strings.Contains(got, "basic") {
		t.Error("prompt missing the tier name")
	}
}

func TestEvaluationPrompt(t *testing.T) {
	got := Evaluation("What is an index?", "It speeds up lookups.", []string{"sql"})

	for _, want := range []string{
		"QUESTION: What is an index?",
		"ANSWER: It speeds up lookups.",
		"technical_accuracy",
		"completeness",
		"clarity",
		"practical_understanding",
		"feedback",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
