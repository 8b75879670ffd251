// Package prompts builds the prompt text sent to the text-generation
// collaborator for question generation and answer evaluation.
package prompts

import (
	"fmt"
	"strings"

	"github.com/abs6187/talentscout/internal/model"
)

// System returns the interviewer system prompt for a persona.
func System(p model.Persona) string {
	switch p {
	case model.PersonaExpert:
		return "You are a highly experienced technical hiring manager. " +
			"Assess candidates on technical accuracy, problem-solving strategy, " +
			"code quality, and system design. Start from foundations, then probe " +
			"advanced topics and edge cases."
	case model.PersonaAnalytical:
		return "You are a data-driven, analytical technical evaluator. " +
			"Focus on logical reasoning alongside technical expertise: clarity of " +
			"logic, efficiency of approach, and the ability to decompose complex problems."
	case model.PersonaCreative:
		return "You are an engaging interviewer who evaluates candidates through " +
			"real-world scenarios and practical challenges. Assess creative " +
			"problem-solving, adaptability, and clear communication."
	default:
		return "You are a friendly, professional technical interviewer conducting " +
			"a preliminary screening. Keep a conversational tone and assess both " +
			"technical knowledge and problem-solving ability."
	}
}

// tierGuidance describes the expected answer depth per tier.
func tierGuidance(t model.Tier) string {
	switch t {
	case model.TierBasic:
		return "a basic concept or definition question answerable in 1-2 sentences"
	case model.TierIntermediate:
		return "a fundamentals question requiring a brief explanation"
	case model.TierPractical:
		return "a practical scenario requiring a focused solution in 3-4 sentences"
	case model.TierAdvanced:
		return "a challenging but specific problem-solving question"
	default:
		return "an advanced question on concepts, internals, or trade-offs"
	}
}

// Question builds the generation prompt for one question at the given
// tier and focus area. Prior question texts are passed separately as
// generation context.
func Question(persona model.Persona, tier model.Tier, focus string, techStack []string, priorCount int) string {
	var sb strings.Builder
	sb.WriteString(System(persona))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Candidate tech stack: %s\n", strings.Join(techStack, ", ")))
	sb.WriteString(fmt.Sprintf("Generate ONE technical interview question about %q.\n", focus))
	sb.WriteString(fmt.Sprintf("Difficulty: %s — %s.\n\n", tier, tierGuidance(tier)))
	sb.WriteString("Rules:\n")
	sb.WriteString("- The question must be substantially different from every previously asked question.\n")
	sb.WriteString("- Keep the question focused and specific.\n")
	sb.WriteString("- Do not ask for code implementations.\n")
	if priorCount > 0 {
		sb.WriteString(fmt.Sprintf("- %d questions were already asked; they are provided as context.\n", priorCount))
	}
	sb.WriteString("\nReturn ONLY the question text, no numbering, formatting, or commentary.\n")
	return sb.String()
}

// Evaluation builds the scoring prompt for one answer. The collaborator
// is asked for a JSON object with per-criterion scores in [0,1] and
// short feedback strings.
func Evaluation(questionText, answerText string, techStack []string) string {
	var sb strings.Builder
	sb.WriteString("You are scoring one answer from a technical screening interview.\n\n")
	sb.WriteString("QUESTION: " + questionText + "\n\n")
	sb.WriteString("ANSWER: " + answerText + "\n\n")
	sb.WriteString("Candidate tech stack: " + strings.Join(techStack, ", ") + "\n\n")
	sb.WriteString("Score the answer on four criteria, each from 0.0 to 1.0:\n")
	sb.WriteString("- technical_accuracy: correctness of the technical content\n")
	sb.WriteString("- completeness: coverage of the important points\n")
	sb.WriteString("- clarity: structure and clarity of the explanation\n")
	sb.WriteString("- practical_understanding: evidence of hands-on understanding\n\n")
	sb.WriteString("Respond ONLY with a JSON object:\n")
	sb.WriteString(`{"technical_accuracy": <0..1>, "completeness": <0..1>, "clarity": <0..1>, "practical_understanding": <0..1>, "feedback": ["<short point>", "..."]}`)
	sb.WriteString("\n")
	return sb.String()
}
