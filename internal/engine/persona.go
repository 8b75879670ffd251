package engine

import (
	"strings"

	"github.com/abs6187/talentscout/internal/model"
)

// SelectPersona maps a candidate profile to an interviewer persona.
// Rules are evaluated in order; the first match wins.
func SelectPersona(p model.CandidateProfile) model.Persona {
	position := strings.ToLower(p.DesiredPosition)

	switch {
	case p.YearsExperience >= 8 || containsAny(position, "senior", "lead", "architect", "principal"):
		return model.PersonaExpert
	case containsAny(position, "research", "data", "ml", "ai"):
		return model.PersonaAnalytical
	case containsAny(position, "design", "ui", "ux", "frontend"):
		return model.PersonaCreative
	default:
		return model.PersonaDefault
	}
}

// generalFocusAreas returns the persona-weighted ordering of general-skill
// categories used once the tech stack is exhausted.
func generalFocusAreas(p model.Persona) []string {
	switch p {
	case model.PersonaExpert:
		return []string{"architecture", "best-practices", "debugging"}
	case model.PersonaAnalytical:
		return []string{"algorithms", "data-modeling", "architecture", "debugging", "best-practices"}
	case model.PersonaCreative:
		return []string{"design-tradeoffs", "best-practices", "architecture", "debugging"}
	default:
		return []string{"architecture", "debugging", "best-practices"}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
