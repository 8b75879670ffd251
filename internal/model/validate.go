package model

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError carries every problem found in a candidate profile so
// the caller can present them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid profile: " + strings.Join(e.Problems, "; ")
}

// Validate checks the profile against the intake rules. It returns a
// *ValidationError listing all violations, or nil when the profile is
// acceptable.
func (p CandidateProfile) Validate() error {
	var problems []string

	if strings.TrimSpace(p.FullName) == "" {
		problems = append(problems, "full name is required")
	}
	if !emailRe.MatchString(strings.TrimSpace(p.Email)) {
		problems = append(problems, "email address is malformed")
	}
	if !validPhone(p.Phone) {
		problems = append(problems, "phone number is malformed")
	}
	if p.YearsExperience < 0 {
		problems = append(problems, "years of experience must not be negative")
	}
	if strings.TrimSpace(p.DesiredPosition) == "" {
		problems = append(problems, "desired position is required")
	}
	if strings.TrimSpace(p.Location) == "" {
		problems = append(problems, "location is required")
	}
	if !hasTech(p.TechStack) {
		problems = append(problems, "at least one technology is required")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// validPhone accepts an optional leading + followed by 7 to 15 digits,
// ignoring spaces, dashes, dots and parentheses.
func validPhone(phone string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	cleaned = strings.TrimPrefix(cleaned, "+")
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasTech(stack []string) bool {
	for _, t := range stack {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// ParseTechStack splits a comma-separated technology list into trimmed,
// lowercased, de-duplicated entries in input order.
func ParseTechStack(raw string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		tech := strings.ToLower(strings.TrimSpace(part))
		if tech == "" || seen[tech] {
			continue
		}
		seen[tech] = true
		out = append(out, tech)
	}
	return out
}

// Summary is a short human-readable line used in logs.
func (p CandidateProfile) Summary() string {
	return fmt.Sprintf("%s (%s, %d yrs, %s)", p.FullName, p.DesiredPosition, p.YearsExperience, strings.Join(p.TechStack, ", "))
}
