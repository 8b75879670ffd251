package resume

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abs6187/talentscout/internal/model"
)

var yearClaimRe = regexp.MustCompile(`(\d{1,2})\+?\s*(?:years?|yrs?)`)

// Check compares the declared profile fields against the extracted
// resume text. It runs at most once, before assessment begins; an
// unmatched-heavy result only annotates the final report and never
// blocks the session.
func Check(profile model.CandidateProfile, resumeText string) model.ConsistencySummary {
	lower := strings.ToLower(resumeText)

	var checks []model.FieldCheck
	checks = append(checks, checkYears(profile.YearsExperience, lower))
	checks = append(checks, checkPosition(profile.DesiredPosition, lower))
	for _, tech := range profile.TechStack {
		checks = append(checks, checkTech(tech, lower))
	}

	matched, unmatched := 0, 0
	for _, c := range checks {
		switch c.Status {
		case model.MatchMatched:
			matched++
		case model.MatchUnmatched:
			unmatched++
		}
	}

	ratio := 1.0
	if matched+unmatched > 0 {
		ratio = float64(matched) / float64(matched+unmatched)
	}

	return model.ConsistencySummary{Checks: checks, Ratio: ratio}
}

// checkYears looks for a digit-adjacent year claim ("7 years", "10+
// yrs") in the resume. No such claim makes the field unverifiable; a
// claim within two years of the declared figure counts as a match.
func checkYears(declared int, lower string) model.FieldCheck {
	check := model.FieldCheck{Field: "years_experience"}

	best, found := 0, false
	for _, m := range yearClaimRe.FindAllStringSubmatch(lower, -1) {
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		if !found || n > best {
			best, found = n, true
		}
	}

	if !found {
		check.Status = model.MatchUnverifiable
		check.Note = "no year claim found in resume"
		return check
	}

	diff := declared - best
	if diff < 0 {
		diff = -diff
	}
	if diff <= 2 {
		check.Status = model.MatchMatched
	} else {
		check.Status = model.MatchUnmatched
		check.Note = fmt.Sprintf("resume claims %d years, profile declares %d", best, declared)
	}
	return check
}

// checkPosition matches when every significant token of the declared
// position (longer than three characters) appears in the resume.
func checkPosition(position, lower string) model.FieldCheck {
	check := model.FieldCheck{Field: "desired_position"}

	significant := 0
	for _, token := range strings.Fields(strings.ToLower(position)) {
		if len(token) <= 3 {
			continue
		}
		significant++
		if !strings.Contains(lower, token) {
			check.Status = model.MatchUnmatched
			check.Note = fmt.Sprintf("%q not mentioned in resume", token)
			return check
		}
	}
	if significant == 0 {
		check.Status = model.MatchUnverifiable
		check.Note = "position title too short to verify"
		return check
	}
	check.Status = model.MatchMatched
	return check
}

func checkTech(tech, lower string) model.FieldCheck {
	check := model.FieldCheck{Field: "tech:" + tech}
	if strings.Contains(lower, strings.ToLower(tech)) {
		check.Status = model.MatchMatched
	} else {
		check.Status = model.MatchUnmatched
		check.Note = "not mentioned in resume"
	}
	return check
}
