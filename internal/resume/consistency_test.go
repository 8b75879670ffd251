package resume

import (
	"math"
	"testing"

	"github.com/abs6187/talentscout/internal/model"
)

func statusOf(t *testing.T, summary model.ConsistencySummary, field string) model.MatchStatus {
	t.Helper()
	for _, c := range summary.Checks {
		if c.Field == field {
			return c.Status
		}
	}
	t.Fatalf("no check for field %q in %+v", field, summary.Checks)
	return ""
}

func TestCheckYears(t *testing.T) {
	tests := []struct {
		name     string
		declared int
		text     string
		want     model.MatchStatus
	}{
		{
			name:     "exact claim",
			declared: 7,
			text:     "7 years of backend development",
			want:     model.MatchMatched,
		},
		{
			name:     "within tolerance",
			declared: 8,
			text:     "over 10 years in the industry",
			want:     model.MatchMatched,
		},
		{
			name:     "plus suffix",
			declared: 10,
			text:     "10+ yrs experience",
			want:     model.MatchMatched,
		},
		{
			name:     "far off",
			declared: 2,
			text:     "12 years of engineering leadership",
			want:     model.MatchUnmatched,
		},
		{
			name:     "no claim at all",
			declared: 5,
			text:     "worked at three companies on distributed systems",
			want:     model.MatchUnverifiable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.CandidateProfile{YearsExperience: tt.declared, DesiredPosition: "x"}
			summary := Check(profile, tt.text)
			if got := statusOf(t, summary, "years_experience"); got != tt.want {
				t.Errorf("years_experience = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckPosition(t *testing.T) {
	tests := []struct {
		name     string
		position string
		text     string
		want     model.MatchStatus
	}{
		{
			name:     "all tokens present",
			position: "Backend Engineer",
			text:     "Senior backend engineer at Acme since 2019",
			want:     model.MatchMatched,
		},
		{
			name:     "token missing",
			position: "Frontend Developer",
			text:     "Worked as a backend developer",
			want:     model.MatchUnmatched,
		},
		{
			name:     "short tokens ignored",
			position: "Dev Ops Lead",
			text:     "Team lead for platform operations",
			want:     model.MatchMatched,
		},
		{
			name:     "only short tokens",
			position: "QA",
			text:     "quality assurance work",
			want:     model.MatchUnverifiable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.CandidateProfile{DesiredPosition: tt.position}
			summary := Check(profile, tt.text)
			if got := statusOf(t, summary, "desired_position"); got != tt.want {
				t.Errorf("desired_position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckTechStack(t *testing.T) {
	profile := model.CandidateProfile{
		DesiredPosition: "Backend Engineer",
		TechStack:       []string{"python", "kubernetes"},
	}
	summary := Check(profile, "Python services on bare metal, backend engineer role")

	if got := statusOf(t, summary, "tech:python"); got != model.MatchMatched {
		t.Errorf("tech:python = %v, want matched", got)
	}
	if got := statusOf(t, summary, "tech:kubernetes"); got != model.MatchUnmatched {
		t.Errorf("tech:kubernetes = %v, want unmatched", got)
	}
}

func TestCheckRatio(t *testing.T) {
	profile := model.CandidateProfile{
		YearsExperience: 5, // no claim in text -> unverifiable, excluded
		DesiredPosition: "Backend Engineer",
		TechStack:       []string{"python", "kubernetes"},
	}
	summary := Check(profile, "Backend engineer building Python services")

	// matched: position, python; unmatched: kubernetes; unverifiable: years.
	want := 2.0 / 3.0
	if math.Abs(summary.Ratio-want) > 1e-9 {
		t.Errorf("Ratio = %v, want %v", summary.Ratio, want)
	}
}

func TestCheckRatioAllUnverifiable(t *testing.T) {
	profile := model.CandidateProfile{YearsExperience: 5, DesiredPosition: "QA"}
	summary := Check(profile, "some unrelated text")

	if summary.Ratio != 1.0 {
		t.Errorf("Ratio = %v, want 1.0 when nothing is verifiable", summary.Ratio)
	}
}
