package engine

import (
	"testing"

	"github.com/abs6187/talentscout/internal/model"
)

func TestSelectPersona(t *testing.T) {
	tests := []struct {
		name    string
		profile model.CandidateProfile
		want    model.Persona
	}{
		{
			name: "senior backend engineer with ten years",
			profile: model.CandidateProfile{
				YearsExperience: 10,
				DesiredPosition: "Senior Backend Engineer",
			},
			want: model.PersonaExpert,
		},
		{
			name: "experience alone is enough",
			profile: model.CandidateProfile{
				YearsExperience: 8,
				DesiredPosition: "Backend Engineer",
			},
			want: model.PersonaExpert,
		},
		{
			name: "senior title with little experience",
			profile: model.CandidateProfile{
				YearsExperience: 2,
				DesiredPosition: "Senior Developer",
			},
			want: model.PersonaExpert,
		},
		{
			name: "data scientist",
			profile: model.CandidateProfile{
				YearsExperience: 3,
				DesiredPosition: "Data Scientist",
			},
			want: model.PersonaAnalytical,
		},
		{
			name: "research engineer",
			profile: model.CandidateProfile{
				YearsExperience: 4,
				DesiredPosition: "Research Engineer",
			},
			want: model.PersonaAnalytical,
		},
		{
			name: "ui designer",
			profile: model.CandidateProfile{
				YearsExperience: 5,
				DesiredPosition: "UI Designer",
			},
			want: model.PersonaCreative,
		},
		{
			name: "senior beats data when both match",
			profile: model.CandidateProfile{
				YearsExperience: 3,
				DesiredPosition: "Senior Data Engineer",
			},
			want: model.PersonaExpert,
		},
		{
			name: "junior developer",
			profile: model.CandidateProfile{
				YearsExperience: 1,
				DesiredPosition: "Backend Developer",
			},
			want: model.PersonaDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectPersona(tt.profile)
			if got != tt.want {
				t.Errorf("SelectPersona(%+v) = %v, want %v", tt.profile, got, tt.want)
			}
		})
	}
}

func TestGeneralFocusAreasNonEmpty(t *testing.T) {
	for _, p := range []model.Persona{
		model.PersonaExpert,
		model.PersonaAnalytical,
		model.PersonaCreative,
		model.PersonaDefault,
	} {
		if len(generalFocusAreas(p)) == 0 {
			t.Errorf("generalFocusAreas(%v) is empty", p)
		}
	}
}
