package model

import (
	"encoding/json"
	"testing"
)

func TestTierOrdering(t *testing.T) {
	order := []Tier{TierBasic, TierIntermediate, TierPractical, TierAdvanced, TierExpert}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("%v is not below %v", order[i-1], order[i])
		}
	}
}

func TestTierClamp(t *testing.T) {
	if got := (TierExpert + 1).Clamp(); got != TierExpert {
		t.Errorf("Clamp above = %v, want expert", got)
	}
	if got := (TierBasic - 1).Clamp(); got != TierBasic {
		t.Errorf("Clamp below = %v, want basic", got)
	}
	if got := TierPractical.Clamp(); got != TierPractical {
		t.Errorf("Clamp in range = %v, want practical", got)
	}
}

func TestTierTextRoundTrip(t *testing.T) {
	for tier := TierBasic; tier <= TierExpert; tier++ {
		data, err := json.Marshal(tier)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tier, err)
		}

		var back Tier
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != tier {
			t.Errorf("round trip %v -> %s -> %v", tier, data, back)
		}
	}
}

func TestTierUnmarshalUnknown(t *testing.T) {
	var tier Tier
	if err := json.Unmarshal([]byte(`"impossible"`), &tier); err == nil {
		t.Error("Unmarshal of unknown tier succeeded, want error")
	}
}

func TestSessionStateTerminal(t *testing.T) {
	tests := []struct {
		state SessionState
		want  bool
	}{
		{StateCollecting, false},
		{StateAssessing, false},
		{StateCompleted, true},
		{StateAborted, true},
	}
	for _, tt := range tests {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxQuestions != 15 {
		t.Errorf("MaxQuestions = %d, want 15", cfg.MaxQuestions)
	}
	if cfg.SkipThreshold != 3 {
		t.Errorf("SkipThreshold = %d, want 3", cfg.SkipThreshold)
	}
	if cfg.SimilarityCutoff != 0.7 {
		t.Errorf("SimilarityCutoff = %v, want 0.7", cfg.SimilarityCutoff)
	}
	if len(cfg.ExitKeywords) == 0 {
		t.Error("ExitKeywords empty")
	}
}
