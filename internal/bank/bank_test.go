package bank

import (
	"testing"

	"github.com/abs6187/talentscout/internal/model"
)

func loadBank(t *testing.T) *Bank {
	t.Helper()
	b, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	return b
}

func TestLoad(t *testing.T) {
	b := loadBank(t)
	if b.Len() == 0 {
		t.Fatal("bank is empty")
	}
}

func TestFindExactFocus(t *testing.T) {
	b := loadBank(t)

	entries := b.Find("python", model.TierBasic)
	if len(entries) == 0 {
		t.Fatal("no basic python questions")
	}
	for _, e := range entries {
		if e.Tier != model.TierBasic {
			t.Errorf("entry tier = %v, want basic", e.Tier)
		}
		if e.Text == "" {
			t.Error("entry has empty text")
		}
	}
}

func TestFindTierFiltering(t *testing.T) {
	b := loadBank(t)

	basic := b.Find("sql", model.TierBasic)
	expert := b.Find("sql", model.TierExpert)
	if len(basic) == 0 || len(expert) == 0 {
		t.Fatalf("sql coverage: basic=%d expert=%d, want both non-empty", len(basic), len(expert))
	}
	if basic[0].Text == expert[0].Text {
		t.Error("basic and expert tiers returned the same question")
	}
}

func TestFindPrefixMatching(t *testing.T) {
	b := loadBank(t)

	// Candidates write variants like "python3" or "golang".
	if len(b.Find("python3", model.TierBasic)) == 0 {
		t.Error(`Find("python3") found nothing, want prefix match on "python"`)
	}
	if len(b.Find("golang", model.TierBasic)) == 0 {
		t.Error(`Find("golang") found nothing, want prefix match on "go"`)
	}
}

func TestFindDoesNotOverMatch(t *testing.T) {
	b := loadBank(t)

	// "go" must not match "django" just because the letters appear inside.
	for _, e := range b.Find("go", model.TierBasic) {
		if e.Focus == "django" {
			t.Errorf(`Find("go") returned a django entry`)
		}
	}
}

func TestFindUnknownFocus(t *testing.T) {
	b := loadBank(t)
	if got := b.Find("cobol", model.TierBasic); len(got) != 0 {
		t.Errorf("Find(cobol) = %d entries, want none", len(got))
	}
}

func TestFindGeneralCategories(t *testing.T) {
	b := loadBank(t)

	for _, focus := range []string{"architecture", "debugging", "best-practices", "algorithms", "data-modeling", "design-tradeoffs"} {
		for tier := model.TierBasic; tier <= model.TierExpert; tier++ {
			if len(b.Find(focus, tier)) == 0 {
				t.Errorf("no %s question at tier %v", focus, tier)
			}
		}
	}
}
