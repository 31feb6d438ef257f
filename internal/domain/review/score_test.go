package review

import (
	"testing"

	"github.com/bryanwahyu/creative-qc/internal/domain/ai"
)

func buildEmptyResult(t *testing.T) *AnalysisResult {
	t.Helper()
	ctx := &BuildContext{
		Format:     FormatLandscape,
		VisualType: VisualWithoutSmile,
		Width:      1920,
		Height:     1080,
		UploadYear: 2026,
	}
	return BuildChecks(&ai.Analysis{}, ctx)
}

func TestScoreIsIdempotent(t *testing.T) {
	result := buildEmptyResult(t)
	overrides := map[string]bool{"legal-has-abv": true}

	s1, i1 := Score(result, overrides)
	s2, i2 := Score(result, overrides)
	if s1 != s2 || i1 != i2 {
		t.Fatalf("scoring changed state: (%v,%v) then (%v,%v)", s1, i1, s2, i2)
	}
}

func TestScoreOverrideMonotonicity(t *testing.T) {
	result := buildEmptyResult(t)
	overrides := map[string]bool{}
	prev, _ := Score(result, overrides)

	for _, key := range CategoryOrder {
		cat, ok := result.Categories[key]
		if !ok {
			continue
		}
		for _, check := range cat.Checks {
			overrides[check.ID] = true
			score, _ := Score(result, overrides)
			if score < prev {
				t.Fatalf("overriding %s dropped score %v -> %v", check.ID, prev, score)
			}
			prev = score
		}
	}
}

func TestScoreIgnoresExcludedChecks(t *testing.T) {
	result := buildEmptyResult(t)

	base, baseItems := Score(result, nil)
	for _, id := range []string{"award-98pts-attr", "award-doublegold-attr", "claim-highest-rated"} {
		score, items := Score(result, map[string]bool{id: true})
		if score != base || items != baseItems {
			t.Fatalf("override of %s changed score %v/%v -> %v/%v", id, base, baseItems, score, items)
		}
	}
}

func TestScoreCountsRequiredItems(t *testing.T) {
	result := buildEmptyResult(t)

	_, items := Score(result, nil)
	if items == 0 {
		t.Fatalf("empty analysis should leave required items to address")
	}

	// Overriding a required non-passing check reduces the item count.
	abv := result.Find("legal-has-abv")
	if abv == nil {
		t.Fatalf("legal-has-abv missing")
	}
	if abv.Status == StatusPass {
		t.Fatalf("empty analysis should not pass ABV check")
	}
	_, fewer := Score(result, map[string]bool{"legal-has-abv": true})
	if fewer != items-1 {
		t.Fatalf("items = %d after override, want %d", fewer, items-1)
	}
}

func TestScoreWeightsSeverity(t *testing.T) {
	result := &AnalysisResult{
		Categories: map[CategoryKey]*Category{
			CategoryLegalCompliance: {
				Key: CategoryLegalCompliance,
				Checks: []*Check{
					{ID: "a", Severity: SeverityRequired, Status: StatusPass},
					{ID: "b", Severity: SeverityMinor, Status: StatusFail},
				},
			},
		},
	}
	score, items := Score(result, nil)
	// 3 of 4 weight points pass: 3/4*10 rounded to one decimal.
	if score != 7.5 {
		t.Fatalf("score = %v, want 7.5", score)
	}
	if items != 0 {
		t.Fatalf("minor failures must not count as items to address, got %d", items)
	}
}

func TestRound1(t *testing.T) {
	if got := round1(7.46); got != 7.5 {
		t.Fatalf("round1(7.46) = %v", got)
	}
	if got := round1(7.44); got != 7.4 {
		t.Fatalf("round1(7.44) = %v", got)
	}
}
