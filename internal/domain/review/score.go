package review

import "math"

// scoringExcluded lists award attribution and superlative-claim checks that
// never count toward the score or the blocker tally.
// claim-highest-rated has no rendered check row; the id is kept here so it
// can never enter the denominator.
var scoringExcluded = map[string]bool{
	"award-98pts-attr":      true,
	"award-doublegold-attr": true,
	"claim-highest-rated":   true,
}

var severityWeight = map[Severity]int{
	SeverityRequired: 3,
	SeverityMinor:    1,
}

// Score folds the current result and override set into a 0-10 compliance
// score and a count of outstanding required items. It is a pure function of
// its inputs; calling it repeatedly never changes the result.
func Score(result *AnalysisResult, overrides map[string]bool) (float64, int) {
	var total, passed int
	items := 0
	for _, key := range CategoryOrder {
		cat, ok := result.Categories[key]
		if !ok {
			continue
		}
		for _, check := range cat.Checks {
			if !check.Scored() {
				continue
			}
			w := severityWeight[check.Severity]
			total += w
			if check.PassedWith(overrides[check.ID]) {
				passed += w
			} else if check.Severity == SeverityRequired {
				items++
			}
		}
	}
	if total == 0 {
		return 0, 0
	}
	score := round1(float64(passed) / float64(total) * 10)
	return score, items
}

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
