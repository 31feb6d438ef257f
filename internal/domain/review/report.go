package review

// ReleaseStatus is the go/no-go verdict derived from the score and the
// outstanding required items.
type ReleaseStatus string

const (
	ReleaseApproved    ReleaseStatus = "approved"
	ReleaseConditional ReleaseStatus = "conditional"
	ReleaseRejected    ReleaseStatus = "rejected"
)

const (
	approvedScoreFloor    = 7.5
	conditionalScoreFloor = 5.0
)

// CheckView is a check flattened for presentation, with the override
// applied.
type CheckView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Severity        Severity `json:"severity"`
	Status          Status   `json:"status"`
	Overridden      bool     `json:"overridden"`
	Optional        bool     `json:"optional"`
	Award           bool     `json:"award"`
	Detail          string   `json:"detail,omitempty"`
	ObjectiveValue  string   `json:"objectiveValue,omitempty"`
	ObjectiveTarget string   `json:"objectiveTarget,omitempty"`
}

// CategorySummary aggregates one category's checks with pass counts under
// the current override set.
type CategorySummary struct {
	Key     CategoryKey `json:"key"`
	Name    string      `json:"name"`
	Passed  int         `json:"passed"`
	Failed  int         `json:"failed"`
	Pending int         `json:"pending"`
	Total   int         `json:"total"`
	Checks  []CheckView `json:"checks"`
}

// Projection is the read model for one review: everything a report needs,
// derived from the result and overrides and nothing else.
type Projection struct {
	Format          Format            `json:"format"`
	Specs           string            `json:"specs"`
	Score           float64           `json:"score"`
	ItemsToAddress  int               `json:"itemsToAddress"`
	Release         ReleaseStatus     `json:"release"`
	Categories      []CategorySummary `json:"categories"`
	CriticalIssues  []string          `json:"criticalIssues,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
}

// Project folds the result and override set into the report read model.
// It is pure: projecting twice yields equal values.
func Project(result *AnalysisResult, overrides map[string]bool) Projection {
	score, items := Score(result, overrides)
	p := Projection{
		Format:         result.Format,
		Specs:          result.Specs,
		Score:          score,
		ItemsToAddress: items,
		Release:        releaseStatus(score, items),
	}
	for _, key := range CategoryOrder {
		cat, ok := result.Categories[key]
		if !ok {
			continue
		}
		p.Categories = append(p.Categories, summarize(cat, overrides))
	}
	return p
}

func summarize(cat *Category, overrides map[string]bool) CategorySummary {
	s := CategorySummary{Key: cat.Key, Name: cat.Name, Total: len(cat.Checks)}
	for _, check := range cat.Checks {
		overridden := overrides[check.ID]
		status := check.Status
		if check.PassedWith(overridden) {
			status = StatusPass
		}
		switch status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		default:
			s.Pending++
		}
		s.Checks = append(s.Checks, CheckView{
			ID:              check.ID,
			Name:            check.Name,
			Severity:        check.Severity,
			Status:          status,
			Overridden:      overridden && check.Status != StatusPass,
			Optional:        check.IsOptionalCheck,
			Award:           check.IsAwardCheck,
			Detail:          check.Detail,
			ObjectiveValue:  check.ObjectiveValue,
			ObjectiveTarget: check.ObjectiveTarget,
		})
	}
	return s
}

func releaseStatus(score float64, items int) ReleaseStatus {
	switch {
	case score >= approvedScoreFloor && items == 0:
		return ReleaseApproved
	case score >= conditionalScoreFloor:
		return ReleaseConditional
	default:
		return ReleaseRejected
	}
}
