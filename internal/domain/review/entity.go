package review

import (
	"sort"
	"strings"
)

// Status enum (tri-state: pending means undetermined, awaiting human or AI
// confirmation, not a failure)
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusPending Status = "pending"
)

// Severity enum
type Severity string

const (
	SeverityRequired Severity = "REQUIRED"
	SeverityMinor    Severity = "MINOR"
)

// CategoryKey enum, the six fixed categories
type CategoryKey string

const (
	CategoryProductPackaging     CategoryKey = "productPackaging"
	CategoryLegalCompliance      CategoryKey = "legalCompliance"
	CategoryTypographyHierarchy  CategoryKey = "typographyHierarchy"
	CategoryLayoutBrandElements  CategoryKey = "layoutBrandElements"
	CategoryLightingColorRealism CategoryKey = "lightingColorRealism"
	CategorySmileDevice          CategoryKey = "smileDevice"
)

// CategoryOrder fixes iteration order for projection and export.
var CategoryOrder = []CategoryKey{
	CategoryProductPackaging,
	CategoryLegalCompliance,
	CategoryTypographyHierarchy,
	CategoryLayoutBrandElements,
	CategoryLightingColorRealism,
	CategorySmileDevice,
}

// Format enum
type Format string

const (
	FormatLandscape Format = "Landscape"
	FormatPortrait  Format = "Portrait"
	FormatSquare    Format = "Square"
)

// ParseFormat canonicalizes a client-supplied format string. Clients send it
// in any casing; unknown or empty input returns the zero Format.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "landscape":
		return FormatLandscape
	case "portrait":
		return FormatPortrait
	case "square":
		return FormatSquare
	}
	return ""
}

// DetectFormat classifies a creative by aspect ratio.
func DetectFormat(width, height int) Format {
	if height == 0 {
		return FormatSquare
	}
	ratio := float64(width) / float64(height)
	switch {
	case ratio > 1.2:
		return FormatLandscape
	case ratio < 0.8:
		return FormatPortrait
	default:
		return FormatSquare
	}
}

// VisualType enum
type VisualType string

const (
	VisualWithSmile    VisualType = "withSmile"
	VisualWithoutSmile VisualType = "withoutSmile"
)

// DrawMode names the ruler measurements a check can ask for.
type DrawMode string

const (
	DrawSHeight     DrawMode = "s-height"
	DrawFrameBorder DrawMode = "frame-border"
	DrawFrameImage  DrawMode = "frame-image"
	DrawSmileSize   DrawMode = "smile-size"
)

// Check is a single compliance criterion. Detail and ObjectiveValue are
// derived strings recomputed whenever Status changes; nothing else may set
// them independently.
type Check struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Category         CategoryKey `json:"category"`
	Severity         Severity    `json:"severity"`
	Status           Status      `json:"status"`
	IsOptionalCheck  bool        `json:"isOptionalCheck,omitempty"`
	IsAwardCheck     bool        `json:"isAwardCheck,omitempty"`
	ManuallyAdjusted bool        `json:"manuallyAdjusted,omitempty"`
	NeedsManual      bool        `json:"needsManual,omitempty"`
	Evaluated        bool        `json:"evaluated"`
	RegionID         string      `json:"regionId,omitempty"`
	Adjustable       bool        `json:"adjustable,omitempty"`
	CanReanalyze     bool        `json:"canReanalyze,omitempty"`
	DrawMode         DrawMode    `json:"drawingMode,omitempty"`
	Detail           string      `json:"detail,omitempty"`
	ObjectiveValue   string      `json:"objectiveValue,omitempty"`
	ObjectiveTarget  string      `json:"objectiveTarget,omitempty"`
	Info             string      `json:"info,omitempty"`
	Value            float64     `json:"value,omitempty"`

	// Measurements holds per-edge figures for the safe-zone check.
	Measurements map[string]string `json:"measurements,omitempty"`
}

// PassedWith reports the check's boolean contribution to scoring. It is the
// single place that combines status with the manual override toggle; callers
// must not re-derive this ad hoc.
func (c *Check) PassedWith(override bool) bool {
	return c.Status == StatusPass || override
}

// Scored reports whether the check participates in scoring at all.
func (c *Check) Scored() bool {
	if c.IsOptionalCheck || c.IsAwardCheck {
		return false
	}
	return !scoringExcluded[c.ID]
}

// Category groups checks.
type Category struct {
	Key    CategoryKey `json:"key"`
	Name   string      `json:"name"`
	Checks []*Check    `json:"checks"`
}

func (c *Category) find(id string) *Check {
	for _, ch := range c.Checks {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// SmileSignals surfaces both inputs to the smile-device category decision so
// callers can render a disagreement instead of the engine guessing.
type SmileSignals struct {
	UserSelected bool  `json:"userSelected"`
	AIDetected   *bool `json:"aiDetected"`
}

// AnalysisResult is the aggregate check set for one analysis pass. It is
// treated as immutable: reconciliation derives a new result from the old one
// plus incoming AI data, never edits in place.
type AnalysisResult struct {
	Format       Format                    `json:"format"`
	Specs        string                    `json:"specs"`
	Categories   map[CategoryKey]*Category `json:"categories"`
	SmileSignals SmileSignals              `json:"smileSignals"`
}

// Find returns the check with the given id, or nil.
func (r *AnalysisResult) Find(id string) *Check {
	for _, key := range CategoryOrder {
		cat, ok := r.Categories[key]
		if !ok {
			continue
		}
		if ch := cat.find(id); ch != nil {
			return ch
		}
	}
	return nil
}

// Clone deep-copies the result so a reconciliation pass can build a new
// state without touching the previous one.
func (r *AnalysisResult) Clone() *AnalysisResult {
	out := &AnalysisResult{
		Format:       r.Format,
		Specs:        r.Specs,
		SmileSignals: r.SmileSignals,
		Categories:   make(map[CategoryKey]*Category, len(r.Categories)),
	}
	for key, cat := range r.Categories {
		nc := &Category{Key: cat.Key, Name: cat.Name, Checks: make([]*Check, len(cat.Checks))}
		for i, ch := range cat.Checks {
			nc.Checks[i] = ch.clone()
		}
		out.Categories[key] = nc
	}
	return out
}

func (c *Check) clone() *Check {
	cp := *c
	if c.Measurements != nil {
		cp.Measurements = make(map[string]string, len(c.Measurements))
		for k, v := range c.Measurements {
			cp.Measurements[k] = v
		}
	}
	return &cp
}

// PendingSet tracks check ids whose manual geometry changed since the last
// AI call. Cleared atomically on every full re-analysis response.
type PendingSet map[string]struct{}

func (p PendingSet) Add(id string)      { p[id] = struct{}{} }
func (p PendingSet) Has(id string) bool { _, ok := p[id]; return ok }
func (p PendingSet) Len() int           { return len(p) }

// IDs returns the member ids in stable order.
func (p PendingSet) IDs() []string {
	out := make([]string, 0, len(p))
	for id := range p {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (p PendingSet) Clone() PendingSet {
	out := make(PendingSet, len(p))
	for id := range p {
		out[id] = struct{}{}
	}
	return out
}
