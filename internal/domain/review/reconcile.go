package review

import (
	"errors"
	"fmt"
	"math"

	"github.com/bryanwahyu/creative-qc/internal/domain/ai"
)

// ErrLineTooShort is returned when a drawn measurement line has no usable
// length on its dominant axis.
var ErrLineTooShort = errors.New("review: measurement line too short")

// geometricTerminal lists checks whose verdict comes entirely from a drawn
// measurement. Once measured they are resolved for good: reconciliation
// preserves them verbatim and they never enter the reanalysis queue.
var geometricTerminal = map[string]struct{}{
	"polaroid-border":      {},
	"polaroid-image-frame": {},
}

// aiConfirmable lists region-bound checks that can be recomputed locally
// from their region but still benefit from a fresh AI pass.
var aiConfirmable = map[string]struct{}{
	"bottle-scale":   {},
	"safe-zone-5pct": {},
	"logo-position":  {},
	"logo-min-size":  {},
}

func applyVerdict(c *Check, v Verdict) {
	c.Status = v.Status
	c.ObjectiveValue = v.ObjectiveValue
	c.Detail = v.Detail
	if v.Value != 0 {
		c.Value = v.Value
	}
	if v.Measurements != nil {
		c.Measurements = v.Measurements
	}
	c.Evaluated = true
	c.NeedsManual = false
	c.ManuallyAdjusted = true
}

// regionVerdict recomputes a locally decidable check from its region.
func regionVerdict(id string, region Region, ctx *BuildContext) (Verdict, bool) {
	switch id {
	case "bottle-scale":
		return EvalBottleScale(region, BottleScaleWindow(ctx.Format)), true
	case "safe-zone-5pct":
		return EvalSafeZone(region), true
	case "logo-min-size":
		return EvalLogoMinSize(region, ctx.Width), true
	case "logo-position":
		return EvalLogoZone(region, ctx.Format), true
	}
	return Verdict{}, false
}

// RecalculateRegion re-evaluates every check bound to regionID after the
// region has been moved or resized. Checks with a local geometric rule
// resolve immediately; the rest go pending until the next reanalysis.
// Checks that a fresh AI pass can confirm are added to pending.
func RecalculateRegion(result *AnalysisResult, regionID string, region Region, ctx *BuildContext, pending PendingSet) {
	for _, key := range CategoryOrder {
		cat, ok := result.Categories[key]
		if !ok {
			continue
		}
		for _, check := range cat.Checks {
			if check.RegionID != regionID {
				continue
			}
			if v, ok := regionVerdict(check.ID, region, ctx); ok {
				applyVerdict(check, v)
				if check.CanReanalyze {
					pending.Add(check.ID)
				}
			} else {
				check.Status = StatusPending
				check.ManuallyAdjusted = true
				check.Evaluated = false
				check.ObjectiveValue = labelNeedsReview
				check.Detail = "Region adjusted. Reanalyze to re-verify."
				pending.Add(check.ID)
			}
		}
	}
}

// Measurement is a completed draw gesture over the canvas, in percent
// coordinates.
type Measurement struct {
	Mode DrawMode
	Line Line
}

// MeasurementOutcome reports the side effects of applying a measurement.
type MeasurementOutcome struct {
	CheckID    string
	SHeightPct float64
	ClearSpace *Region
}

// ApplyMeasurement resolves the check that owns the drawn line's mode.
// Frame measurements are terminal. The smile measurement records the drawn
// size but needs the next AI pass to verify it, and the clearspace
// measurement derives the exclusion box around the layout logo and likewise
// leaves the check pending.
func ApplyMeasurement(result *AnalysisResult, m Measurement, ctx *BuildContext, pending PendingSet) (MeasurementOutcome, error) {
	if m.Line.Degenerate() {
		return MeasurementOutcome{}, ErrLineTooShort
	}
	length, vertical := m.Line.Dominant()

	switch m.Mode {
	case DrawFrameBorder:
		// Border thickness is judged against the shortest side.
		px := length / 100 * axisPx(vertical, ctx)
		pct := px / shortestSide(ctx) * 100
		check := result.Find("polaroid-border")
		if check == nil {
			return MeasurementOutcome{}, errCheckMissing("polaroid-border")
		}
		applyVerdict(check, EvalFrameBorder(pct))
		return MeasurementOutcome{CheckID: check.ID}, nil

	case DrawFrameImage:
		px := length / 100 * axisPx(vertical, ctx)
		pct := px / longestSide(ctx) * 100
		check := result.Find("polaroid-image-frame")
		if check == nil {
			return MeasurementOutcome{}, errCheckMissing("polaroid-image-frame")
		}
		applyVerdict(check, EvalFrameImage(pct))
		return MeasurementOutcome{CheckID: check.ID}, nil

	case DrawSmileSize:
		px := length / 100 * axisPx(vertical, ctx)
		check := result.Find("smile-min-size")
		if check == nil {
			return MeasurementOutcome{}, errCheckMissing("smile-min-size")
		}
		check.Status = StatusPending
		check.ManuallyAdjusted = true
		check.Evaluated = false
		check.ObjectiveValue = labelNeedsReview
		check.Detail = fmt.Sprintf("Measured: %.0fpx • Re-run AI to verify", px)
		check.Value = math.Round(px)
		pending.Add(check.ID)
		return MeasurementOutcome{CheckID: check.ID}, nil

	case DrawSHeight:
		check := result.Find("logo-clearspace")
		if check == nil {
			return MeasurementOutcome{}, errCheckMissing("logo-clearspace")
		}
		px := length / 100 * axisPx(vertical, ctx)
		check.Status = StatusPending
		check.ManuallyAdjusted = true
		check.ObjectiveValue = labelNeedsReview
		check.Detail = fmt.Sprintf(`Measured "s" height: %.0fpx • Verify clearspace box is clear`, px)
		pending.Add(check.ID)

		outcome := MeasurementOutcome{CheckID: check.ID, SHeightPct: length}
		if logo := logoRegion(ctx); logo != nil {
			box := ClearSpaceBox(*logo, length)
			outcome.ClearSpace = &box
		}
		return outcome, nil
	}
	return MeasurementOutcome{}, fmt.Errorf("review: unknown draw mode %q", m.Mode)
}

// logoRegion prefers the AI-detected layout logo box, falling back to the
// manually positioned alignment region.
func logoRegion(ctx *BuildContext) *Region {
	if ctx.LogoBox != nil {
		return ctx.LogoBox
	}
	if r, ok := ctx.Regions[RegionLogoAlignment]; ok {
		return &r
	}
	return nil
}

func axisPx(vertical bool, ctx *BuildContext) float64 {
	if vertical {
		return float64(ctx.Height)
	}
	return float64(ctx.Width)
}

func shortestSide(ctx *BuildContext) float64 {
	return math.Min(float64(ctx.Width), float64(ctx.Height))
}

func longestSide(ctx *BuildContext) float64 {
	return math.Max(float64(ctx.Width), float64(ctx.Height))
}

func errCheckMissing(id string) error {
	return fmt.Errorf("review: check %q not present in result", id)
}

// Reconcile folds a fresh AI analysis into the session. The result is
// rebuilt from the fresh payload, then every manually settled check is
// overlaid from prev so a reanalysis can never silently revert human work:
//
//   - geometric measured checks keep their previous verdict verbatim
//   - locally recomputable checks are re-derived from the preserved regions
//   - any other manually adjusted check keeps its previous state
//
// The returned pending set contains only adjusted checks the fresh pass
// could not settle.
func Reconcile(prev *AnalysisResult, fresh *ai.Analysis, ctx *BuildContext) (*AnalysisResult, PendingSet) {
	next := BuildChecks(fresh, ctx)
	pending := make(PendingSet)
	if prev == nil {
		return next, pending
	}

	for _, key := range CategoryOrder {
		cat, ok := next.Categories[key]
		if !ok {
			continue
		}
		for _, check := range cat.Checks {
			old := prev.Find(check.ID)
			if old == nil || !old.ManuallyAdjusted {
				continue
			}
			if _, terminal := geometricTerminal[check.ID]; terminal {
				*check = *old.clone()
				continue
			}
			if _, ok := aiConfirmable[check.ID]; ok {
				region, has := ctx.Regions[check.RegionID]
				if has {
					if v, vok := regionVerdict(check.ID, region, ctx); vok {
						applyVerdict(check, v)
						continue
					}
				}
			}
			*check = *old.clone()
			if check.Status == StatusPending {
				pending.Add(check.ID)
			}
		}
	}
	return next, pending
}
