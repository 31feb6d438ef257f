package review

import (
	"errors"
	"testing"

	"github.com/bryanwahyu/creative-qc/internal/domain/ai"
)

func landscapeCtx() *BuildContext {
	return &BuildContext{
		Format:     FormatLandscape,
		VisualType: VisualWithoutSmile,
		Width:      2000,
		Height:     1000,
		UploadYear: 2026,
	}
}

func TestRecalculateRegionBottleScaleIsTerminal(t *testing.T) {
	ctx := landscapeCtx()
	result := BuildChecks(&ai.Analysis{}, ctx)
	pending := make(PendingSet)

	RecalculateRegion(result, RegionBottleScale, Region{X: 20, Y: 15, Width: 30, Height: 75}, ctx, pending)

	check := result.Find("bottle-scale")
	if check.Status != StatusPass {
		t.Fatalf("75%% height in landscape -> %s, want pass", check.Status)
	}
	if !check.ManuallyAdjusted || !check.Evaluated {
		t.Fatalf("adjusted=%v evaluated=%v, want both true", check.ManuallyAdjusted, check.Evaluated)
	}
	if pending.Has("bottle-scale") {
		t.Fatalf("bottle-scale has no AI follow-up, must not be queued")
	}
}

func TestRecalculateRegionSafeZoneQueuesReanalysis(t *testing.T) {
	ctx := landscapeCtx()
	result := BuildChecks(&ai.Analysis{}, ctx)
	pending := make(PendingSet)

	RecalculateRegion(result, RegionSafeZone, Region{X: 0, Y: 5, Width: 90, Height: 90}, ctx, pending)

	check := result.Find("safe-zone-5pct")
	if check.Status != StatusFail {
		t.Fatalf("flush-left safe zone -> %s, want fail", check.Status)
	}
	if check.Measurements["left"] != "0.0%" {
		t.Fatalf("left measurement = %q, want 0.0%%", check.Measurements["left"])
	}
	if !pending.Has("safe-zone-5pct") {
		t.Fatalf("safe zone is AI-confirmable, must be queued")
	}
}

func TestRecalculateRegionNonGeometricGoesPending(t *testing.T) {
	ctx := landscapeCtx()
	result := BuildChecks(&ai.Analysis{}, ctx)
	pending := make(PendingSet)

	RecalculateRegion(result, RegionLegalABV, Region{X: 60, Y: 80, Width: 10, Height: 5}, ctx, pending)

	check := result.Find("legal-has-abv")
	if check.Status != StatusPending {
		t.Fatalf("abv after region move -> %s, want pending", check.Status)
	}
	if !check.ManuallyAdjusted || check.Evaluated {
		t.Fatalf("adjusted=%v evaluated=%v, want adjusted and not evaluated", check.ManuallyAdjusted, check.Evaluated)
	}
	if !pending.Has("legal-has-abv") {
		t.Fatalf("moved abv region must be queued for reanalysis")
	}
}

func TestApplyMeasurementRejectsDegenerateLine(t *testing.T) {
	ctx := landscapeCtx()
	result := BuildChecks(&ai.Analysis{}, ctx)

	m := Measurement{Mode: DrawFrameBorder, Line: Line{Start: Point{X: 10, Y: 10}, End: Point{X: 10, Y: 10}}}
	if _, err := ApplyMeasurement(result, m, ctx, make(PendingSet)); !errors.Is(err, ErrLineTooShort) {
		t.Fatalf("err = %v, want ErrLineTooShort", err)
	}
}

func TestApplyMeasurementFrameBorder(t *testing.T) {
	// 1000 x 2000 canvas: a horizontal 4% line is 40px, 4.0% of the
	// shortest side, inside the 5% ± 1.5 window.
	ctx := &BuildContext{Format: FormatPortrait, VisualType: VisualWithoutSmile, Width: 1000, Height: 2000}
	result := BuildChecks(&ai.Analysis{}, ctx)
	pending := make(PendingSet)

	m := Measurement{Mode: DrawFrameBorder, Line: Line{Start: Point{X: 10, Y: 10}, End: Point{X: 14, Y: 10}}}
	out, err := ApplyMeasurement(result, m, ctx, pending)
	if err != nil {
		t.Fatalf("ApplyMeasurement: %v", err)
	}
	if out.CheckID != "polaroid-border" {
		t.Fatalf("check id = %q", out.CheckID)
	}
	check := result.Find("polaroid-border")
	if check.Status != StatusPass || !check.ManuallyAdjusted {
		t.Fatalf("border = %s adjusted=%v, want measured pass", check.Status, check.ManuallyAdjusted)
	}
	if pending.Len() != 0 {
		t.Fatalf("frame measurements are terminal, pending = %v", pending.IDs())
	}
}

func TestApplyMeasurementFrameImage(t *testing.T) {
	// Vertical line on the long axis measures the image area directly.
	ctx := &BuildContext{Format: FormatPortrait, VisualType: VisualWithoutSmile, Width: 1000, Height: 2000}
	result := BuildChecks(&ai.Analysis{}, ctx)

	m := Measurement{Mode: DrawFrameImage, Line: Line{Start: Point{X: 50, Y: 10}, End: Point{X: 50, Y: 72}}}
	if _, err := ApplyMeasurement(result, m, ctx, make(PendingSet)); err != nil {
		t.Fatalf("ApplyMeasurement: %v", err)
	}
	check := result.Find("polaroid-image-frame")
	if check.Status != StatusPass {
		t.Fatalf("62%% of longest side -> %s, want pass", check.Status)
	}

	short := Measurement{Mode: DrawFrameImage, Line: Line{Start: Point{X: 50, Y: 10}, End: Point{X: 50, Y: 40}}}
	if _, err := ApplyMeasurement(result, short, ctx, make(PendingSet)); err != nil {
		t.Fatalf("ApplyMeasurement: %v", err)
	}
	if check.Status != StatusFail {
		t.Fatalf("30%% of longest side -> %s, want fail", check.Status)
	}
}

func TestApplyMeasurementSmileSizeNeedsReanalysis(t *testing.T) {
	ctx := landscapeCtx()
	ctx.VisualType = VisualWithSmile
	result := BuildChecks(&ai.Analysis{}, ctx)
	pending := make(PendingSet)

	// 10% horizontal on a 2000px wide image is 200px.
	m := Measurement{Mode: DrawSmileSize, Line: Line{Start: Point{X: 40, Y: 50}, End: Point{X: 50, Y: 50}}}
	if _, err := ApplyMeasurement(result, m, ctx, pending); err != nil {
		t.Fatalf("ApplyMeasurement: %v", err)
	}
	check := result.Find("smile-min-size")
	if check.Status != StatusPending || check.Value != 200 {
		t.Fatalf("measured smile -> %s value=%v, want pending at 200", check.Status, check.Value)
	}
	if !check.ManuallyAdjusted || check.Evaluated {
		t.Fatalf("measured smile adjusted=%v evaluated=%v, want adjusted and not evaluated", check.ManuallyAdjusted, check.Evaluated)
	}
	if !pending.Has("smile-min-size") {
		t.Fatalf("smile-min-size not queued for reanalysis")
	}

	// The smile device ruler only records the size; the fresh pass keeps it
	// pending and queued until the AI confirms.
	next, queued := Reconcile(result, &ai.Analysis{}, ctx)
	got := next.Find("smile-min-size")
	if got.Status != StatusPending || got.Value != 200 {
		t.Fatalf("after reconcile: %s value=%v, want pending at 200", got.Status, got.Value)
	}
	if !queued.Has("smile-min-size") {
		t.Fatalf("smile-min-size dropped from the reanalysis queue")
	}
}

func TestApplyMeasurementSHeightStaysPending(t *testing.T) {
	ctx := landscapeCtx()
	ctx.Regions = EnsureRegions(nil)
	result := BuildChecks(&ai.Analysis{}, ctx)
	pending := make(PendingSet)

	m := Measurement{Mode: DrawSHeight, Line: Line{Start: Point{X: 70, Y: 8}, End: Point{X: 70, Y: 11}}}
	out, err := ApplyMeasurement(result, m, ctx, pending)
	if err != nil {
		t.Fatalf("ApplyMeasurement: %v", err)
	}
	if out.SHeightPct != 3 {
		t.Fatalf("s height = %v, want 3", out.SHeightPct)
	}
	if out.ClearSpace == nil {
		t.Fatalf("clearspace box missing")
	}

	check := result.Find("logo-clearspace")
	if check.Status != StatusPending || !check.ManuallyAdjusted {
		t.Fatalf("clearspace = %s adjusted=%v, want pending + adjusted", check.Status, check.ManuallyAdjusted)
	}
	if !pending.Has("logo-clearspace") {
		t.Fatalf("clearspace needs AI confirmation, must be queued")
	}
}

func TestReconcileNilPrevious(t *testing.T) {
	ctx := landscapeCtx()
	result, pending := Reconcile(nil, &ai.Analysis{}, ctx)
	if result == nil || pending.Len() != 0 {
		t.Fatalf("first analysis must produce a fresh result with empty queue")
	}
}

func TestReconcilePreservesMeasuredChecks(t *testing.T) {
	ctx := &BuildContext{Format: FormatPortrait, VisualType: VisualWithoutSmile, Width: 1000, Height: 2000, UploadYear: 2026}
	prev := BuildChecks(&ai.Analysis{}, ctx)

	m := Measurement{Mode: DrawFrameBorder, Line: Line{Start: Point{X: 10, Y: 10}, End: Point{X: 14, Y: 10}}}
	if _, err := ApplyMeasurement(prev, m, ctx, make(PendingSet)); err != nil {
		t.Fatalf("ApplyMeasurement: %v", err)
	}
	before := prev.Find("polaroid-border")

	next, pending := Reconcile(prev, &ai.Analysis{}, ctx)
	after := next.Find("polaroid-border")
	if after.Status != before.Status || after.Detail != before.Detail || !after.ManuallyAdjusted {
		t.Fatalf("measured border not preserved: %+v", after)
	}
	if pending.Has("polaroid-border") {
		t.Fatalf("measured border must never re-enter the queue")
	}
}

func TestReconcileRecomputesRegionChecks(t *testing.T) {
	ctx := landscapeCtx()
	ctx.Regions = EnsureRegions(nil)
	prev := BuildChecks(&ai.Analysis{}, ctx)

	// Human placed the bottle region at a passing height.
	region := Region{X: 20, Y: 15, Width: 30, Height: 75}
	ctx.Regions[RegionBottleScale] = region
	RecalculateRegion(prev, RegionBottleScale, region, ctx, make(PendingSet))

	// Fresh pass claims a failing scale; the preserved region wins.
	var fresh ai.Analysis
	fresh.ProductPackaging.BottleScale.Percentage = floatPtr(30)

	next, _ := Reconcile(prev, &fresh, ctx)
	check := next.Find("bottle-scale")
	if check.Status != StatusPass {
		t.Fatalf("reanalysis reverted manual bottle region: %s", check.Status)
	}
	if !check.ManuallyAdjusted {
		t.Fatalf("manual flag lost across reanalysis")
	}
}

func TestReconcileKeepsAdjustedPendingQueued(t *testing.T) {
	ctx := landscapeCtx()
	ctx.Regions = EnsureRegions(nil)
	prev := BuildChecks(&ai.Analysis{}, ctx)

	RecalculateRegion(prev, RegionLegalABV, Region{X: 60, Y: 80, Width: 10, Height: 5}, ctx, make(PendingSet))

	next, pending := Reconcile(prev, &ai.Analysis{}, ctx)
	check := next.Find("legal-has-abv")
	if check.Status != StatusPending || !check.ManuallyAdjusted {
		t.Fatalf("adjusted pending check = %s adjusted=%v, want preserved", check.Status, check.ManuallyAdjusted)
	}
	if !pending.Has("legal-has-abv") {
		t.Fatalf("still-pending adjusted check must stay queued")
	}
}

func TestReconcileTakesFreshDataForUntouchedChecks(t *testing.T) {
	ctx := landscapeCtx()
	prev := BuildChecks(&ai.Analysis{}, ctx)

	var fresh ai.Analysis
	fresh.LegalCompliance.AbvPresent.Detected = boolPtr(true)
	fresh.LegalCompliance.AbvPresent.Value = "40% ABV"

	next, _ := Reconcile(prev, &fresh, ctx)
	if check := next.Find("legal-has-abv"); check.Status != StatusPass {
		t.Fatalf("untouched check should follow fresh analysis, got %s", check.Status)
	}
}
