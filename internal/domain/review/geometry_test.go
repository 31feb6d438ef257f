package review

import (
	"testing"
)

func TestSafeZoneEdges(t *testing.T) {
	cases := []struct {
		name   string
		region Region
		top    float64
		right  float64
		bottom float64
		left   float64
		pass   bool
	}{
		{"centered box passes", Region{X: 5, Y: 5, Width: 90, Height: 90}, 5, 5, 5, 5, true},
		{"narrow box has wide right margin", Region{X: 5, Y: 5, Width: 80, Height: 90}, 5, 15, 5, 5, true},
		{"flush left edge fails", Region{X: 0, Y: 5, Width: 90, Height: 90}, 5, 10, 5, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edges := SafeZoneEdges(tc.region)
			if edges.Top != tc.top || edges.Right != tc.right || edges.Bottom != tc.bottom || edges.Left != tc.left {
				t.Fatalf("edges = %+v, want T:%v R:%v B:%v L:%v", edges, tc.top, tc.right, tc.bottom, tc.left)
			}
			v := EvalSafeZone(tc.region)
			if (v.Status == StatusPass) != tc.pass {
				t.Fatalf("status = %s, want pass=%v", v.Status, tc.pass)
			}
			if v.Status == StatusPending {
				t.Fatalf("safe zone verdict must be terminal, got pending")
			}
		})
	}
}

func TestBottleScaleWindowBoundaries(t *testing.T) {
	win := BottleScaleWindow(FormatPortrait)
	if win.Min != 50 || win.Max != 55 {
		t.Fatalf("portrait window = %+v, want 50-55", win)
	}
	cases := []struct {
		height float64
		pass   bool
	}{
		{50, true},
		{55, true},
		{55.1, false},
		{49.9, false},
	}
	for _, tc := range cases {
		v := EvalBottleScale(Region{X: 40, Y: 20, Width: 20, Height: tc.height}, win)
		if (v.Status == StatusPass) != tc.pass {
			t.Fatalf("height %v: status = %s, want pass=%v", tc.height, v.Status, tc.pass)
		}
	}

	land := BottleScaleWindow(FormatLandscape)
	if land.Min != 50 || land.Max != 90 {
		t.Fatalf("landscape window = %+v, want 50-90", land)
	}
	if v := EvalBottleScale(Region{Height: 75}, land); v.Status != StatusPass {
		t.Fatalf("75%% in landscape should pass, got %s", v.Status)
	}
}

func TestLogoWidthPx(t *testing.T) {
	if px := LogoWidthPx(Region{Width: 7.4}, 2000); px != 148 {
		t.Fatalf("7.4%% of 2000px = %d, want 148", px)
	}
	if px := LogoWidthPx(Region{Width: 7.6}, 2000); px != 152 {
		t.Fatalf("7.6%% of 2000px = %d, want 152", px)
	}
	if v := EvalLogoMinSize(Region{Width: 7.4}, 2000); v.Status != StatusFail {
		t.Fatalf("148px logo should fail, got %s", v.Status)
	}
	if v := EvalLogoMinSize(Region{Width: 7.6}, 2000); v.Status != StatusPass {
		t.Fatalf("152px logo should pass, got %s", v.Status)
	}
}

func TestLogoZoneByFormat(t *testing.T) {
	// center x = 60 → right half
	right := Region{X: 50, Y: 10, Width: 20, Height: 10}
	// center x = 30 → left half
	left := Region{X: 20, Y: 80, Width: 20, Height: 10}

	if v := EvalLogoZone(right, FormatLandscape); v.Status != StatusPass {
		t.Fatalf("landscape logo in right half should pass, got %s", v.Status)
	}
	if v := EvalLogoZone(left, FormatLandscape); v.Status != StatusFail {
		t.Fatalf("landscape logo in left half should fail, got %s", v.Status)
	}
	// portrait judges vertical center: y center 85 passes, 15 fails
	if v := EvalLogoZone(left, FormatPortrait); v.Status != StatusPass {
		t.Fatalf("portrait logo in bottom half should pass, got %s", v.Status)
	}
	if v := EvalLogoZone(Region{X: 20, Y: 10, Width: 20, Height: 10}, FormatPortrait); v.Status != StatusFail {
		t.Fatalf("portrait logo in top half should fail, got %s", v.Status)
	}
}

func TestLineDominantAxis(t *testing.T) {
	horizontal := Line{Start: Point{X: 10, Y: 50}, End: Point{X: 40, Y: 52}}
	length, vertical := horizontal.Dominant()
	if vertical {
		t.Fatalf("expected horizontal dominant axis")
	}
	if length != 30 {
		t.Fatalf("length = %v, want 30", length)
	}

	locked := horizontal.LockToAxis(Point{X: 40, Y: 52})
	if locked.End.Y != horizontal.Start.Y {
		t.Fatalf("horizontal lock should pin Y to start, got %v", locked.End.Y)
	}

	if !(Line{Start: Point{X: 5, Y: 5}, End: Point{X: 5, Y: 5}}).Degenerate() {
		t.Fatalf("zero-length line should be degenerate")
	}
}

func TestFrameVerdicts(t *testing.T) {
	if v := EvalFrameBorder(4.0); v.Status != StatusPass {
		t.Fatalf("4%% border within tolerance should pass, got %s", v.Status)
	}
	if v := EvalFrameBorder(7.0); v.Status != StatusFail {
		t.Fatalf("7%% border should fail, got %s", v.Status)
	}
	if v := EvalFrameImage(63.0); v.Status != StatusPass {
		t.Fatalf("63%% image area should pass, got %s", v.Status)
	}
	if v := EvalFrameImage(70.0); v.Status != StatusFail {
		t.Fatalf("70%% image area should fail, got %s", v.Status)
	}
}

func TestRegionClamping(t *testing.T) {
	r := Region{X: 10, Y: 10, Width: 30, Height: 20}

	moved := r.TranslatedTo(90, 95)
	if moved.X != 70 {
		t.Fatalf("X = %v, want clamped to 70", moved.X)
	}
	if moved.Y != 80 {
		t.Fatalf("Y = %v, want clamped to 80", moved.Y)
	}

	shrunk := r.ResizedTo(2, 3)
	if shrunk.Width != minRegionSize || shrunk.Height != minRegionSize {
		t.Fatalf("resize below minimum = %vx%v, want %vx%v", shrunk.Width, shrunk.Height, float64(minRegionSize), float64(minRegionSize))
	}

	grown := r.ResizedTo(200, 300)
	if grown.Width != 90 || grown.Height != 90 {
		t.Fatalf("resize past canvas = %vx%v, want 90x90", grown.Width, grown.Height)
	}
}

func TestClearSpaceBoxStaysOnCanvas(t *testing.T) {
	logo := Region{X: 2, Y: 2, Width: 20, Height: 10}
	box := ClearSpaceBox(logo, 5)
	if box.X < 0 || box.Y < 0 {
		t.Fatalf("clearspace box left the canvas: %+v", box)
	}
	if box.X+box.Width > 100 || box.Y+box.Height > 100 {
		t.Fatalf("clearspace box exceeds canvas: %+v", box)
	}
	if box.Width <= logo.Width {
		t.Fatalf("clearspace box should be wider than the logo")
	}
}
