package review

import (
	"fmt"
	"math"
)

// Verdict is what every measurement primitive returns: a status plus the
// derived display strings. Detail and ObjectiveValue are only ever produced
// here and in the registry resolvers, never patched elsewhere.
type Verdict struct {
	Status         Status
	ObjectiveValue string
	Detail         string
	Value          float64
	Measurements   map[string]string
}

// Display labels shared across evaluators.
const (
	labelPass        = "Pass ✓"
	labelNeedsUpdate = "Needs Update"
	labelNeedsReview = "Needs Review"
)

func statusLabel(pass bool) string {
	if pass {
		return labelPass
	}
	return labelNeedsUpdate
}

// Window is an inclusive numeric target range.
type Window struct {
	Min   float64
	Max   float64
	Label string
}

func (w Window) Contains(v float64) bool { return v >= w.Min && v <= w.Max }

// BottleScaleWindow returns the allowed bottle height as a fraction of
// canvas height: 50-55% for portrait, 50-90% otherwise.
func BottleScaleWindow(format Format) Window {
	if format == FormatPortrait {
		return Window{Min: 50, Max: 55, Label: "50-55%"}
	}
	return Window{Min: 50, Max: 90, Label: "50-90%"}
}

// EvalBottleScale measures the bottle region's height against the window.
func EvalBottleScale(region Region, win Window) Verdict {
	scale := region.Height
	pass := win.Contains(scale)
	status := StatusFail
	if pass {
		status = StatusPass
	}
	return Verdict{
		Status:         status,
		Value:          scale,
		ObjectiveValue: statusLabel(pass),
		Detail:         fmt.Sprintf("Manual: %.1f%% • Target: %s", scale, win.Label),
	}
}

// Edges holds the four distances from a region's bounds to the canvas edges.
type Edges struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// SafeZoneEdges derives edge padding from a single region's bounds.
func SafeZoneEdges(region Region) Edges {
	return Edges{
		Top:    region.Y,
		Left:   region.X,
		Right:  100 - (region.X + region.Width),
		Bottom: 100 - (region.Y + region.Height),
	}
}

const safeZoneMin = 5

func (e Edges) AllAtLeast(min float64) bool {
	return e.Top >= min && e.Right >= min && e.Bottom >= min && e.Left >= min
}

// EvalSafeZone checks >=5% padding on all four edges.
func EvalSafeZone(region Region) Verdict {
	edges := SafeZoneEdges(region)
	pass := edges.AllAtLeast(safeZoneMin)
	status := StatusFail
	if pass {
		status = StatusPass
	}
	return Verdict{
		Status:         status,
		ObjectiveValue: statusLabel(pass),
		Detail: fmt.Sprintf("Manual: T:%.1f%% R:%.1f%% B:%.1f%% L:%.1f%%",
			edges.Top, edges.Right, edges.Bottom, edges.Left),
		Measurements: map[string]string{
			"top":      fmt.Sprintf("%.1f%%", edges.Top),
			"right":    fmt.Sprintf("%.1f%%", edges.Right),
			"bottom":   fmt.Sprintf("%.1f%%", edges.Bottom),
			"left":     fmt.Sprintf("%.1f%%", edges.Left),
			"required": "≥5%",
		},
	}
}

const logoMinWidthPx = 150

// LogoWidthPx converts the region's percent width to pixels on the source
// image.
func LogoWidthPx(region Region, imageWidth int) int {
	return int(math.Round(region.Width / 100 * float64(imageWidth)))
}

// EvalLogoMinSize checks the layout logo is at least 150px wide.
func EvalLogoMinSize(region Region, imageWidth int) Verdict {
	px := LogoWidthPx(region, imageWidth)
	pass := px >= logoMinWidthPx
	status := StatusFail
	if pass {
		status = StatusPass
	}
	return Verdict{
		Status:         status,
		Value:          float64(px),
		ObjectiveValue: statusLabel(pass),
		Detail:         fmt.Sprintf("Manual: %dpx width • Min: %dpx", px, logoMinWidthPx),
	}
}

// EvalLogoZone checks zone membership: landscape wants the logo's center in
// the right half, portrait/square in the bottom half.
func EvalLogoZone(region Region, format Format) Verdict {
	var pass bool
	if format == FormatLandscape {
		pass = region.CenterX() >= 50
	} else {
		pass = region.CenterY() >= 50
	}
	status := StatusFail
	if pass {
		status = StatusPass
	}
	return Verdict{
		Status:         status,
		ObjectiveValue: statusLabel(pass),
		Detail:         fmt.Sprintf("Manual: Logo at %.1f%%, %.1f%% • Zone: %s", region.X, region.Y, ZoneDescription(format)),
	}
}

// ZoneDescription names the half of the canvas the layout logo belongs in.
func ZoneDescription(format Format) string {
	if format == FormatLandscape {
		return "right 50% of canvas"
	}
	return "bottom 50% of canvas"
}

// Point is a position in percent-of-canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a user-drawn measurement, constrained to its dominant axis.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Dominant returns the length along the dominant axis of the gesture and
// whether that axis is vertical.
func (l Line) Dominant() (length float64, vertical bool) {
	dx := math.Abs(l.End.X - l.Start.X)
	dy := math.Abs(l.End.Y - l.Start.Y)
	if dy > dx {
		return dy, true
	}
	return dx, false
}

// Degenerate reports a zero-length gesture, which must never be converted
// into a measurement.
func (l Line) Degenerate() bool {
	length, _ := l.Dominant()
	return length <= 0
}

// LockToAxis snaps the free end of an in-progress line onto the dominant
// axis of the gesture so far.
func (l Line) LockToAxis(at Point) Line {
	dx := math.Abs(at.X - l.Start.X)
	dy := math.Abs(at.Y - l.Start.Y)
	if dx > dy {
		l.End = Point{X: at.X, Y: l.Start.Y}
	} else {
		l.End = Point{X: l.Start.X, Y: at.Y}
	}
	return l
}

// Frame measurement targets: border line = 5% of canvas (±1.5), image area
// line = 60% (±5). Both resolve terminally with no AI re-verification.
const (
	frameBorderTarget    = 5.0
	frameBorderTolerance = 1.5
	frameImageTarget     = 60.0
	frameImageTolerance  = 5.0
)

// EvalFrameBorder compares a drawn border line against the 5% target.
func EvalFrameBorder(length float64) Verdict {
	pass := math.Abs(length-frameBorderTarget) <= frameBorderTolerance
	status := StatusFail
	if pass {
		status = StatusPass
	}
	tol := "Outside tolerance"
	if pass {
		tol = "Within tolerance"
	}
	return Verdict{
		Status:         status,
		Value:          length,
		ObjectiveValue: statusLabel(pass),
		Detail:         fmt.Sprintf("Measured: %.1f%% • Target: 5%% (±1.5) • %s", length, tol),
	}
}

// EvalFrameImage compares a drawn image-area line against the 60% target.
func EvalFrameImage(length float64) Verdict {
	pass := math.Abs(length-frameImageTarget) <= frameImageTolerance
	status := StatusFail
	if pass {
		status = StatusPass
	}
	tol := "Outside tolerance"
	if pass {
		tol = "Within tolerance"
	}
	return Verdict{
		Status:         status,
		Value:          length,
		ObjectiveValue: statusLabel(pass),
		Detail:         fmt.Sprintf("Measured: %.1f%% • Target: 60%% (±5) • %s", length, tol),
	}
}

// ClearSpaceBox expands the logo bounds by the measured "s" height on all
// four sides. The result is advisory: the clear-space rule is qualitative
// and still needs AI confirmation.
func ClearSpaceBox(logo Region, sHeight float64) Region {
	box := logo.Expanded(sHeight)
	box.Label = "Logo Clear Space"
	return box
}
