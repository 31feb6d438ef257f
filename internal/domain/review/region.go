package review

// Region is a normalized rectangle over the creative, all fields in
// percent-of-canvas units (0-100). Keyed either by a check's own id or by a
// shared region id feeding several checks (e.g. logo-clearspace).
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label,omitempty"`
}

// minRegionSize is the smallest width/height a resize may produce.
const minRegionSize = 10

func (r Region) CenterX() float64 { return r.X + r.Width/2 }
func (r Region) CenterY() float64 { return r.Y + r.Height/2 }

// TranslatedTo moves the region to (x, y), clamped so it stays fully inside
// the canvas. Clamping happens on every intermediate move, not only on
// commit.
func (r Region) TranslatedTo(x, y float64) Region {
	r.X = clamp(x, 0, 100-r.Width)
	r.Y = clamp(y, 0, 100-r.Height)
	return r
}

// ResizedTo sets the region's size, clamped to the canvas and to the
// minimum size.
func (r Region) ResizedTo(width, height float64) Region {
	r.Width = clamp(width, minRegionSize, 100-r.X)
	r.Height = clamp(height, minRegionSize, 100-r.Y)
	return r
}

// Expanded grows the region by margin on all four sides (the logo
// clear-space box grows outward from the logo bounds), clamped to canvas.
func (r Region) Expanded(margin float64) Region {
	out := Region{
		X:      clamp(r.X-margin, 0, 100),
		Y:      clamp(r.Y-margin, 0, 100),
		Label:  r.Label,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
	out.Width = clamp(out.Width, 0, 100-out.X)
	out.Height = clamp(out.Height, 0, 100-out.Y)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Region ids shared across checks.
const (
	RegionBottleScale    = "bottle-scale"
	RegionLegalABV       = "legal-has-abv"
	RegionLegalDisclaim  = "legal-enjoy-resp"
	RegionLegalCopyright = "legal-copyright"
	RegionLegalPlacement = "legal-placement"
	RegionFontTTFors     = "font-tt-fors"
	RegionFontFutura     = "font-futura"
	RegionHierHeadline   = "hierarchy-headline"
	RegionHierSubhead    = "hierarchy-subhead"
	RegionHierBody       = "hierarchy-body"
	RegionSafeZone       = "safe-zone"
	RegionLogoAlignment  = "logo-alignment"
	RegionLogoMinSize    = "logo-min-size"
	RegionLogoClearspace = "logo-clearspace"
	RegionFrameBorder    = "polaroid-border"
	RegionWarmLighting   = "warm-white-lighting"
)

// DefaultRegions seeds every evaluation region with a sensible starting
// rectangle; the user drags them into place from there.
func DefaultRegions() map[string]Region {
	return map[string]Region{
		RegionBottleScale:    {X: 15, Y: 20, Width: 35, Height: 70, Label: "Bottle Scale"},
		RegionLegalABV:       {X: 62, Y: 82, Width: 8, Height: 4, Label: "ABV: 40%"},
		RegionLegalDisclaim:  {X: 55, Y: 78, Width: 42, Height: 12, Label: "Legal Disclaimer"},
		RegionLegalCopyright: {X: 85, Y: 88, Width: 12, Height: 3, Label: "Copyright Line"},
		RegionLegalPlacement: {X: 55, Y: 78, Width: 42, Height: 12, Label: "Legal Text Area"},
		RegionFontTTFors:     {X: 55, Y: 25, Width: 40, Height: 15, Label: "Headline: TT Fors"},
		RegionFontFutura:     {X: 55, Y: 78, Width: 42, Height: 12, Label: "Body/Legal: Futura PT"},
		RegionHierHeadline:   {X: 55, Y: 25, Width: 40, Height: 10, Label: "Headline"},
		RegionHierSubhead:    {X: 55, Y: 36, Width: 35, Height: 8, Label: "Subhead"},
		RegionHierBody:       {X: 55, Y: 45, Width: 38, Height: 30, Label: "Body Copy"},
		RegionSafeZone:       {X: 5, Y: 5, Width: 90, Height: 90, Label: "Safe Zone (5% padding)"},
		RegionLogoAlignment:  {X: 60, Y: 5, Width: 35, Height: 10, Label: "Logo Position"},
		RegionLogoMinSize:    {X: 60, Y: 5, Width: 35, Height: 10, Label: "Logo Size"},
		RegionLogoClearspace: {X: 58, Y: 3, Width: 39, Height: 14, Label: "Logo Clear Space"},
		RegionFrameBorder:    {X: 0, Y: 0, Width: 100, Height: 100, Label: "Frame Border"},
		RegionWarmLighting:   {X: 5, Y: 5, Width: 90, Height: 90, Label: "Lighting: ~3200K"},
	}
}
