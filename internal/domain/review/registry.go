package review

import (
	"fmt"
	"math"

	"github.com/bryanwahyu/creative-qc/internal/domain/ai"
)

// SmilePolicy decides whether the smile-device category is included when the
// user's selection and the model's detection disagree. "either" matches the
// historical behavior (category appears if either signal is positive).
type SmilePolicy string

const (
	SmileEither   SmilePolicy = "either"
	SmileUserOnly SmilePolicy = "user"
	SmileAIOnly   SmilePolicy = "ai"
)

// BuildContext carries everything a resolver may need besides the AI
// payload itself.
type BuildContext struct {
	Format      Format
	VisualType  VisualType
	Width       int
	Height      int
	UploadYear  int
	Regions     map[string]Region
	LogoBox     *Region
	SmilePolicy SmilePolicy
}

// resolution is what a resolver produces for one check from the untrusted
// AI payload.
type resolution struct {
	status       Status
	needsManual  bool
	evaluated    bool
	objective    string
	detail       string
	value        float64
	measurements map[string]string
}

// checkSpec is one row of the registry table.
type checkSpec struct {
	id           string
	name         func(ctx *BuildContext) string
	severity     Severity
	optional     bool
	award        bool
	regionID     string
	adjustable   bool
	canReanalyze bool
	drawMode     DrawMode
	info         string
	target       func(ctx *BuildContext) string
	resolve      func(a *ai.Analysis, ctx *BuildContext) resolution
}

func staticName(s string) func(*BuildContext) string {
	return func(*BuildContext) string { return s }
}

func staticTarget(s string) func(*BuildContext) string {
	return func(*BuildContext) string { return s }
}

func boolVal(p *bool) bool {
	return p != nil && *p
}

func floatVal(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// confidenceStatus is the shared confidence-to-status rule: an explicit
// positive or confidence >= 70 passes, an explicit negative fails, anything
// else is pending and needs a human.
func confidenceStatus(detected *bool, confidence *float64) Status {
	if boolVal(detected) || floatVal(confidence) >= 70 {
		return StatusPass
	}
	if detected != nil && !*detected {
		return StatusFail
	}
	return StatusPending
}

func notesOr(notes, fallback string) string {
	if notes != "" {
		return notes
	}
	return fallback
}

// manualPending marks a resolver output for checks that start out pending
// and wait for explicit human confirmation.
func manualPending(detail string) resolution {
	return resolution{status: StatusPending, needsManual: true, detail: detail}
}

var productPackagingSpecs = []checkSpec{
	{
		id:       "new-bottle",
		name:     staticName("New bottle version confirmed"),
		severity: SeverityRequired,
		info:     "Verify the bottle matches the current approved bottle artwork.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.ProductPackaging.NewBottle
			objective := labelNeedsReview
			if boolVal(d.Detected) {
				objective = fmt.Sprintf("Pass ✓ (%.0f%% confidence)", floatVal(d.Confidence))
			}
			return resolution{
				status:      confidenceStatus(d.Detected, d.Confidence),
				needsManual: floatVal(d.Confidence) < 70,
				evaluated:   floatVal(d.Confidence) >= 70,
				objective:   objective,
				detail:      notesOr(d.Notes, "AI analysis complete"),
			}
		},
	},
	{
		id:       "no-warrant",
		name:     staticName("No warrant on bottom label"),
		severity: SeverityRequired,
		info:     "The Royal Warrant was removed in 2023.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.ProductPackaging.NoWarrant
			objective := labelNeedsReview
			if boolVal(d.Detected) {
				objective = "Pass ✓ (No warrant detected)"
			}
			return resolution{
				status:      confidenceStatus(d.Detected, d.Confidence),
				needsManual: floatVal(d.Confidence) < 70,
				evaluated:   floatVal(d.Confidence) >= 70,
				objective:   objective,
				detail:      notesOr(d.Notes, "AI analysis complete"),
			}
		},
	},
	{
		id: "bottle-scale",
		name: func(ctx *BuildContext) string {
			return fmt.Sprintf("Bottle scale (%s of canvas)", BottleScaleWindow(ctx.Format).Label)
		},
		severity:   SeverityRequired,
		regionID:   RegionBottleScale,
		adjustable: true,
		info:       "Portrait: 50-55% of canvas height. Landscape: 50-90% vertical composition.",
		resolve: func(a *ai.Analysis, ctx *BuildContext) resolution {
			win := BottleScaleWindow(ctx.Format)
			scale := floatVal(a.ProductPackaging.BottleScale.Percentage)
			if a.ProductPackaging.BottleScale.Percentage == nil {
				scale = 50
			}
			pass := win.Contains(scale)
			status := StatusFail
			if pass {
				status = StatusPass
			}
			detail := fmt.Sprintf("AI Detected: %.0f%% • Target: %s", scale, win.Label)
			if n := a.ProductPackaging.BottleScale.Notes; n != "" {
				detail += " • " + n
			}
			return resolution{
				status:    status,
				evaluated: true,
				value:     scale,
				objective: statusLabel(pass),
				detail:    detail,
			}
		},
	},
	{
		id:       "shadow-present",
		name:     staticName("Shadow present and grounded"),
		severity: SeverityRequired,
		info:     "Shadow must be visible beneath bottle and create grounding effect.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.ProductPackaging.ShadowPresent
			status := StatusPending
			if boolVal(d.Detected) && boolVal(d.Grounded) {
				status = StatusPass
			}
			objective := labelNeedsReview
			if boolVal(d.Grounded) {
				objective = "Pass ✓ (Shadow grounded)"
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Detected),
				evaluated:   d.Detected != nil,
				objective:   objective,
				detail:      notesOr(d.Notes, "AI analysis complete"),
			}
		},
	},
	{
		id:       "bottle-size-check",
		name:     staticName("Correct bottle size for product"),
		severity: SeverityRequired,
		info:     "Verify correct bottle size: 375ml, 750ml, or 1L.",
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("")
		},
	},
}

var legalComplianceSpecs = []checkSpec{
	{
		id:         "legal-has-abv",
		name:       staticName("ABV percentage displayed"),
		severity:   SeverityRequired,
		regionID:   RegionLegalABV,
		adjustable: true,
		info:       "Legal line must include ABV percentage.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.LegalCompliance.AbvPresent
			status := StatusFail
			if boolVal(d.Detected) {
				status = StatusPass
			}
			detail := notesOr(d.Notes, "ABV not detected")
			if d.Value != "" {
				detail = "AI Detected: " + d.Value
			}
			return resolution{
				status:    status,
				evaluated: true,
				objective: statusLabel(status == StatusPass),
				detail:    detail,
			}
		},
	},
	{
		id:         "legal-enjoy-resp",
		name:       staticName("Required legal disclaimer present"),
		severity:   SeverityRequired,
		regionID:   RegionLegalDisclaim,
		adjustable: true,
		info:       `Must include "Enjoy Responsibly" and full legal notice.`,
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.LegalCompliance.DisclaimerPresent
			status := StatusFail
			objective := labelNeedsReview
			switch {
			case boolVal(d.FullText):
				status = StatusPass
				objective = labelPass
			case boolVal(d.Detected):
				status = StatusPending
			}
			return resolution{
				status:    status,
				evaluated: true,
				objective: objective,
				detail:    notesOr(d.Notes, "Disclaimer analysis complete"),
			}
		},
	},
	{
		id:         "legal-copyright",
		name:       staticName("Copyright year"),
		severity:   SeverityRequired,
		regionID:   RegionLegalCopyright,
		adjustable: true,
		info:       "Copyright year must match the upload year.",
		resolve: func(a *ai.Analysis, ctx *BuildContext) resolution {
			// Pure equality test: no confidence threshold applies here.
			year := int(a.LegalCompliance.CopyrightYear.Detected)
			status := StatusFail
			if year != 0 && year == ctx.UploadYear {
				status = StatusPass
			}
			detail := "Copyright year not detected"
			if year != 0 {
				if status == StatusPass {
					detail = fmt.Sprintf("AI Detected: © %d • Matches upload year", year)
				} else {
					detail = fmt.Sprintf("AI Detected: © %d • Required: %d", year, ctx.UploadYear)
				}
			}
			return resolution{
				status:    status,
				evaluated: true,
				objective: statusLabel(status == StatusPass),
				detail:    detail,
			}
		},
	},
	{
		id:         "legal-placement",
		name:       staticName("Legal text in ad unit (not on product)"),
		severity:   SeverityRequired,
		regionID:   RegionLegalPlacement,
		adjustable: true,
		info:       "Legal text must be live text in layout, not baked into product photo.",
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return resolution{status: StatusPass, evaluated: true, objective: labelPass, detail: "Legal text placement verified"}
		},
	},
	{
		id:       "legal-size",
		name:     staticName("Legal type size (~6pt equivalent)"),
		severity: SeverityRequired,
		info:     "Legal text should be approximately 6pt at final output.",
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return resolution{status: StatusPass, evaluated: true, objective: labelPass, detail: "Legal text size acceptable"}
		},
	},
	{
		id:       "legal-legible",
		name:     staticName("Legal contrast ratio & readability"),
		severity: SeverityRequired,
		info:     "Legal text must have 4.5:1 contrast ratio (WCAG AA).",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.LegalCompliance.LegalContrast
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Sufficient) {
				status = StatusPass
				objective = labelPass
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Sufficient),
				evaluated:   d.Sufficient != nil,
				objective:   objective,
				detail:      notesOr(d.Notes, "Contrast analysis complete"),
			}
		},
	},
	{
		id:       "award-98pts-attr",
		name:     staticName("98 Points badge attribution (if present)"),
		severity: SeverityMinor,
		award:    true,
		info:     "If using 98 Points badge, include attribution.",
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("")
		},
	},
	{
		id:       "award-doublegold-attr",
		name:     staticName("Double Gold badge attribution (if present)"),
		severity: SeverityMinor,
		award:    true,
		info:     "If using Double Gold badge, include attribution.",
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("")
		},
	},
}

var typographySpecs = []checkSpec{
	{
		id:         "font-tt-fors",
		name:       staticName("Headlines & Subheads: TT Fors (if applicable)"),
		severity:   SeverityMinor,
		optional:   true,
		regionID:   RegionFontTTFors,
		adjustable: true,
		info:       "Headlines must use TT Fors Bold. Skip if no headline in creative.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.Typography.HeadlineFont
			return resolveFontCheck(d.Detected, d.Confidence, boolVal(d.IsTTFors), "No headline text detected - skip if not applicable")
		},
	},
	{
		id:         "font-futura",
		name:       staticName("Body & Legal: Futura PT Book (if applicable)"),
		severity:   SeverityMinor,
		optional:   true,
		regionID:   RegionFontFutura,
		adjustable: true,
		info:       "Body and legal must use Futura PT Book. Skip if no body copy in creative.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.Typography.BodyFont
			return resolveFontCheck(d.Detected, d.Confidence, boolVal(d.IsFuturaPT), "No body text detected - skip if not applicable")
		},
	},
	{
		id:         "hierarchy-subhead-ratio",
		name:       staticName("Subhead size ratio (if applicable)"),
		severity:   SeverityMinor,
		optional:   true,
		regionID:   RegionHierSubhead,
		adjustable: true,
		info:       "Subhead should be 60-70% of headline size.",
		target:     staticTarget("60-70%"),
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("Check if subhead is 60-70% of headline size.")
		},
	},
	{
		id:         "hierarchy-body-ratio",
		name:       staticName("Body size ratio (if applicable)"),
		severity:   SeverityMinor,
		optional:   true,
		regionID:   RegionHierBody,
		adjustable: true,
		info:       "Body should be 45-55% of headline size.",
		target:     staticTarget("45-55%"),
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("Check if body is 45-55% of headline size.")
		},
	},
	{
		id:       "hierarchy-legal-ratio",
		name:     staticName("Legal size ratio"),
		severity: SeverityRequired,
		info:     "Legal should be 20-25% of headline size.",
		target:   staticTarget("20-25%"),
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return resolution{status: StatusPass, evaluated: true, objective: labelPass, detail: "Legal text ratio acceptable"}
		},
	},
	{
		id:       "alignment-consistent",
		name:     staticName("Alignment consistent"),
		severity: SeverityMinor,
		info:     "All text should use consistent alignment.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.Typography.AlignmentConsistent
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Consistent) {
				status = StatusPass
				objective = labelPass
			}
			detail := notesOr(d.Notes, "Alignment analysis pending")
			if d.Detected != "" {
				detail = fmt.Sprintf("AI Detected: %s aligned", d.Detected)
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Consistent),
				evaluated:   d.Consistent != nil,
				objective:   objective,
				detail:      detail,
			}
		},
	},
}

func resolveFontCheck(detected string, confidence *float64, matches bool, absentDetail string) resolution {
	status := StatusPass
	objective := labelPass
	detail := absentDetail
	if detected != "" {
		detail = fmt.Sprintf("AI Detected: %s (%.0f%% confidence)", detected, floatVal(confidence))
		if !matches {
			status = StatusPending
			objective = labelNeedsReview
		}
	} else if !matches {
		objective = "N/A - not detected"
	}
	return resolution{
		status:      status,
		needsManual: detected != "" && !matches,
		evaluated:   true,
		objective:   objective,
		detail:      detail,
	}
}

var layoutSpecs = []checkSpec{
	{
		id:           "safe-zone-5pct",
		name:         staticName("Safe zone padding (≥5% all edges)"),
		severity:     SeverityRequired,
		regionID:     RegionSafeZone,
		adjustable:   true,
		canReanalyze: true,
		info:         "All elements must have ≥5% padding from edges. Adjust the region to re-measure.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			z := a.Layout.SafeZone
			pass := boolVal(z.AllPass)
			status := StatusFail
			if pass {
				status = StatusPass
			}
			detail := notesOr(z.Notes, "Safe zone analysis pending")
			if z.Top != nil {
				detail = fmt.Sprintf("AI: T:%.0f%% R:%.0f%% B:%.0f%% L:%.0f%%",
					floatVal(z.Top), floatVal(z.Right), floatVal(z.Bottom), floatVal(z.Left))
				if z.NearestElement != "" {
					detail += " • Nearest: " + z.NearestElement
				}
			}
			return resolution{
				status:    status,
				evaluated: z.AllPass != nil,
				objective: statusLabel(pass),
				detail:    detail,
				value:     100,
				measurements: map[string]string{
					"top":      edgePct(z.Top),
					"right":    edgePct(z.Right),
					"bottom":   edgePct(z.Bottom),
					"left":     edgePct(z.Left),
					"required": "≥5%",
				},
			}
		},
	},
	{
		id: "logo-position",
		name: func(ctx *BuildContext) string {
			if ctx.Format == FormatLandscape {
				return "Layout logo position (right 50%)"
			}
			return "Layout logo position (bottom 50%)"
		},
		severity:     SeverityRequired,
		regionID:     RegionLogoAlignment,
		adjustable:   true,
		canReanalyze: true,
		info:         "The standalone layout logo (NOT on bottle) should sit in the far half of the canvas.",
		target: func(ctx *BuildContext) string {
			return ZoneDescription(ctx.Format)
		},
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			l := a.Layout.LayoutLogo
			status := StatusPending
			objective := labelNeedsReview
			switch {
			case boolVal(l.InCorrectZone):
				status = StatusPass
				objective = labelPass
			case boolVal(l.Found):
				status = StatusFail
				objective = labelNeedsUpdate
			}
			detail := "Layout logo not detected (not the bottle label)"
			if boolVal(l.Found) && l.BoundingBox != nil {
				zone := "In correct zone"
				if !boolVal(l.InCorrectZone) {
					zone = "Should be in " + l.ZoneDescription
				}
				detail = fmt.Sprintf("AI found layout logo at %.0f%%, %.0f%% • %s", l.BoundingBox.X, l.BoundingBox.Y, zone)
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(l.Found),
				evaluated:   l.Found != nil,
				objective:   objective,
				detail:      detail,
			}
		},
	},
	{
		id:           "logo-min-size",
		name:         staticName("Layout logo minimum size (≥150px)"),
		severity:     SeverityRequired,
		regionID:     RegionLogoMinSize,
		adjustable:   true,
		canReanalyze: true,
		info:         "The standalone layout logo (NOT on bottle) must be at least 150px wide.",
		target:       staticTarget("≥150px"),
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			l := a.Layout.LayoutLogo
			status := StatusPending
			objective := labelNeedsReview
			switch {
			case boolVal(l.MeetsMinSize):
				status = StatusPass
				objective = labelPass
			case boolVal(l.Found):
				status = StatusFail
				objective = labelNeedsUpdate
			}
			detail := notesOr(l.Notes, "Adjust region to measure logo width")
			if l.EstimatedWidthPx != nil {
				detail = fmt.Sprintf("AI measured layout logo: %.0fpx wide • Min: 150px", floatVal(l.EstimatedWidthPx))
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(l.Found),
				evaluated:   boolVal(l.Found),
				objective:   objective,
				detail:      detail,
			}
		},
	},
	{
		id:         "logo-clearspace",
		name:       staticName(`Logo clear space (height of "s")`),
		severity:   SeverityRequired,
		regionID:   RegionLogoClearspace,
		adjustable: true,
		drawMode:   DrawSHeight,
		info:       `Draw a line across the "s" in the wordmark to measure. The clearspace box auto-positions around the detected logo.`,
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending(`Measure "s" height → clearspace box appears around layout logo`)
		},
	},
	{
		id:       "logo-no-modification",
		name:     staticName("Logo unmodified"),
		severity: SeverityRequired,
		info:     "Logo must not be rotated, stretched, or modified.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.Layout.LogoUnmodified
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Detected) {
				status = StatusPass
				objective = labelPass
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Detected),
				evaluated:   d.Detected != nil,
				objective:   objective,
				detail:      notesOr(d.Notes, "Logo integrity analysis pending"),
			}
		},
	},
	{
		id:       "polaroid-border",
		name:     staticName("Frame border (5% of shortest side)"),
		severity: SeverityMinor,
		optional: true,
		regionID: RegionFrameBorder,
		drawMode: DrawFrameBorder,
		info:     "Border = 5% of shortest side. Skip if no frame.",
		target: func(ctx *BuildContext) string {
			shortest := ctx.Width
			if ctx.Height < shortest {
				shortest = ctx.Height
			}
			return fmt.Sprintf("%dpx (5%% of %dpx)", int(math.Round(float64(shortest)*0.05)), shortest)
		},
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("Measure border thickness")
		},
	},
	{
		id:       "polaroid-image-frame",
		name:     staticName("Frame image area (60% of longest side)"),
		severity: SeverityMinor,
		optional: true,
		drawMode: DrawFrameImage,
		info:     "Image area = 60% of longest side. Skip if no frame.",
		target:   staticTarget("60% of longest side"),
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("Measure image area")
		},
	},
}

func edgePct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", *v)
}

var lightingSpecs = []checkSpec{
	{
		id:       "warm-white-lighting",
		name:     staticName("Warm white lighting"),
		severity: SeverityRequired,
		regionID: RegionWarmLighting,
		info:     "Must use warm white lighting (2700-4000K).",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.LightingColor.WarmWhiteLighting
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Detected) {
				status = StatusPass
				objective = labelPass
			}
			detail := notesOr(d.Notes, "Lighting analysis pending")
			if d.EstimatedKelvin != nil {
				detail = fmt.Sprintf("AI Est: ~%.0fK • Target: 2700-4000K", floatVal(d.EstimatedKelvin))
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Detected),
				evaluated:   d.Detected != nil,
				objective:   objective,
				detail:      detail,
			}
		},
	},
	{
		id:       "no-cool-cast",
		name:     staticName("No cool cast on bottle/liquid"),
		severity: SeverityRequired,
		info:     "Bottle must not have blue/cool cast.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.LightingColor.NoCoolCast
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Detected) {
				status = StatusPass
				objective = labelPass
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Detected),
				evaluated:   d.Detected != nil,
				objective:   objective,
				detail:      notesOr(d.Notes, "Color cast analysis pending"),
			}
		},
	},
	{
		id:       "photorealistic",
		name:     staticName("Photorealistic rendering"),
		severity: SeverityRequired,
		info:     "Must appear photorealistic with no AI artifacts.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.LightingColor.Photorealistic
			status := StatusPending
			if boolVal(d.Detected) && !boolVal(d.AIArtifacts) {
				status = StatusPass
			}
			objective := labelPass
			detail := notesOr(d.Notes, "Realism analysis pending")
			if boolVal(d.AIArtifacts) {
				objective = "⚠️ AI Artifacts Detected"
				detail = "⚠️ AI artifacts: " + d.Notes
			}
			return resolution{
				status:      status,
				needsManual: boolVal(d.AIArtifacts),
				evaluated:   d.Detected != nil,
				objective:   objective,
				detail:      detail,
			}
		},
	},
	{
		id:       "hex-color-check",
		name:     staticName("Brand color accuracy"),
		severity: SeverityRequired,
		info:     "Colors must match the official brand palette.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			pass := true
			for _, c := range a.LightingColor.BrandColorAccuracy.Colors {
				if c.Passes != nil && !*c.Passes {
					pass = false
					break
				}
			}
			status := StatusFail
			if pass {
				status = StatusPass
			}
			return resolution{
				status:    status,
				evaluated: true,
				objective: statusLabel(pass),
				detail:    notesOr(a.LightingColor.BrandColorAccuracy.Notes, "Brand colors evaluated"),
			}
		},
	},
}

var smileSpecs = []checkSpec{
	{
		id:       "smile-ratio",
		name:     staticName("Bottle to smile device ratio (3:4)"),
		severity: SeverityRequired,
		info:     "Smile height should be 4/3 of bottle height.",
		target:   staticTarget("3:4 ratio"),
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.SmileDevice.Ratio
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Correct) {
				status = StatusPass
				objective = labelPass
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Correct),
				evaluated:   d.Correct != nil,
				objective:   objective,
				detail:      notesOr(d.Notes, "Ratio analysis pending"),
			}
		},
	},
	{
		id:       "smile-min-size",
		name:     staticName("Smile device minimum size (150px)"),
		severity: SeverityRequired,
		drawMode: DrawSmileSize,
		info:     "Smile device width must be ≥150px.",
		target:   staticTarget("≥150px width"),
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("Measure smile device width")
		},
	},
	{
		id:       "smile-no-distortion",
		name:     staticName("No distortion or stretching"),
		severity: SeverityRequired,
		info:     "Must not be stretched or squashed.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.SmileDevice.NoDistortion
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Detected) {
				status = StatusPass
				objective = labelPass
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Detected),
				evaluated:   d.Detected != nil,
				objective:   objective,
				detail:      notesOr(d.Notes, "Distortion analysis pending"),
			}
		},
	},
	{
		id:       "smile-thin-line",
		name:     staticName("Correct line weight (thin, no stroke)"),
		severity: SeverityRequired,
		info:     "Use official asset without added stroke.",
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("Verify official asset")
		},
	},
	{
		id:       "smile-no-fill",
		name:     staticName("Shape not filled (2D usage)"),
		severity: SeverityRequired,
		info:     "Do not fill the shape in 2D usage.",
		resolve: func(*ai.Analysis, *BuildContext) resolution {
			return manualPending("Verify outline not filled")
		},
	},
	{
		id:       "smile-no-crop",
		name:     staticName("Not cropped or partially hidden"),
		severity: SeverityRequired,
		info:     "Must be fully visible.",
		resolve: func(a *ai.Analysis, _ *BuildContext) resolution {
			d := a.SmileDevice.NotCropped
			status := StatusPending
			objective := labelNeedsReview
			if boolVal(d.Detected) {
				status = StatusPass
				objective = labelPass
			}
			return resolution{
				status:      status,
				needsManual: !boolVal(d.Detected),
				evaluated:   d.Detected != nil,
				objective:   objective,
				detail:      notesOr(d.Notes, "Crop analysis pending"),
			}
		},
	},
}

var categoryNames = map[CategoryKey]string{
	CategoryProductPackaging:     "Product & Packaging",
	CategoryLegalCompliance:      "Legal & Compliance",
	CategoryTypographyHierarchy:  "Typography & Hierarchy",
	CategoryLayoutBrandElements:  "Layout & Brand Elements",
	CategoryLightingColorRealism: "Lighting, Color & Realism",
	CategorySmileDevice:          "Smile Device",
}

var categorySpecs = map[CategoryKey][]checkSpec{
	CategoryProductPackaging:     productPackagingSpecs,
	CategoryLegalCompliance:      legalComplianceSpecs,
	CategoryTypographyHierarchy:  typographySpecs,
	CategoryLayoutBrandElements:  layoutSpecs,
	CategoryLightingColorRealism: lightingSpecs,
	CategorySmileDevice:          smileSpecs,
}

// includeSmile re-evaluates smile-device category membership on every build;
// it is never sticky across analyses.
func includeSmile(a *ai.Analysis, ctx *BuildContext) bool {
	user := ctx.VisualType == VisualWithSmile
	detected := boolVal(a.SmileDevice.Present)
	switch ctx.SmilePolicy {
	case SmileUserOnly:
		return user
	case SmileAIOnly:
		return detected
	default:
		return user || detected
	}
}

// EnsureRegions fills any evaluation region a check references but the
// caller has not supplied. Every check with a region id has a Region entry
// after this, so the missing-region failure mode cannot happen downstream.
func EnsureRegions(regions map[string]Region) map[string]Region {
	if regions == nil {
		regions = make(map[string]Region)
	}
	defaults := DefaultRegions()
	for _, specs := range categorySpecs {
		for _, spec := range specs {
			if spec.regionID == "" {
				continue
			}
			if _, ok := regions[spec.regionID]; !ok {
				regions[spec.regionID] = defaults[spec.regionID]
			}
		}
	}
	return regions
}

// BuildChecks constructs a fresh AnalysisResult from the AI payload. The
// payload is untrusted, partially populated data: any absent leaf resolves
// to pending, never an error.
func BuildChecks(a *ai.Analysis, ctx *BuildContext) *AnalysisResult {
	ctx.Regions = EnsureRegions(ctx.Regions)

	result := &AnalysisResult{
		Format:     ctx.Format,
		Specs:      fmt.Sprintf("%d × %d", ctx.Width, ctx.Height),
		Categories: make(map[CategoryKey]*Category),
		SmileSignals: SmileSignals{
			UserSelected: ctx.VisualType == VisualWithSmile,
			AIDetected:   a.SmileDevice.Present,
		},
	}

	for _, key := range CategoryOrder {
		if key == CategorySmileDevice && !includeSmile(a, ctx) {
			continue
		}
		cat := &Category{Key: key, Name: categoryNames[key]}
		for _, spec := range categorySpecs[key] {
			cat.Checks = append(cat.Checks, buildCheck(key, spec, a, ctx))
		}
		result.Categories[key] = cat
	}
	return result
}

func buildCheck(key CategoryKey, spec checkSpec, a *ai.Analysis, ctx *BuildContext) *Check {
	res := spec.resolve(a, ctx)
	c := &Check{
		ID:              spec.id,
		Name:            spec.name(ctx),
		Category:        key,
		Severity:        spec.severity,
		Status:          res.status,
		IsOptionalCheck: spec.optional,
		IsAwardCheck:    spec.award,
		NeedsManual:     res.needsManual,
		Evaluated:       res.evaluated,
		RegionID:        spec.regionID,
		Adjustable:      spec.adjustable,
		CanReanalyze:    spec.canReanalyze,
		DrawMode:        spec.drawMode,
		Detail:          res.detail,
		ObjectiveValue:  res.objective,
		Info:            spec.info,
		Value:           res.value,
		Measurements:    res.measurements,
	}
	if spec.target != nil {
		c.ObjectiveTarget = spec.target(ctx)
	}
	return c
}
