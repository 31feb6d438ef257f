package prompt

import (
	"fmt"
	"strings"
)

// Meta carries per-request facts interpolated into the prompts.
type Meta struct {
	Width      int
	Height     int
	Format     string
	VisualType string
	UploadYear int
}

func (m Meta) landscape() bool { return m.Width > m.Height }

func (m Meta) orientation() string {
	if m.landscape() {
		return "LANDSCAPE"
	}
	return "PORTRAIT"
}

func (m Meta) smileLine() string {
	if m.VisualType == "withSmile" {
		return "WITH smile device"
	}
	return "WITHOUT smile device"
}

func (m Meta) logoZone() string {
	if m.landscape() {
		return "right 50%"
	}
	return "bottom 50%"
}

func (m Meta) bottleScaleRule() string {
	if m.landscape() {
		return "50-90% (landscape)"
	}
	return "50-55% (portrait)"
}

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt(m Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a brand compliance QC analyst for Dewar's Scotch Whisky. Analyze this marketing creative image against official Brand Visual Identity (BVI) guidelines.

## IMAGE INFO
- Dimensions: %dx%dpx
- Format: %s (%s)
- Visual type: %s

## BRAND COLORS (Official BBI Palette)
- Whiskey Brown: #AD3826
- Warm White: #FFF9F4
- Blue Black: #101921

## CRITICAL: LAYOUT LOGO vs BOTTLE LOGO
There are TWO Dewar's logos in most creatives:
1. BOTTLE LOGO - printed on the physical bottle product (IGNORE THIS)
2. LAYOUT LOGO - the standalone Dewar's wordmark/lockup placed in the ad layout (ANALYZE THIS)

The LAYOUT LOGO is typically:
- In the %s of the image
- Larger and more prominent than the bottle label
- Often accompanied by "ESTD 1846" or tagline
- NOT on the bottle itself

## REQUIREMENTS TO CHECK:
1. PRODUCT: New bottle design (post-2023), no Royal Warrant, bottle scale %s, shadow present and grounded
2. LEGAL: ABV displayed (40%%), "ENJOY RESPONSIBLY" disclaimer, copyright year %d, legal text readable (~6pt), sufficient contrast
3. TYPOGRAPHY: TT Fors for headlines (Bold) and subheads (Medium), Futura PT Book for body/legal
4. LAYOUT:
   - Safe zone: >=5%% padding from all edges to nearest element
   - LAYOUT LOGO position: Should be in %s of canvas
   - LAYOUT LOGO size: Measure the standalone logo (NOT bottle label), must be >=150px wide
   - LAYOUT LOGO bounding box: Provide x, y, width, height as percentages of canvas
5. LIGHTING: Warm white (2700-4000K), no cool/blue cast, photorealistic (no AI artifacts)
6. SMILE DEVICE (if present): 3:4 bottle ratio, min 150px, no distortion, not filled, not cropped

Return ONLY valid JSON (no markdown, no code blocks) with this structure:
`,
		m.Width, m.Height, m.Format, m.orientation(), m.smileLine(),
		m.logoZone(), m.bottleScaleRule(), m.UploadYear, m.logoZone())
	fmt.Fprintf(&b, responseSchema, m.UploadYear, m.logoZone())
	return b.String()
}

// GetUserPrompt builds the compact text part that rides along the image.
func GetUserPrompt(m Meta) string {
	return fmt.Sprintf("Image: %dx%dpx (%s)\nVisual type: %s\n\nAnalyze against the guidelines and respond with the JSON per schema.",
		m.Width, m.Height, m.Format, m.smileLine())
}

// responseSchema mirrors the shape the result decoder expects. Fields the
// model cannot judge may be omitted; absent leaves resolve to pending on
// our side.
const responseSchema = `{
  "productPackaging": {
    "newBottle": { "detected": true/false, "confidence": 0-100, "notes": "string" },
    "noWarrant": { "detected": true/false, "confidence": 0-100, "notes": "string" },
    "bottleScale": { "percentage": number, "status": "pass"/"fail", "notes": "string" },
    "shadowPresent": { "detected": true/false, "grounded": true/false, "notes": "string" }
  },
  "legalCompliance": {
    "abvPresent": { "detected": true/false, "value": "40%%" or null, "notes": "string" },
    "disclaimerPresent": { "detected": true/false, "fullText": true/false, "notes": "string" },
    "copyrightYear": { "detected": "%d" or null, "correct": true/false, "notes": "string" },
    "legalContrast": { "sufficient": true/false, "notes": "string" }
  },
  "typography": {
    "headlineFont": { "detected": "font name" or null, "confidence": 0-100, "isTTFors": true/false, "notes": "string" },
    "bodyFont": { "detected": "font name" or null, "confidence": 0-100, "isFuturaPT": true/false, "notes": "string" },
    "alignmentConsistent": { "detected": "CENTER"/"LEFT"/"RIGHT", "consistent": true/false, "notes": "string" }
  },
  "layout": {
    "safeZone": {
      "top": number,
      "right": number,
      "bottom": number,
      "left": number,
      "allPass": true/false,
      "nearestElement": "description of element closest to edge",
      "notes": "string"
    },
    "layoutLogo": {
      "found": true/false,
      "boundingBox": { "x": number, "y": number, "width": number, "height": number },
      "estimatedWidthPx": number,
      "meetsMinSize": true/false,
      "inCorrectZone": true/false,
      "zoneDescription": "%s",
      "notes": "string"
    },
    "logoUnmodified": { "detected": true/false, "notes": "string" }
  },
  "lightingColor": {
    "warmWhiteLighting": { "detected": true/false, "estimatedKelvin": number or null, "notes": "string" },
    "noCoolCast": { "detected": true/false, "notes": "string" },
    "photorealistic": { "detected": true/false, "aiArtifacts": true/false, "notes": "string" },
    "brandColorAccuracy": {
      "colors": [
        { "name": "Whiskey Brown", "detected": "#hex" or null, "reference": "#AD3826", "passes": true/false },
        { "name": "Warm White", "detected": "#hex" or null, "reference": "#FFF9F4", "passes": true/false }
      ],
      "notes": "string"
    }
  },
  "smileDevice": {
    "present": true/false,
    "ratio": { "correct": true/false, "notes": "string" },
    "noDistortion": { "detected": true/false, "notes": "string" },
    "notCropped": { "detected": true/false, "notes": "string" }
  },
  "criticalIssues": ["list of major problems found"],
  "recommendations": ["list of suggestions for improvement"]
}`
