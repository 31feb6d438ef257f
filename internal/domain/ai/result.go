package ai

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Analysis is the vision model's compliance judgement. Every leaf field is
// optional: the model is free to omit keys, and absent values must resolve
// to "pending" downstream, so booleans and numbers are pointers here.
type Analysis struct {
	ProductPackaging ProductPackaging `json:"productPackaging"`
	LegalCompliance  LegalCompliance  `json:"legalCompliance"`
	Typography       Typography       `json:"typography"`
	Layout           Layout           `json:"layout"`
	LightingColor    LightingColor    `json:"lightingColor"`
	SmileDevice      SmileDevice      `json:"smileDevice"`
	CriticalIssues   []string         `json:"criticalIssues"`
	Recommendations  []string         `json:"recommendations"`
}

// Detection is the common {detected, confidence, notes} leaf.
type Detection struct {
	Detected   *bool    `json:"detected"`
	Confidence *float64 `json:"confidence"`
	Notes      string   `json:"notes"`
}

type ProductPackaging struct {
	NewBottle   Detection `json:"newBottle"`
	NoWarrant   Detection `json:"noWarrant"`
	BottleScale struct {
		Percentage *float64 `json:"percentage"`
		Status     string   `json:"status"`
		Notes      string   `json:"notes"`
	} `json:"bottleScale"`
	ShadowPresent struct {
		Detected *bool  `json:"detected"`
		Grounded *bool  `json:"grounded"`
		Notes    string `json:"notes"`
	} `json:"shadowPresent"`
}

type LegalCompliance struct {
	AbvPresent struct {
		Detected *bool  `json:"detected"`
		Value    string `json:"value"`
		Notes    string `json:"notes"`
	} `json:"abvPresent"`
	DisclaimerPresent struct {
		Detected *bool  `json:"detected"`
		FullText *bool  `json:"fullText"`
		Notes    string `json:"notes"`
	} `json:"disclaimerPresent"`
	CopyrightYear struct {
		Detected Year   `json:"detected"`
		Correct  *bool  `json:"correct"`
		Notes    string `json:"notes"`
	} `json:"copyrightYear"`
	LegalContrast struct {
		Sufficient *bool  `json:"sufficient"`
		Notes      string `json:"notes"`
	} `json:"legalContrast"`
}

type FontDetection struct {
	Detected   string   `json:"detected"`
	Confidence *float64 `json:"confidence"`
	Notes      string   `json:"notes"`
}

type Typography struct {
	HeadlineFont struct {
		FontDetection
		IsTTFors *bool `json:"isTTFors"`
	} `json:"headlineFont"`
	BodyFont struct {
		FontDetection
		IsFuturaPT *bool `json:"isFuturaPT"`
	} `json:"bodyFont"`
	AlignmentConsistent struct {
		Detected   string `json:"detected"`
		Consistent *bool  `json:"consistent"`
		Notes      string `json:"notes"`
	} `json:"alignmentConsistent"`
}

// Box is a normalized rectangle in percent-of-canvas units.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Layout struct {
	SafeZone struct {
		Top            *float64 `json:"top"`
		Right          *float64 `json:"right"`
		Bottom         *float64 `json:"bottom"`
		Left           *float64 `json:"left"`
		AllPass        *bool    `json:"allPass"`
		NearestElement string   `json:"nearestElement"`
		Notes          string   `json:"notes"`
	} `json:"safeZone"`
	LayoutLogo struct {
		Found            *bool    `json:"found"`
		BoundingBox      *Box     `json:"boundingBox"`
		EstimatedWidthPx *float64 `json:"estimatedWidthPx"`
		MeetsMinSize     *bool    `json:"meetsMinSize"`
		InCorrectZone    *bool    `json:"inCorrectZone"`
		ZoneDescription  string   `json:"zoneDescription"`
		Notes            string   `json:"notes"`
	} `json:"layoutLogo"`
	LogoUnmodified Detection `json:"logoUnmodified"`
}

type ColorCheck struct {
	Name      string `json:"name"`
	Detected  string `json:"detected"`
	Reference string `json:"reference"`
	Passes    *bool  `json:"passes"`
}

type LightingColor struct {
	WarmWhiteLighting struct {
		Detected        *bool    `json:"detected"`
		EstimatedKelvin *float64 `json:"estimatedKelvin"`
		Notes           string   `json:"notes"`
	} `json:"warmWhiteLighting"`
	NoCoolCast     Detection `json:"noCoolCast"`
	Photorealistic struct {
		Detected    *bool  `json:"detected"`
		AIArtifacts *bool  `json:"aiArtifacts"`
		Notes       string `json:"notes"`
	} `json:"photorealistic"`
	BrandColorAccuracy struct {
		Colors []ColorCheck `json:"colors"`
		Notes  string       `json:"notes"`
	} `json:"brandColorAccuracy"`
}

type SmileDevice struct {
	Present *bool `json:"present"`
	Ratio   struct {
		Correct *bool  `json:"correct"`
		Notes   string `json:"notes"`
	} `json:"ratio"`
	NoDistortion Detection `json:"noDistortion"`
	NotCropped   Detection `json:"notCropped"`
}

// Year tolerates the model emitting a copyright year as "2025", 2025, or
// null. Zero means not detected.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*y = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Not a year the model understood; treat as undetected.
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

func (y Year) MarshalJSON() ([]byte, error) {
	if y == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(int(y))
}
