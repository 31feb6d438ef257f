package ai

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseAnalysisBareJSON(t *testing.T) {
	raw := `{"legalCompliance":{"abvPresent":{"detected":true,"value":"40% ABV"}},"criticalIssues":["missing disclaimer"]}`
	a, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if a.LegalCompliance.AbvPresent.Detected == nil || !*a.LegalCompliance.AbvPresent.Detected {
		t.Fatalf("abv detected = %v", a.LegalCompliance.AbvPresent.Detected)
	}
	if len(a.CriticalIssues) != 1 {
		t.Fatalf("critical issues = %v", a.CriticalIssues)
	}
}

func TestParseAnalysisStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"smileDevice\":{\"present\":false}}\n```"
	a, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if a.SmileDevice.Present == nil || *a.SmileDevice.Present {
		t.Fatalf("smile present = %v, want explicit false", a.SmileDevice.Present)
	}
}

func TestParseAnalysisAbsentLeavesStayNil(t *testing.T) {
	a, err := ParseAnalysis(`{}`)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if a.ProductPackaging.NewBottle.Detected != nil {
		t.Fatalf("absent leaf should be nil")
	}
	if a.Layout.LayoutLogo.BoundingBox != nil {
		t.Fatalf("absent bounding box should be nil")
	}
}

func TestParseAnalysisErrorTruncatesPreview(t *testing.T) {
	raw := "I'm sorry, I can't analyze that image. " + strings.Repeat("x", 1000)
	_, err := ParseAnalysis(raw)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %T, want *ParseError", err)
	}
	if len(pe.Raw) > rawPreviewLimit {
		t.Fatalf("preview length = %d, want <= %d", len(pe.Raw), rawPreviewLimit)
	}
}

func TestYearTolerantDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want Year
	}{
		{`2026`, 2026},
		{`"2026"`, 2026},
		{`null`, 0},
		{`"unknown"`, 0},
	}
	for _, tc := range cases {
		var y Year
		if err := json.Unmarshal([]byte(tc.in), &y); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if y != tc.want {
			t.Fatalf("year(%s) = %d, want %d", tc.in, y, tc.want)
		}
	}
}

func TestYearMarshalsZeroAsNull(t *testing.T) {
	out, err := json.Marshal(Year(0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("zero year = %s, want null", out)
	}
	out, err = json.Marshal(Year(2026))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "2026" {
		t.Fatalf("year = %s", out)
	}
}
