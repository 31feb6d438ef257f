package export

import (
	"strings"
	"testing"
	"time"

	domain "github.com/bryanwahyu/creative-qc/internal/domain/review"
)

func TestRenderReport(t *testing.T) {
	r := NewRenderer()
	data := domain.ReportData{
		SessionID:   "5f0c9f6e-0000-0000-0000-000000000000",
		TenantID:    "acme",
		ImageURL:    "http://store.local/acme/creative.png",
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Projection: domain.Projection{
			Format:         domain.FormatLandscape,
			Specs:          "1920 × 1080",
			Score:          7.5,
			ItemsToAddress: 0,
			Release:        domain.ReleaseApproved,
			Categories: []domain.CategorySummary{
				{
					Key:    domain.CategoryLegalCompliance,
					Name:   "Legal & Compliance",
					Passed: 1,
					Total:  2,
					Checks: []domain.CheckView{
						{ID: "legal-has-abv", Name: "ABV percentage displayed", Severity: domain.SeverityRequired, Status: domain.StatusPass},
						{ID: "legal-copyright", Name: "Copyright year", Severity: domain.SeverityRequired, Status: domain.StatusFail, Overridden: true, Detail: "AI Detected: © 2024"},
					},
				},
			},
			CriticalIssues: []string{"copyright year is stale"},
		},
	}

	out, err := r.Render(data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"7.5/10",
		"approved",
		"Legal &amp; Compliance",
		"ABV percentage displayed",
		"OVERRIDDEN",
		"status-fail",
		"copyright year is stale",
		"Tenant acme",
		"1 Mar 2026",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered report missing %q", want)
		}
	}
}

func TestRenderEscapesUntrustedText(t *testing.T) {
	r := NewRenderer()
	data := domain.ReportData{
		SessionID:   "s1",
		TenantID:    "acme",
		GeneratedAt: time.Now(),
		Projection: domain.Projection{
			Release:        domain.ReleaseRejected,
			CriticalIssues: []string{`<script>alert("x")</script>`},
		},
	}
	out, err := r.Render(data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(out), "<script>alert") {
		t.Fatalf("model text must be escaped")
	}
}
