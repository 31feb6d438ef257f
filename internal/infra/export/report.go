package export

import (
	"bytes"
	"html/template"

	domain "github.com/bryanwahyu/creative-qc/internal/domain/review"
)

// Renderer produces the printable A4 compliance report.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("report").Parse(reportTemplate))}
}

func (r *Renderer) Render(data domain.ReportData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Brand Compliance Report {{.SessionID}}</title>
<style>
  @page { size: A4; margin: 18mm; }
  body { font-family: Helvetica, Arial, sans-serif; color: #101921; margin: 0; }
  header { border-bottom: 3px solid #AD3826; padding-bottom: 12px; margin-bottom: 20px; }
  h1 { font-size: 20px; margin: 0; }
  .meta { font-size: 11px; color: #555; margin-top: 4px; }
  .score { font-size: 42px; font-weight: bold; }
  .score.approved { color: #1a7f37; }
  .score.conditional { color: #b8860b; }
  .score.rejected { color: #AD3826; }
  .release { text-transform: uppercase; font-size: 12px; letter-spacing: 1px; }
  .items { font-size: 12px; color: #555; }
  section { margin-bottom: 16px; page-break-inside: avoid; }
  h2 { font-size: 13px; border-bottom: 1px solid #ddd; padding-bottom: 4px; }
  table { width: 100%; border-collapse: collapse; font-size: 11px; }
  td, th { text-align: left; padding: 4px 6px; border-bottom: 1px solid #eee; vertical-align: top; }
  .status-pass { color: #1a7f37; }
  .status-fail { color: #AD3826; }
  .status-pending { color: #b8860b; }
  .sev { font-size: 9px; color: #888; }
  .overridden { font-size: 9px; color: #b8860b; }
  ul { font-size: 11px; padding-left: 18px; }
  .creative { max-width: 70mm; max-height: 70mm; }
</style>
</head>
<body>
<header>
  <h1>Brand Compliance Report</h1>
  <div class="meta">
    Session {{.SessionID}} &middot; Tenant {{.TenantID}} &middot; {{.GeneratedAt.Format "2 Jan 2006 15:04 MST"}}<br>
    Format: {{.Projection.Format}} &middot; {{.Projection.Specs}}
  </div>
</header>

<section>
  <span class="score {{.Projection.Release}}">{{printf "%.1f" .Projection.Score}}/10</span>
  <div class="release">{{.Projection.Release}}</div>
  <div class="items">{{.Projection.ItemsToAddress}} required item(s) to address</div>
  {{if .ImageURL}}<img class="creative" src="{{.ImageURL}}" alt="creative">{{end}}
</section>

{{range .Projection.Categories}}
<section>
  <h2>{{.Name}} ({{.Passed}}/{{.Total}} passed)</h2>
  <table>
    {{range .Checks}}
    <tr>
      <td>{{.Name}} <span class="sev">{{.Severity}}</span>{{if .Overridden}} <span class="overridden">OVERRIDDEN</span>{{end}}</td>
      <td class="status-{{.Status}}">{{.Status}}</td>
      <td>{{.Detail}}</td>
    </tr>
    {{end}}
  </table>
</section>
{{end}}

{{if .Projection.CriticalIssues}}
<section>
  <h2>Critical Issues</h2>
  <ul>{{range .Projection.CriticalIssues}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}

{{if .Projection.Recommendations}}
<section>
  <h2>Recommendations</h2>
  <ul>{{range .Projection.Recommendations}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}

</body>
</html>
`
