package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/Masterminds/sprig/v3"

	"github.com/dissectlabs/dissect/internal/graph"
)

// htmlReport is a self-contained page: a latency heat map table, the
// critical path, warnings, and the full export contract embedded as
// `graphData` for downstream tooling.
const htmlReport = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dissect Report{{ if .Title }}: {{ .Title }}{{ end }}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 2rem; color: #2E3440; background: #F5F5F5; }
  h1 { color: #1976D2; }
  table { border-collapse: collapse; width: 100%; background: #FFFFFF; }
  th, td { border: 1px solid #E0E0E0; padding: 6px 10px; text-align: left; }
  th { background: #ECEFF4; }
  .critical { font-weight: bold; }
  .warnings { color: #B45309; }
  .path { background: #FFFFFF; padding: 1rem; border: 1px solid #E0E0E0; }
</style>
</head>
<body>
<h1>Dissect Orchestration Report</h1>
{{ if .Title }}<p>{{ .Title }}</p>{{ end }}
<p>{{ len .Nodes }} nodes, {{ len .Edges }} edges</p>

<h2>Critical Path ({{ printf "%.0f" .CriticalPath.TotalDuration }}ms)</h2>
<div class="path">{{ join " → " .PathLabels }}</div>

<h2>Latency Heat Map</h2>
<table>
<tr><th>Node</th><th>Kind</th><th>Duration (ms)</th><th>Heat</th><th>Critical</th></tr>
{{ range .Nodes }}
<tr{{ if .OnCriticalPath }} class="critical"{{ end }}>
  <td>{{ .Label }}</td>
  <td>{{ .Kind }}</td>
  <td>{{ printf "%.0f" .Duration }}</td>
  <td style="background: {{ heatColor .Heat }}">{{ printf "%.2f" .Heat }}</td>
  <td>{{ if .OnCriticalPath }}yes{{ end }}</td>
</tr>
{{ end }}
</table>

{{ if .Warnings }}
<h2 class="warnings">Warnings</h2>
<ul class="warnings">
{{ range .Warnings }}<li>{{ . }}</li>{{ end }}
</ul>
{{ end }}

<script>
const graphData = {{ .GraphJSON }};
</script>
</body>
</html>
`

type htmlData struct {
	Title string
	graph.Export
	PathLabels []string
	GraphJSON  template.JS
}

// HTML renders the export as a standalone report page.
func HTML(exp graph.Export, title string) (string, error) {
	payload, err := json.Marshal(exp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}

	labels := make(map[string]string, len(exp.Nodes))
	for _, n := range exp.Nodes {
		labels[n.ID] = n.Label
	}
	pathLabels := make([]string, 0, len(exp.CriticalPath.NodeIDs))
	for _, id := range exp.CriticalPath.NodeIDs {
		pathLabels = append(pathLabels, labels[id])
	}

	funcs := sprig.HtmlFuncMap()
	funcs["heatColor"] = heatColor

	tmpl, err := template.New("report").Funcs(funcs).Parse(htmlReport)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var b strings.Builder
	err = tmpl.Execute(&b, htmlData{
		Title:      title,
		Export:     exp,
		PathLabels: pathLabels,
		GraphJSON:  template.JS(payload),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return b.String(), nil
}

// heatColor maps a 0..1 heat score onto a white-to-red ramp.
func heatColor(heat float64) string {
	if heat < 0 {
		heat = 0
	}
	if heat > 1 {
		heat = 1
	}
	green := 235 - int(heat*160)
	blue := 238 - int(heat*184)
	return fmt.Sprintf("#FF%02X%02X", green, blue)
}
