package service

import (
	"html/template"
	"io"
	"time"

	"github.com/ludo-technologies/plaincheck/domain"
	"github.com/ludo-technologies/plaincheck/internal/version"
)

// HTMLData represents the data for HTML template
type HTMLData struct {
	GeneratedAt string
	Version     string
	Summary     domain.ReportSummary
	Issues      *domain.ScanResults
}

// HTMLFormatter renders a report as a self-contained HTML page
type HTMLFormatter struct {
	tmpl *template.Template
}

// NewHTMLFormatter creates a new HTML formatter
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{tmpl: reportTemplate}
}

// Write renders the report to writer
func (f *HTMLFormatter) Write(report *domain.Report, writer io.Writer) error {
	issues := report.Issues
	if issues == nil {
		issues = domain.NewScanResults()
	}

	data := HTMLData{
		GeneratedAt: displayTime(report.Timestamp),
		Version:     version.GetVersion(),
		Summary:     report.Summary,
		Issues:      issues,
	}
	return f.tmpl.Execute(writer, data)
}

// displayTime formats an RFC 3339 timestamp for humans, or returns it as is
func displayTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05 MST")
}

var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Plain Language Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f4f6fb;
            min-height: 100vh;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
        .header {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 4px 16px rgba(0,0,0,0.08);
        }
        .header h1 { color: #3f51b5; margin-bottom: 6px; }
        .header .subtitle { color: #666; font-size: 14px; }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(160px, 1fr));
            gap: 16px;
            margin-bottom: 20px;
        }
        .metric-card {
            background: white;
            padding: 20px;
            border-radius: 8px;
            text-align: center;
            box-shadow: 0 4px 16px rgba(0,0,0,0.06);
        }
        .metric-value { font-size: 32px; font-weight: bold; color: #3f51b5; }
        .metric-label { color: #666; margin-top: 5px; }
        .clean { color: #4caf50; font-weight: bold; padding: 20px 0; }
        details {
            background: white;
            border-radius: 8px;
            margin-bottom: 14px;
            box-shadow: 0 4px 16px rgba(0,0,0,0.06);
        }
        summary { cursor: pointer; padding: 16px 20px; font-size: 18px; font-weight: 600; }
        .issue { border-top: 1px solid #eee; padding: 12px 20px; }
        .location { font-family: monospace; color: #555; }
        .problem { color: #f44336; font-weight: 600; }
        .fix { color: #4caf50; font-weight: 600; }
        .context {
            margin-top: 6px;
            font-family: monospace;
            background: #f8f9fa;
            padding: 6px 10px;
            border-radius: 4px;
            white-space: pre-wrap;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Plain Language Report</h1>
            <p class="subtitle">Generated: {{.GeneratedAt}} | Version: {{.Version}}</p>
        </div>

        <div class="metric-grid">
            <div class="metric-card">
                <div class="metric-value">{{.Summary.TotalFiles}}</div>
                <div class="metric-label">Files Scanned</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.TotalIssues}}</div>
                <div class="metric-label">Total Issues</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.BannedWords}}</div>
                <div class="metric-label">Banned Words</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.ComplexPhrases}}</div>
                <div class="metric-label">Complex Phrases</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.PassiveVoice}}</div>
                <div class="metric-label">Passive Voice</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.LongSentences}}</div>
                <div class="metric-label">Long Sentences</div>
            </div>
        </div>

        {{if eq .Summary.TotalIssues 0}}
        <p class="clean">✓ No plain-language issues found</p>
        {{end}}

        {{with .Issues.BannedWords}}
        <details open>
            <summary>Banned Words ({{len .}})</summary>
            {{range .}}
            <div class="issue">
                <div class="location">{{.File}}:{{.Line}}</div>
                <div><span class="problem">{{.Word}}</span> → <span class="fix">{{.Replacement}}</span></div>
                <div class="context">{{.Context}}</div>
            </div>
            {{end}}
        </details>
        {{end}}

        {{with .Issues.ComplexPhrases}}
        <details open>
            <summary>Complex Phrases ({{len .}})</summary>
            {{range .}}
            <div class="issue">
                <div class="location">{{.File}}:{{.Line}}</div>
                <div><span class="problem">{{.Phrase}}</span> → <span class="fix">{{.Replacement}}</span></div>
                <div class="context">{{.Context}}</div>
            </div>
            {{end}}
        </details>
        {{end}}

        {{with .Issues.PassiveVoice}}
        <details open>
            <summary>Passive Voice ({{len .}})</summary>
            {{range .}}
            <div class="issue">
                <div class="location">{{.File}}:{{.Line}}</div>
                <div><span class="problem">{{.Indicator}}</span> → <span class="fix">rewrite in active voice</span></div>
                <div class="context">{{.Context}}</div>
            </div>
            {{end}}
        </details>
        {{end}}

        {{with .Issues.LongSentences}}
        <details open>
            <summary>Long Sentences ({{len .}})</summary>
            {{range .}}
            <div class="issue">
                <div class="location">{{.File}}:{{.Line}}</div>
                <div><span class="problem">{{.WordCount}} words</span> → <span class="fix">split into shorter sentences</span></div>
                <div class="context">{{.Context}}</div>
            </div>
            {{end}}
        </details>
        {{end}}
    </div>
</body>
</html>
`
