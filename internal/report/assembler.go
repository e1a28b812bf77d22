// internal/report/assembler.go
package report

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// Meta carries document-level fields shared by every renderer.
type Meta struct {
	Title     string
	SessionID types.SessionID
}

type documentData struct {
	Title     string
	SessionID types.SessionID
	Count     int
	Steps     []stepData
}

type stepData struct {
	Number      int
	Description string
	Time        string
	DataURI     template.URL
	Missing     bool
}

var reportTmpl = template.Must(template.New("report").Parse(reportHTML))

// AssembleHTML renders the finalized steps into a single self-contained
// HTML document. Every image is embedded as a base64 data URI, so the
// output references no external resources and can be opened offline.
// Steps without image data are rendered as placeholder cards rather
// than failing the whole document.
func AssembleHTML(meta Meta, steps []types.Step) (string, error) {
	data := documentData{
		Title:     meta.Title,
		SessionID: meta.SessionID,
		Count:     len(steps),
		Steps:     make([]stepData, 0, len(steps)),
	}
	for i, step := range steps {
		sd := stepData{
			Number:      i + 1,
			Description: step.Description,
		}
		if !step.CapturedAt.IsZero() {
			sd.Time = step.CapturedAt.UTC().Format("15:04:05 UTC")
		}
		if len(step.Image) == 0 || step.MimeType == "" {
			sd.Missing = true
		} else {
			uri := fmt.Sprintf("data:%s;base64,%s", step.MimeType, base64.StdEncoding.EncodeToString(step.Image))
			sd.DataURI = template.URL(uri)
		}
		data.Steps = append(data.Steps, sd)
	}

	var buf strings.Builder
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
    :root {
        --bg-color: #f3f4f6;
        --card-bg: #ffffff;
        --text-main: #111827;
        --text-sub: #6b7280;
        --accent-color: #3b82f6;
        --border-color: #e5e7eb;
    }
    body {
        font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
        background-color: var(--bg-color);
        color: var(--text-main);
        margin: 0;
        padding: 40px 20px;
        line-height: 1.5;
    }
    .container {
        max-width: 900px;
        margin: 0 auto;
    }
    header {
        text-align: center;
        margin-bottom: 50px;
    }
    h1 {
        font-size: 2.5rem;
        font-weight: 800;
        margin-bottom: 10px;
        letter-spacing: -0.025em;
    }
    .step-card {
        background: var(--card-bg);
        border-radius: 16px;
        box-shadow: 0 4px 6px -1px rgba(0, 0, 0, 0.05), 0 2px 4px -2px rgba(0, 0, 0, 0.05);
        margin-bottom: 30px;
        overflow: hidden;
        border: 1px solid var(--border-color);
        transition: transform 0.2s ease;
    }
    .step-card:hover {
        transform: translateY(-2px);
    }
    .step-header {
        display: flex;
        align-items: center;
        gap: 15px;
        padding: 20px 25px;
        background-color: #f9fafb;
        border-bottom: 1px solid var(--border-color);
    }
    .step-badge {
        background-color: var(--accent-color);
        color: white;
        width: 28px;
        height: 28px;
        border-radius: 50%;
        display: flex;
        align-items: center;
        justify-content: center;
        font-weight: 600;
        font-size: 0.9rem;
        flex-shrink: 0;
    }
    .step-title {
        font-weight: 600;
        font-size: 1.1rem;
        color: #374151;
    }
    .step-time {
        margin-left: auto;
        color: var(--text-sub);
        font-size: 0.85rem;
    }
    .step-image-container {
        background-color: #000;
        display: flex;
        justify-content: center;
    }
    .step-image-container img {
        max-width: 100%;
        height: auto;
        display: block;
        opacity: 0.98;
    }
    .step-missing {
        color: #9ca3af;
        padding: 40px;
        justify-content: center;
        font-size: 0.9rem;
    }
    footer {
        text-align: center;
        color: var(--text-sub);
        font-size: 0.85rem;
        margin-top: 50px;
    }
</style>
</head>
<body>
<div class="container">
    <header>
        <h1>{{.Title}}</h1>
    </header>
{{range .Steps}}
    <div class="step-card">
        <div class="step-header">
            <div class="step-badge">{{.Number}}</div>
            <div class="step-title">{{.Description}}</div>
            {{if .Time}}<div class="step-time">{{.Time}}</div>{{end}}
        </div>
        {{if .Missing}}<div class="step-image-container step-missing">Image unavailable</div>
        {{else}}<div class="step-image-container">
            <img src="{{.DataURI}}" loading="lazy" alt="{{.Description}}">
        </div>
        {{end}}
    </div>
{{end}}
    <footer>
        {{if .SessionID}}<p>Session {{.SessionID}} &middot; {{.Count}} steps</p>{{else}}<p>{{.Count}} steps</p>{{end}}
    </footer>
</div>
</body>
</html>
`
