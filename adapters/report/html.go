package report

import (
	"context"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/nishasharma303/NitiVimarsh/ports"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; padding: 0 1rem; color: #1a202c; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #cbd5e0; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #edf2f7; }
code { background: #edf2f7; padding: 0.1rem 0.3rem; border-radius: 3px; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLRenderer emits a standalone HTML document built from the
// Markdown report body.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTML report renderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

var _ ports.ReportRendererPort = (*HTMLRenderer)(nil)

// Format returns the rendered format
func (r *HTMLRenderer) Format() ports.ReportFormat {
	return ports.FormatHTML
}

// Render builds the Markdown body and converts it to a full HTML page.
// A fresh parser is required per call; gomarkdown parsers are stateful
// and cannot be reused.
func (r *HTMLRenderer) Render(ctx context.Context, report ports.Report) ([]byte, error) {
	body := buildMarkdown(report)

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(body))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.Render(doc, renderer)

	page := fmt.Sprintf(htmlShell,
		fmt.Sprintf("Policy Impact Report: %s", policyTitle(report.Record.PolicyType)),
		string(rendered))
	return []byte(page), nil
}
