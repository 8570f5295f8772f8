// pkg/core/render.go
package core

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/genoscribe/genoscribe/pkg/report"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer produces the document header and footer from core report
// fields. It has no dependency on any plugin's content, so the document
// stays well-formed even with zero plugins.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded header and footer templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse core templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Run renders the header and footer for the given report data.
func (r *Renderer) Run(d *report.Data) (header, footer string, err error) {
	var hb, fb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&hb, "header.html", d); err != nil {
		return "", "", fmt.Errorf("render header: %w", err)
	}
	if err := r.tmpl.ExecuteTemplate(&fb, "footer.html", d); err != nil {
		return "", "", fmt.Errorf("render footer: %w", err)
	}
	return strings.TrimSpace(hb.String()), strings.TrimSpace(fb.String()), nil
}
