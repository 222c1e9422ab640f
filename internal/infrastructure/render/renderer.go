package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"GridironDigest/internal/ports"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// HTMLRenderer renders the built-in newsletter and index templates.
type HTMLRenderer struct {
	templates *template.Template
}

var _ ports.Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer parses the embedded templates.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTMLRenderer{templates: templates}, nil
}

// Render executes the named template with the given bindings and returns the
// complete HTML document.
func (r *HTMLRenderer) Render(name string, data any) (string, error) {
	var out strings.Builder
	if err := r.templates.ExecuteTemplate(&out, name+".html.tmpl", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return out.String(), nil
}
