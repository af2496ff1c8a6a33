// Package site renders a static HTML index over an extracted output tree.
package site

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	SymbolsTemplate   = "symbols.html"
	FormsTemplate     = "forms.html"
	ArchivesTemplate  = "archives.html"
	DocumentsTemplate = "documents.html"
)

// Renderer executes the page templates. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named page template with data.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
