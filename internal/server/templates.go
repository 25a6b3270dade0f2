package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"

	"github.com/sandro63/musicdb/internal/models"
)

//go:embed templates/*.html static/*.css
var assets embed.FS

// Renderer holds the parsed page templates, each combined with the base
// layout at startup so template errors surface before the first request.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template against the base layout.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"mmss": models.FormatDuration,
		"optint": func(v *int) string {
			if v == nil {
				return ""
			}
			return strconv.Itoa(*v)
		},
	}

	names, err := fs.Glob(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, name := range names {
		base := path.Base(name)
		if base == "base.html" {
			continue
		}
		t, err := template.New("base.html").Funcs(funcs).ParseFS(assets, "templates/base.html", name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", base, err)
		}
		pages[base] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page wrapped in the base layout.
func (rd *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := rd.pages[page]
	if !ok {
		return fmt.Errorf("unknown template: %s", page)
	}
	return t.ExecuteTemplate(w, "base.html", data)
}
