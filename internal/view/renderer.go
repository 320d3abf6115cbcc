// Package view renders the server-side pages. Templates are embedded so
// the binary ships self-contained.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	// raw marks stored editor HTML as trusted for the blog detail page.
	"raw": func(s string) template.HTML { return template.HTML(s) },
}

// Renderer implements echo.Renderer on the embedded template set.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates; a broken template is a
// programming error and panics at startup.
func NewRenderer() *Renderer {
	t := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	return &Renderer{templates: t}
}

// Render executes the named template.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
