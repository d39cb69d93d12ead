package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	domproduct "example.com/storefront/internal/domain/product"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"ms":         func(d time.Duration) int64 { return d.Milliseconds() },
	"repeat":     func(n int) []struct{} { return make([]struct{}, n) },
	"price":      func(p domproduct.Product) string { return p.Price.StringFixed(2) },
	"fieldClass": fieldClass,
}).ParseFS(templateFS, "templates/*.html"))

// fieldClass marks a submitted field valid or invalid.
func fieldClass(p FormPage, name string) string {
	switch {
	case p.Invalid[name] != "":
		return "invalid"
	case p.Values[name] != "":
		return "valid"
	default:
		return ""
	}
}

// RenderPage writes the named page template.
func RenderPage(w io.Writer, name string, data any) error {
	return templates.ExecuteTemplate(w, name, data)
}
