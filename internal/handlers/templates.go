package handlers

import (
	"embed"
	"html/template"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateFuncs are the helpers available to the HTML pages
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"pad": utils.PadNumbers,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("02/01/2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return t.Local().Format("02/01/2006 15:04")
		},
		"methodLabel": func(m models.Method) string { return m.Label() },
		"add":         func(a, b int) int { return a + b },
	}
}

// LoadTemplates parses the embedded HTML pages
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(TemplateFuncs()).ParseFS(templateFS, "templates/*.html")
}
