package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
)

//go:embed templates/*.html
var templateFiles embed.FS

// PageData is the envelope every view receives.
type PageData struct {
	Title    string
	Flash    *Flash
	Identity *auth.Identity
	Data     any
}

type Renderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

// NewRenderer parses every page template against the shared layout.
func NewRenderer() (*Renderer, error) {
	pageNames := []string{"login", "reports", "users"}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := r.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("Unknown template requested")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("Failed to render template")
	}
}
