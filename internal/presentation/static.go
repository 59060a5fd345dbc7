package presentation

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/orders-tracker/internal/application"
	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/session"
)

//go:embed web/*
var webFS embed.FS

func MountStatic(r chi.Router) {
	sub, _ := fs.Sub(webFS, "web/static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
}

// view is the data every page template receives.
type view struct {
	Title    string
	LoggedIn bool
	Notices  []session.Notice
	Search   string
	Action   string
	Orders   []domain.Order
	Order    domain.Order
	Items    []domain.ShoppingItem
	Item     domain.ShoppingItem
}

var pageFuncs = template.FuncMap{
	"formDate": func(t time.Time) string { return t.Format(application.DateLayout) },
}

// parsePages builds one template set per page, each combined with the layout.
func parsePages(names ...string) map[string]*template.Template {
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		pages[name] = template.Must(template.New(name).Funcs(pageFuncs).ParseFS(webFS,
			"web/templates/layout.html", "web/templates/"+name+".html"))
	}
	return pages
}
