package main

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/lendfolio/lendfolio/internal/contexthelpers"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/ui"
)

type BaseTemplateData struct {
	Authenticated bool
	CSRFToken     string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		Authenticated: contexthelpers.IsAuthenticated(r.Context()),
		CSRFToken:     contexthelpers.CSRFToken(r.Context()),
	}
}

// templateCache holds the page templates parsed once at startup from the
// embedded filesystem. Each page directory under ui/templates/pages becomes
// one entry keyed by the directory name, parsed together with the base
// layout so pages can define "title" and "page" blocks.
type templateCache struct {
	pages map[string]*template.Template
}

func newTemplateCache() (*templateCache, error) {
	dirs, err := fs.ReadDir(ui.Files, "templates/pages")
	if err != nil {
		return nil, errors.Wrap(err, "read pages directory")
	}

	pages := make(map[string]*template.Template, len(dirs))
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		name := dir.Name()
		t, parseErr := template.ParseFS(ui.Files,
			"templates/base.gohtml",
			path.Join("templates/pages", name, "*.gohtml"),
		)
		if parseErr != nil {
			return nil, errors.Wrap(parseErr, "parse page templates", slog.String("page", name))
		}
		pages[name] = t
	}

	return &templateCache{pages: pages}, nil
}

// render writes a full page wrapped in the base layout.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.renderTemplate(w, r, status, page, "base", data)
}

// renderTemplate executes one named template of a page, used for htmx partial
// responses that swap a fragment instead of reloading the page.
func (app *application) renderTemplate(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page string,
	name string,
	data any,
) {
	t, ok := app.templates.pages[page]
	if !ok {
		app.serverError(w, r, errors.New("unknown page template", slog.String("page", page)))
		return
	}

	buf := new(bytes.Buffer)
	if err := t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template",
			slog.String("page", page), slog.String("template", name)))
		return
	}

	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
