// Package view renders the server-side HTML pages. Every page shares the
// layout template; the renderer injects the pending flash messages and the
// current user into each render so templates never touch the session.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/prasetyadi/gerai/pkg/logger"
	"github.com/prasetyadi/gerai/pkg/session"
)

// Map is the per-page data bag.
type Map map[string]interface{}

// payload is what the layout template receives.
type payload struct {
	Flashes []session.Flash
	User    interface{}
	Data    Map
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/ in fsys against the shared layout.
func New(fsys fs.FS) (*Renderer, error) {
	entries, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: glob templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, entry := range entries {
		name := entry[len("templates/") : len(entry)-len(".html")]
		if name == "layout" {
			continue
		}

		tmpl, err := template.ParseFS(fsys, "templates/layout.html", entry)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", entry, err)
		}
		r.pages[name] = tmpl
	}

	if len(r.pages) == 0 {
		return nil, fmt.Errorf("view: no page templates found")
	}
	return r, nil
}

// Render writes page with data. The current user (or nil) is passed by the
// handler; flashes are drained from the request's session.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, page string, user interface{}, data Map) {
	tmpl, ok := r.pages[page]
	if !ok {
		logger.WithCtx(req.Context()).Error("unknown template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = Map{}
	}

	p := payload{
		Flashes: session.FromCtx(req).Flashes(),
		User:    user,
		Data:    data,
	}

	// Render to a buffer first so a template failure yields a clean 500
	// instead of a half-written page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		logger.WithCtx(req.Context()).Error("template render failed", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
