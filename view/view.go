// Package view renders named view templates with optional layout
// composition. Views and layouts are resolved from an fs.FS (usually an
// embedded one), compiled once at construction, and rendered with an
// injected data scope. A layout receives the rendered view as .Content;
// the layout name "none" suppresses wrapping, and a missing layout
// falls back to emitting the unwrapped view.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// NoLayout is the layout name that suppresses wrapping.
const NoLayout = "none"

// Scope is the variable scope injected into a view.
type Scope map[string]any

// Page is the data handed to a layout template: the original scope plus
// the already-rendered view content.
type Page struct {
	Content template.HTML
	Data    Scope
}

// Renderer resolves and renders views. Construct with NewRenderer; the
// zero value is not usable.
type Renderer struct {
	views   map[string]*template.Template
	layouts map[string]*template.Template
}

// NewRenderer walks viewDir and layoutDir inside fsys and compiles
// every .html file it finds. View names are paths relative to viewDir
// without the extension ("notes/index" for viewDir/notes/index.html);
// layout names work the same way relative to layoutDir.
func NewRenderer(fsys fs.FS, viewDir, layoutDir string) (*Renderer, error) {
	views, err := compileDir(fsys, viewDir)
	if err != nil {
		return nil, fmt.Errorf("view: compile views: %w", err)
	}
	layouts, err := compileDir(fsys, layoutDir)
	if err != nil {
		return nil, fmt.Errorf("view: compile layouts: %w", err)
	}
	return &Renderer{views: views, layouts: layouts}, nil
}

func compileDir(fsys fs.FS, dir string) (map[string]*template.Template, error) {
	out := make(map[string]*template.Template)
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
			return walkErr
		}
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		t, err := template.New(p).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, dir+"/"), ".html")
		out[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Render executes the named view with data and writes the result,
// wrapped by the named layout unless layout is "none" or the layout
// does not exist.
func (r *Renderer) Render(w io.Writer, name string, data Scope, layout string) error {
	t, ok := r.views[name]
	if !ok {
		return fmt.Errorf("view: %q not found", name)
	}

	var content bytes.Buffer
	if err := t.Execute(&content, data); err != nil {
		return fmt.Errorf("view: render %q: %w", name, err)
	}

	if layout == NoLayout {
		_, err := w.Write(content.Bytes())
		return err
	}
	lt, ok := r.layouts[layout]
	if !ok {
		// Missing layout degrades to unwrapped content.
		_, err := w.Write(content.Bytes())
		return err
	}

	page := Page{Content: template.HTML(content.String()), Data: data}
	var wrapped bytes.Buffer
	if err := lt.Execute(&wrapped, page); err != nil {
		return fmt.Errorf("view: render layout %q: %w", layout, err)
	}
	_, err := w.Write(wrapped.Bytes())
	return err
}

// HTML renders the view as a complete HTTP response, mirroring the
// write-and-terminate semantics of JSON handlers. Render failures turn
// into a plain 500.
func (r *Renderer) HTML(w http.ResponseWriter, name string, data Scope, layout string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data, layout); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(buf.Bytes())
}
