package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"
)

const IndexTemplate = "index.html"

// Page is the data handed to the index template.
type Page struct {
	Restaurant Restaurant
	LiveReload bool
}

// Renderer executes views/index.html. The template is parsed on first use
// and kept until Reload is called.
type Renderer struct {
	path  string
	funcs template.FuncMap

	mu   sync.RWMutex
	tmpl *template.Template
}

func NewRenderer(viewsDir string, funcs template.FuncMap) *Renderer {
	return &Renderer{
		path:  filepath.Join(viewsDir, IndexTemplate),
		funcs: funcs,
	}
}

func (r *Renderer) Path() string {
	return r.path
}

// Render returns the full page. On error nothing is returned, so callers
// never see a partially executed template.
func (r *Renderer) Render(page Page) ([]byte, error) {
	tmpl, err := r.template()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("execute %s: %w", r.path, err)
	}
	return buf.Bytes(), nil
}

// Reload drops the parsed template; the next Render reads it from disk again.
func (r *Renderer) Reload() {
	r.mu.Lock()
	r.tmpl = nil
	r.mu.Unlock()
}

func (r *Renderer) template() (*template.Template, error) {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()
	if tmpl != nil {
		return tmpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tmpl != nil {
		return r.tmpl, nil
	}

	src, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", r.path, ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	parsed, err := template.New(IndexTemplate).Funcs(r.funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}

	r.tmpl = parsed
	return parsed, nil
}
