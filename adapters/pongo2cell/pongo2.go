// Package pongo2cell adapts the pongo2 template engine to the cells.Engine
// contract, loading template files from the resolver's search paths.
package pongo2cell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/pthm/cells"
)

// Option configures the engine before construction.
type Option func(*Engine)

// WithExtension overrides the template file extension. Defaults to ".html".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		e.ext = trimmed
	}
}

// WithGlobals seeds context values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(e *Engine) {
		for k, v := range data {
			e.globals[k] = v
		}
	}
}

// Engine renders pongo2 templates from disk. Compiled templates are cached
// per file path for the process lifetime.
type Engine struct {
	set     *pongo2.TemplateSet
	ext     string
	globals map[string]any

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

var _ cells.Engine = (*Engine)(nil)

// New constructs a pongo2-backed engine.
func New(opts ...Option) (*Engine, error) {
	loader, err := pongo2.NewLocalFileSystemLoader("")
	if err != nil {
		return nil, fmt.Errorf("pongo2cell: create loader: %w", err)
	}
	e := &Engine{
		set:       pongo2.NewSet("cells", loader),
		ext:       ".html",
		globals:   make(map[string]any),
		templates: make(map[string]*pongo2.Template),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Render implements cells.Engine. Each search path is probed for
// name+extension in order; the first existing file wins. With no search
// paths the name is treated as the literal file path, extension included.
func (e *Engine) Render(name string, searchPaths []string, ctx *cells.ViewContext) (string, error) {
	candidates := e.candidates(name, searchPaths)
	for _, file := range candidates {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		tmpl, err := e.template(file)
		if err != nil {
			return "", err
		}
		out, err := tmpl.Execute(e.buildContext(ctx))
		if err != nil {
			return "", fmt.Errorf("pongo2cell: execute %q: %w", file, err)
		}
		return out, nil
	}
	return "", &cells.MissingTemplateError{Name: name, SearchPaths: searchPaths}
}

func (e *Engine) candidates(name string, searchPaths []string) []string {
	if len(searchPaths) == 0 {
		return []string{name}
	}
	files := make([]string, 0, len(searchPaths))
	for _, path := range searchPaths {
		files = append(files, filepath.Join(path, name+e.ext))
	}
	return files
}

func (e *Engine) template(file string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[file]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("pongo2cell: compile %q: %w", file, err)
	}

	e.mu.Lock()
	e.templates[file] = tmpl
	e.mu.Unlock()
	return tmpl, nil
}

// buildContext exposes published variables at the top level plus params,
// session, and request accessors under fixed names.
func (e *Engine) buildContext(ctx *cells.ViewContext) pongo2.Context {
	data := make(pongo2.Context, len(e.globals)+8)
	for k, v := range e.globals {
		data[k] = v
	}
	for k, v := range ctx.Vars() {
		data[k] = v
	}
	data["params"] = ctx.Params().Map()
	data["session"] = ctx.Session()
	data["request"] = ctx.RequestParams()
	return data
}
