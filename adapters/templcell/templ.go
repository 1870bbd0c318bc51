// Package templcell adapts compiled templ components to the cells.Engine
// contract. Views are registered under the same "dir/name" paths the
// resolver produces, so templ projects get cell view inheritance without a
// file-based template loader.
package templcell

import (
	"bytes"
	"context"
	"sync"

	"github.com/a-h/templ"

	"github.com/pthm/cells"
)

// View builds a templ component from a view context. The context carries
// the published variables, parameters, and session for this render.
type View func(ctx *cells.ViewContext) templ.Component

// Engine serves registered templ views by path.
type Engine struct {
	mu    sync.RWMutex
	views map[string]View
}

var _ cells.Engine = (*Engine)(nil)

// New creates an empty templ engine.
func New() *Engine {
	return &Engine{views: make(map[string]View)}
}

// Register binds a view to a path ("cart/display"). Returns the engine for
// chaining.
func (e *Engine) Register(path string, view View) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.views[path] = view
	return e
}

// Render implements cells.Engine. Each search path is probed for a
// registered view in order; with no search paths the name is the literal
// registration path.
func (e *Engine) Render(name string, searchPaths []string, ctx *cells.ViewContext) (string, error) {
	view, ok := e.lookup(name, searchPaths)
	if !ok {
		return "", &cells.MissingTemplateError{Name: name, SearchPaths: searchPaths}
	}

	var buf bytes.Buffer
	if err := view(ctx).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) lookup(name string, searchPaths []string) (View, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(searchPaths) == 0 {
		view, ok := e.views[name]
		return view, ok
	}
	for _, path := range searchPaths {
		if view, ok := e.views[path+"/"+name]; ok {
			return view, true
		}
	}
	return nil, false
}
