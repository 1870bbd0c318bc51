package cells

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// MapEngine is an in-memory Engine for tests. Templates are stored under
// "dir/name" keys and support {{token}} substitution against published
// variables and parameters - enough to observe which template rendered and
// with what bindings, without touching the filesystem.
type MapEngine struct {
	templates map[string]string
}

// NewMapEngine creates an empty in-memory engine.
func NewMapEngine() *MapEngine {
	return &MapEngine{templates: make(map[string]string)}
}

// Add stores a template under path ("cart/display") with literal content.
// Returns the engine for chaining.
func (e *MapEngine) Add(path, content string) *MapEngine {
	e.templates[path] = content
	return e
}

// Render implements Engine. With no search paths the name is treated as the
// literal template key.
func (e *MapEngine) Render(name string, searchPaths []string, ctx *ViewContext) (string, error) {
	if len(searchPaths) == 0 {
		if tpl, ok := e.templates[name]; ok {
			return expandTokens(tpl, ctx), nil
		}
		return "", &MissingTemplateError{Name: name}
	}
	for _, path := range searchPaths {
		if tpl, ok := e.templates[path+"/"+name]; ok {
			return expandTokens(tpl, ctx), nil
		}
	}
	return "", &MissingTemplateError{Name: name, SearchPaths: searchPaths}
}

var tokenPattern = regexp.MustCompile(`\{\{\s*([\w.]+)\s*\}\}`)

func expandTokens(tpl string, ctx *ViewContext) string {
	return tokenPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		key := strings.TrimSpace(strings.Trim(match, "{}"))
		if v := ctx.Var(key); v != nil {
			return fmt.Sprint(v)
		}
		if v, ok := ctx.Params().Get(key); ok {
			return fmt.Sprint(v)
		}
		return ""
	})
}

// MemoryStore is an in-memory fragment Store for tests. It counts reads and
// writes so tests can assert on hit/miss behavior.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string

	Reads  int
	Writes int
}

// NewMemoryStore creates an empty in-memory fragment store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Read implements Store.
func (s *MemoryStore) Read(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	content, ok := s.entries[key]
	return content, ok
}

// Write implements Store. Storage options are accepted and ignored.
func (s *MemoryStore) Write(key, content string, _ map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	s.entries[key] = content
}

// Len returns the number of stored fragments.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Keys returns the stored fragment keys, in no particular order.
func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// TestResult holds the outcome of a test render.
type TestResult struct {
	Output string
	Err    error
}

// OK reports whether the render succeeded.
func (tr *TestResult) OK() bool {
	return tr.Err == nil
}

// Contains reports whether the output contains the substring.
func (tr *TestResult) Contains(s string) bool {
	return strings.Contains(tr.Output, s)
}

// Empty reports whether the render produced no output (a suppressed state,
// or a production-mode missing template).
func (tr *TestResult) Empty() bool {
	return tr.Output == ""
}

// TestRender renders a state through the registry, including the caching
// decorator when the registry has a store, and returns a TestResult:
//
//	res := cells.TestRender(reg, "cart_cell", "display", params)
//	if !res.Contains("3 items") {
//	    t.Fatal("missing cart summary")
//	}
func TestRender(reg *Registry, component, state string, params Params, opts ...CreateOption) *TestResult {
	out, err := reg.RenderState(component, component, state, params, opts...)
	return &TestResult{Output: out, Err: err}
}
