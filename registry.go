package cells

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Env selects the missing-template failure policy.
type Env int

const (
	// EnvDevelopment returns a diagnostic string in place of a missing
	// template instead of failing the render.
	EnvDevelopment Env = iota
	// EnvTest propagates missing-template errors to the caller.
	EnvTest
	// EnvProduction logs a warning and suppresses the output.
	EnvProduction
)

// Config carries the explicit collaborators and switches for a Registry.
// There is no package-level mutable state; everything a render needs is
// injected here.
type Config struct {
	// Env selects the missing-template policy. Defaults to EnvDevelopment.
	Env Env

	// Engine renders template files. Required.
	Engine Engine

	// Root is the primary application view root, always searched first.
	Root string

	// Overlays are additional search roots in precedence order, highest
	// first. Further roots may be added with Registry.AddOverlay before
	// the first render.
	Overlays []string

	// Store is the fragment store used by cached cells. Nil disables
	// caching regardless of declarations.
	Store Store

	// CachingEnabled is the process-wide caching switch, set once at
	// startup and read thereafter.
	CachingEnabled bool

	// Logger receives warnings and cache diagnostics. Defaults to a nop
	// logger.
	Logger *zap.Logger
}

// Registry manages cell definitions and creates component instances.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition

	cfg      Config
	resolver *Resolver
	engine   Engine
	log      *zap.Logger

	overlayMu sync.Mutex
	overlays  []string
}

// NewRegistry creates a registry from the given configuration.
func NewRegistry(cfg Config) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r := &Registry{
		defs:     make(map[string]*Definition),
		cfg:      cfg,
		engine:   cfg.Engine,
		log:      cfg.Logger,
		overlays: append([]string{}, cfg.Overlays...),
	}
	r.resolver = NewResolver(cfg.Root, r.overlayRoots)
	return r
}

// Add registers definitions with the registry.
// Panics on a duplicate definition name; that is a wiring bug, not a
// runtime condition.
func (r *Registry) Add(defs ...*Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		if _, exists := r.defs[def.name]; exists {
			panic(fmt.Sprintf("cells: definition %q already registered", def.name))
		}
		r.defs[def.name] = def
	}
}

// Define creates a definition, registers it, and returns it for state and
// cache-rule declarations.
func (r *Registry) Define(name string, opts ...DefinitionOption) *Definition {
	def := NewDefinition(name, opts...)
	r.Add(def)
	return def
}

// Lookup returns a registered definition by name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// AddOverlay registers an additional search root with highest precedence
// among overlays. Overlays must be registered before the first render of a
// definition; the resolver caches each definition's paths on first use.
func (r *Registry) AddOverlay(root string) {
	r.overlayMu.Lock()
	defer r.overlayMu.Unlock()
	r.overlays = append([]string{root}, r.overlays...)
}

// Resolver returns the registry's view path resolver.
func (r *Registry) Resolver() *Resolver {
	return r.resolver
}

func (r *Registry) overlayRoots() []string {
	r.overlayMu.Lock()
	defer r.overlayMu.Unlock()
	return append([]string{}, r.overlays...)
}

// CreateOption configures a component instance at creation.
type CreateOption func(*Component)

// WithSession attaches the host session mapping to the instance.
func WithSession(session map[string]any) CreateOption {
	return func(c *Component) {
		c.session = session
	}
}

// WithRequestParams attaches the enclosing request's parameters to the
// instance.
func WithRequestParams(params map[string]any) CreateOption {
	return func(c *Component) {
		c.reqParams = params
	}
}

// Create builds a component instance of the named definition. The instance
// is valid for a single render request.
func (r *Registry) Create(component, name string, params Params, opts ...CreateOption) (*Component, error) {
	def, ok := r.Lookup(component)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, component)
	}
	c := &Component{
		def:      def,
		reg:      r,
		name:     name,
		params:   params,
		vars:     make(map[string]any),
		contexts: make(map[string]*ViewContext),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Cached wraps a component in the caching decorator when the registry has a
// fragment store; otherwise the component is returned unwrapped. Both sides
// satisfy StateRenderer, so callers render the same way either way.
func (r *Registry) Cached(c *Component) StateRenderer {
	if r.cfg.Store == nil {
		return c
	}
	return NewCachedCell(c, r.cfg.Store, r.cfg.CachingEnabled)
}

// RenderState creates an instance of the named definition, applies the
// caching decorator if configured, and renders the given state.
func (r *Registry) RenderState(component, name, state string, params Params, opts ...CreateOption) (string, error) {
	c, err := r.Create(component, name, params, opts...)
	if err != nil {
		return "", err
	}
	return r.Cached(c).RenderState(state)
}

// renderCall implements redirect-to-component: a new instance of the target
// definition (the caller's own when component is empty) is created with
// merged parameters and host context carried over, and its state rendered.
func (r *Registry) renderCall(from *Component, component, state string, params Params) (string, error) {
	if component == "" {
		component = from.def.name
	}
	target, err := r.Create(component, from.name, from.params.Merge(params),
		WithSession(from.session), WithRequestParams(from.reqParams))
	if err != nil {
		return "", err
	}
	return target.RenderState(state)
}
