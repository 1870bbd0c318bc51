package cells

// StateFunc is a state implementation bound to a component instance. It may
// publish variables with c.Set and decide the output with one of the Render
// methods; returning without rendering selects the state's default view.
type StateFunc func(c *Component) error

// cacheRule is a single cacheability declaration. A nil predicate means the
// state is always cacheable; otherwise the predicate decides per render
// based on the component's parameters.
type cacheRule struct {
	predicate func(Params) bool
}

// Definition describes a cell type: its name, its parent in the view
// inheritance chain, its states, and its caching rules. Definitions are
// built once at startup and treated as immutable afterwards.
type Definition struct {
	name   string
	parent *Definition
	layout string

	states  map[string]StateFunc
	viewFor func(c *Component, state string) string

	cacheNone   bool
	cacheAll    *cacheRule
	cacheStates map[string]*cacheRule
}

// DefinitionOption configures a Definition at construction.
type DefinitionOption func(*Definition)

// Extends places the definition under parent in the view inheritance chain.
// States and caching rules not declared on the definition are inherited
// from the parent, and the parent's view directory is searched when the
// definition's own directory has no matching template.
func Extends(parent *Definition) DefinitionOption {
	return func(d *Definition) {
		d.parent = parent
	}
}

// DefaultLayout sets the layout used when a state renders with
// WithLayout("") or when callers request the definition's default layout.
func DefaultLayout(name string) DefinitionOption {
	return func(d *Definition) {
		d.layout = name
	}
}

// NewDefinition creates a cell definition. By convention names carry a
// "_cell" suffix ("cart_cell"); the suffix is trimmed when deriving the
// view directory segment, so "cart_cell" looks under "cart/".
func NewDefinition(name string, opts ...DefinitionOption) *Definition {
	d := &Definition{
		name:        name,
		states:      make(map[string]StateFunc),
		cacheStates: make(map[string]*cacheRule),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Name returns the definition's name.
func (d *Definition) Name() string {
	return d.name
}

// Parent returns the parent definition, or nil for a chain root.
func (d *Definition) Parent() *Definition {
	return d.parent
}

// State registers a state function under the given name. Returns the
// definition for chaining.
func (d *Definition) State(name string, fn StateFunc) *Definition {
	d.states[name] = fn
	return d
}

// ViewFor installs a hook consulted before the default view lookup. If the
// hook returns a non-empty path, that path is treated as the literal
// template file and the resolver's directory search is skipped entirely -
// the hook claims the exact file exists.
func (d *Definition) ViewFor(fn func(c *Component, state string) string) *Definition {
	d.viewFor = fn
	return d
}

// Caches declares the given states cacheable unconditionally.
func (d *Definition) Caches(states ...string) *Definition {
	for _, s := range states {
		d.cacheStates[s] = &cacheRule{}
	}
	return d
}

// CachesIf declares a state cacheable when the predicate holds for the
// component's parameters.
func (d *Definition) CachesIf(state string, predicate func(Params) bool) *Definition {
	d.cacheStates[state] = &cacheRule{predicate: predicate}
	return d
}

// CachesAll declares every state of this definition cacheable.
func (d *Definition) CachesAll() *Definition {
	d.cacheAll = &cacheRule{}
	return d
}

// CachesNone disables caching for this definition regardless of other
// declarations, including inherited ones.
func (d *Definition) CachesNone() *Definition {
	d.cacheNone = true
	return d
}

// stateFunc resolves a state function, walking the parent chain so derived
// definitions inherit states they do not override.
func (d *Definition) stateFunc(name string) (StateFunc, bool) {
	for def := d; def != nil; def = def.parent {
		if fn, ok := def.states[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// viewForHook returns the nearest ViewFor hook in the chain, if any.
func (d *Definition) viewForHook() func(c *Component, state string) string {
	for def := d; def != nil; def = def.parent {
		if def.viewFor != nil {
			return def.viewFor
		}
	}
	return nil
}

// layoutName returns the nearest default layout in the chain, or "".
func (d *Definition) layoutName() string {
	for def := d; def != nil; def = def.parent {
		if def.layout != "" {
			return def.layout
		}
	}
	return ""
}

// cacheRuleFor resolves the cacheability rule for a state. The chain is
// walked most-derived first and the nearest declaration wins; a CachesNone
// at any level before a matching rule vetoes caching outright.
func (d *Definition) cacheRuleFor(state string) (*cacheRule, bool) {
	for def := d; def != nil; def = def.parent {
		if def.cacheNone {
			return nil, false
		}
		if rule, ok := def.cacheStates[state]; ok {
			return rule, true
		}
		if def.cacheAll != nil {
			return def.cacheAll, true
		}
	}
	return nil, false
}
