package cells

// Reserved bookkeeping variables maintained by the component during a state
// invocation. They are never copied into a view context.
const (
	varCell      = "cell"
	varStateName = "state_name"
)

// VarContentForLayout is the variable under which a wrapped view's output is
// published before the layout template renders.
const VarContentForLayout = "content_for_layout"

// ViewContext is the variable binding a template renders against. One
// context is created per (component instance, state) pair and cached on the
// instance, so re-rendering the same state - a layout wrap, for example -
// reuses the context rather than copying variables twice. Contexts are
// never shared across instances or unrelated renders.
type ViewContext struct {
	vars      map[string]any
	params    Params
	session   map[string]any
	reqParams map[string]any
}

func newViewContext(c *Component) *ViewContext {
	vars := make(map[string]any, len(c.vars))
	for k, v := range c.vars {
		if k == varCell || k == varStateName {
			continue
		}
		vars[k] = v
	}
	return &ViewContext{
		vars:      vars,
		params:    c.params,
		session:   c.session,
		reqParams: c.reqParams,
	}
}

// Var returns a published variable, or nil if absent.
func (vc *ViewContext) Var(name string) any {
	return vc.vars[name]
}

// Vars returns a copy of the published variables.
func (vc *ViewContext) Vars() map[string]any {
	out := make(map[string]any, len(vc.vars))
	for k, v := range vc.vars {
		out[k] = v
	}
	return out
}

// Params returns the component's parameters.
func (vc *ViewContext) Params() Params {
	return vc.params
}

// Session returns the host session mapping. It is opaque to this package
// and passed through to templates unchanged.
func (vc *ViewContext) Session() map[string]any {
	return vc.session
}

// RequestParams returns a read-only view of the enclosing request's
// parameters.
func (vc *ViewContext) RequestParams() map[string]any {
	out := make(map[string]any, len(vc.reqParams))
	for k, v := range vc.reqParams {
		out[k] = v
	}
	return out
}

// set writes a variable through to an existing context. Publishes that
// happen after context creation (a layout's content_for_layout) must be
// visible to subsequent renders against the same context.
func (vc *ViewContext) set(name string, value any) {
	if name == varCell || name == varStateName {
		return
	}
	vc.vars[name] = value
}
