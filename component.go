package cells

import (
	"fmt"

	"go.uber.org/zap"
)

// Component is a single cell instance: a definition bound to an instance
// name and an immutable parameter mapping. Instances are created per render
// request and discarded after the output string is produced - never pooled,
// never persisted.
//
// A Component is not safe for concurrent use; one state render completes
// before the next begins on a given instance.
type Component struct {
	def *Definition
	reg *Registry

	name      string
	params    Params
	session   map[string]any
	reqParams map[string]any

	vars     map[string]any
	contexts map[string]*ViewContext

	// per-invocation directive bookkeeping
	currentState string
	rendered     bool
	dir          directive
	renderErr    error
}

// Name returns the instance name.
func (c *Component) Name() string {
	return c.name
}

// Definition returns the cell definition this instance was created from.
func (c *Component) Definition() *Definition {
	return c.def
}

// Params returns the instance's immutable parameters.
func (c *Component) Params() Params {
	return c.params
}

// Session returns the host session mapping, opaque to this package.
func (c *Component) Session() map[string]any {
	return c.session
}

// RequestParams returns the enclosing request's parameters, opaque to this
// package.
func (c *Component) RequestParams() map[string]any {
	return c.reqParams
}

// StateName returns the state currently being rendered.
func (c *Component) StateName() string {
	return c.currentState
}

// Set publishes a variable for templates rendered by this instance.
// Publishes flow through to view contexts already built for this instance,
// so a layout template sees variables set after its view rendered.
func (c *Component) Set(name string, value any) {
	if name == varCell || name == varStateName {
		return
	}
	c.vars[name] = value
	for _, vc := range c.contexts {
		vc.set(name, value)
	}
}

// Get returns a published variable, or nil if absent.
func (c *Component) Get(name string) any {
	return c.vars[name]
}

// Render sets this invocation's render directive from the given options.
// Calling any Render method a second time within the same state is a
// programmer error and returns a *DoubleRenderError; the same error also
// surfaces from RenderState regardless of what the state function returns.
func (c *Component) Render(opts ...RenderOption) error {
	return c.setDirective(directiveFrom(buildRenderOptions(opts)))
}

// RenderText outputs the literal string; no template lookup occurs.
func (c *Component) RenderText(s string) error {
	return c.Render(Text(s))
}

// RenderView renders the named state's template without executing that
// state's function.
func (c *Component) RenderView(name string, opts ...RenderOption) error {
	return c.Render(append([]RenderOption{View(name)}, opts...)...)
}

// RenderNothing suppresses output for this state.
func (c *Component) RenderNothing() error {
	return c.Render(Nothing())
}

// RenderCell redirects this state's output to another component: a new
// instance of the named definition is created with this instance's
// parameters merged with params, the given state is rendered, and its
// output becomes this state's output. An empty component name targets this
// instance's own definition.
func (c *Component) RenderCell(component, state string, params Params) error {
	return c.setDirective(directive{
		kind:          kindCall,
		callComponent: component,
		callState:     state,
		callParams:    params,
	})
}

func (c *Component) setDirective(d directive) error {
	if c.rendered {
		err := &DoubleRenderError{Component: c.def.name, State: c.currentState}
		c.renderErr = err
		return err
	}
	c.rendered = true
	c.dir = d
	return nil
}

// RenderState executes the named state function and renders its output. The
// state may publish variables and set at most one render directive; with no
// directive the state's default view is rendered through the view-path
// resolver.
func (c *Component) RenderState(state string) (string, error) {
	fn, ok := c.def.stateFunc(state)
	if !ok {
		return "", fmt.Errorf("%w: %s#%s", ErrUnknownState, c.def.name, state)
	}

	c.currentState = state
	c.rendered = false
	c.dir = directive{}
	c.renderErr = nil
	c.vars[varCell] = c.def.name
	c.vars[varStateName] = state

	err := fn(c)
	if c.renderErr != nil {
		// Double renders surface even when the state swallows the error.
		return "", c.renderErr
	}
	if err != nil {
		return "", err
	}
	return c.resolveDirective(state, c.dir)
}

func (c *Component) resolveDirective(state string, d directive) (string, error) {
	switch d.kind {
	case kindText:
		return d.text, nil
	case kindNothing:
		return "", nil
	case kindView:
		return c.renderView(d.view, state)
	case kindLayout:
		view := d.view
		if view == "" {
			view = state
		}
		content, err := c.renderView(view, state)
		if err != nil {
			return "", err
		}
		c.Set(VarContentForLayout, content)
		return c.renderLayout(d.layout, state)
	case kindCall:
		return c.reg.renderCall(c, d.callComponent, d.callState, d.callParams)
	default:
		if hook := c.def.viewForHook(); hook != nil {
			if path := hook(c, state); path != "" {
				// The hook claims the exact file exists; skip the
				// resolver's directory search.
				out, err := c.reg.engine.Render(path, nil, c.viewContext(state))
				return c.applyMissingPolicy(path, nil, out, err)
			}
		}
		return c.renderView(state, state)
	}
}

// renderView renders the named view against the context for the invoking
// state, searching the definition's candidate paths.
func (c *Component) renderView(view, state string) (string, error) {
	paths := c.reg.resolver.CandidatePaths(c.def)
	out, err := c.reg.engine.Render(view, paths, c.viewContext(state))
	return c.applyMissingPolicy(view, paths, out, err)
}

// renderLayout renders the layout template against the layout path chain.
// An empty layout name selects the definition's default; with none set, the
// wrapped content passes through unchanged.
func (c *Component) renderLayout(layout, state string) (string, error) {
	if layout == "" {
		layout = c.def.layoutName()
	}
	if layout == "" {
		content, _ := c.vars[VarContentForLayout].(string)
		return content, nil
	}
	paths := c.reg.resolver.LayoutPaths(c.def)
	out, err := c.reg.engine.Render(layout, paths, c.viewContext(state))
	return c.applyMissingPolicy(layout, paths, out, err)
}

// viewContext returns the render context for a state, building and caching
// it on first use so repeated renders of the same state reuse one context.
func (c *Component) viewContext(state string) *ViewContext {
	if vc, ok := c.contexts[state]; ok {
		return vc
	}
	vc := newViewContext(c)
	c.contexts[state] = vc
	return vc
}

// applyMissingPolicy implements the environment-dependent missing-template
// policy: diagnostic string in development, propagation in test, logged
// suppression in production. All other errors pass through unchanged.
func (c *Component) applyMissingPolicy(name string, paths []string, out string, err error) (string, error) {
	if err == nil || !IsMissingTemplate(err) {
		return out, err
	}
	switch c.reg.cfg.Env {
	case EnvTest:
		return "", err
	case EnvProduction:
		c.reg.log.Warn("missing template",
			zap.String("component", c.def.name),
			zap.String("state", c.currentState),
			zap.String("template", name),
		)
		return "", nil
	default:
		return fmt.Sprintf("[cells] missing template %q for %s#%s (searched %d paths)",
			name, c.def.name, c.currentState, len(paths)), nil
	}
}
