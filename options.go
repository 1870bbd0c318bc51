package cells

// renderOptions accumulates the choices a single Render call makes.
// Precedence when conflicting options are combined: Nothing, then Text,
// then layout wrapping, then an alternate view, then the default view.
type renderOptions struct {
	text      string
	hasText   bool
	view      string
	layout    string
	hasLayout bool
	nothing   bool
}

// RenderOption configures a single render directive.
type RenderOption func(*renderOptions)

// Text renders the literal string as the state's output. No template lookup
// occurs.
func Text(s string) RenderOption {
	return func(o *renderOptions) {
		o.text = s
		o.hasText = true
	}
}

// View renders the named state's template instead of the current state's
// default view. The named state's function is NOT executed; only its
// template is rendered against the current variables.
func View(name string) RenderOption {
	return func(o *renderOptions) {
		o.view = name
	}
}

// WithLayout wraps the state's view in the named layout template. The view
// is rendered first and published as the content_for_layout variable, then
// the layout template is rendered with that variable available.
//
// An empty name selects the definition's default layout, if one is set.
func WithLayout(name string) RenderOption {
	return func(o *renderOptions) {
		o.layout = name
		o.hasLayout = true
	}
}

// Nothing suppresses output for this state. The caller receives an empty
// string and decides how to treat absence.
func Nothing() RenderOption {
	return func(o *renderOptions) {
		o.nothing = true
	}
}

func buildRenderOptions(opts []RenderOption) renderOptions {
	var o renderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
