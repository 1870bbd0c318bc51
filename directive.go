package cells

// directiveKind enumerates what a state decided to output.
type directiveKind int

const (
	// kindDefault renders the state's own view through the resolver.
	kindDefault directiveKind = iota
	// kindText returns a literal string, no template lookup.
	kindText
	// kindView renders another state's template without running its function.
	kindView
	// kindNothing suppresses output.
	kindNothing
	// kindLayout renders the view, then wraps it in a layout template.
	kindLayout
	// kindCall renders a state of another component with merged params.
	kindCall
)

// directive is the single decision a state invocation makes about its
// output. At most one directive may be set per invocation; a second set is
// a *DoubleRenderError.
type directive struct {
	kind   directiveKind
	text   string
	view   string // alternate view name for kindView/kindLayout
	layout string // layout name for kindLayout ("" = definition default)

	// call target for kindCall
	callComponent string
	callState     string
	callParams    Params
}

// directiveFrom collapses accumulated render options into a directive.
func directiveFrom(o renderOptions) directive {
	switch {
	case o.nothing:
		return directive{kind: kindNothing}
	case o.hasText:
		return directive{kind: kindText, text: o.text}
	case o.hasLayout:
		return directive{kind: kindLayout, view: o.view, layout: o.layout}
	case o.view != "":
		return directive{kind: kindView, view: o.view}
	default:
		return directive{kind: kindDefault}
	}
}
