package cells

// Engine is the external template engine contract.
//
// Render locates a template by name under the given search paths, in order,
// and renders it against the view context. The first path containing the
// template wins. If searchPaths is empty, name is treated as a literal
// template path and resolved directly - callers use this when they already
// know the exact file.
//
// A template that exists under none of the search paths must yield a
// *MissingTemplateError; how that error is treated (diagnostic string,
// propagation, or suppression) is the registry's environment policy, not
// the engine's concern.
//
// Engines must not retain the ViewContext beyond the Render call.
type Engine interface {
	Render(name string, searchPaths []string, ctx *ViewContext) (string, error)
}

// Store is the external fragment store contract consumed by CachedCell.
//
// Read returns the content stored under key and whether it was present.
// Write stores content under key; opts carry caller-supplied storage
// options (expiry and the like) that are opaque to this package. Entry
// lifecycle - TTL, eviction - belongs entirely to the store.
type Store interface {
	Read(key string) (string, bool)
	Write(key, content string, opts map[string]any)
}

// StateRenderer is the render contract shared by Component and CachedCell,
// enabling caching as explicit decorator composition: anything that can
// render a state can be wrapped, and callers cannot tell a cached cell from
// a bare one.
type StateRenderer interface {
	RenderState(state string) (string, error)
}
