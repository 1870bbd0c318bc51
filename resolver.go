package cells

import (
	"path/filepath"
	"strings"
	"sync"
)

const (
	// cellSuffix is trimmed from definition names when deriving view
	// directory segments.
	cellSuffix = "_cell"
	// sharedDir is the common fallback directory searched after the
	// definition chain.
	sharedDir = "shared"
	// layoutsDir is the dedicated namespace appended for layout lookups.
	layoutsDir = "layouts"
)

// Resolver computes the ordered template search paths for a definition.
//
// Results are cached for the process lifetime per definition; first
// population may race under concurrent renders, which is harmless since
// recomputation is idempotent.
type Resolver struct {
	root     string
	overlays func() []string

	subdirs     sync.Map // *Definition -> []string
	paths       sync.Map // *Definition -> []string
	layoutPaths sync.Map // *Definition -> []string
}

// NewResolver creates a resolver over the primary application root. The
// overlays function enumerates additional search roots, highest precedence
// first; it may be nil. Overlays are consulted once per definition, on
// first resolution.
func NewResolver(root string, overlays func() []string) *Resolver {
	return &Resolver{root: root, overlays: overlays}
}

// Subdirectories returns the ordered directory segments for a definition:
// one segment per definition in the chain, most-derived first, then the
// shared fallback. The most-derived cell's own view always wins; an
// inherited view is found only if the derived cell provides none.
func (r *Resolver) Subdirectories(def *Definition) []string {
	if cached, ok := r.subdirs.Load(def); ok {
		return cached.([]string)
	}
	var segments []string
	for d := def; d != nil; d = d.parent {
		segments = append(segments, dirSegment(d.name))
	}
	segments = append(segments, sharedDir)
	r.subdirs.Store(def, segments)
	return segments
}

// CandidatePaths returns the full ordered search path list for a
// definition: for the primary root first, then each overlay root, every
// subdirectory segment followed by the bare root itself.
func (r *Resolver) CandidatePaths(def *Definition) []string {
	if cached, ok := r.paths.Load(def); ok {
		return cached.([]string)
	}
	paths := r.expand(r.Subdirectories(def))
	r.paths.Store(def, paths)
	return paths
}

// LayoutPaths returns the search path list used for layout templates: the
// definition chain and shared fallback, then the dedicated layouts
// namespace.
func (r *Resolver) LayoutPaths(def *Definition) []string {
	if cached, ok := r.layoutPaths.Load(def); ok {
		return cached.([]string)
	}
	subdirs := append(append([]string{}, r.Subdirectories(def)...), layoutsDir)
	paths := r.expand(subdirs)
	r.layoutPaths.Store(def, paths)
	return paths
}

func (r *Resolver) expand(subdirs []string) []string {
	roots := []string{r.root}
	if r.overlays != nil {
		roots = append(roots, r.overlays()...)
	}
	var paths []string
	for _, root := range roots {
		for _, sub := range subdirs {
			paths = append(paths, filepath.Join(root, sub))
		}
		paths = append(paths, root)
	}
	return paths
}

// dirSegment derives the view directory segment from a definition name by
// trimming the fixed naming suffix: "shopping_cart_cell" -> "shopping_cart".
func dirSegment(name string) string {
	return strings.TrimSuffix(name, cellSuffix)
}
