// Package cells provides autonomous, parameter-driven view components for
// server-rendered Go applications.
//
// A cell is a self-contained rendering unit: it accepts parameters, executes
// a named "state" function, renders an associated template fragment, and
// optionally caches the result. Cells are defined declaratively and resolved
// through an explicit registry - no reflection-based dispatch, no global
// mutable configuration.
//
// # Core Concepts
//
// Definitions describe a cell type: its states, its place in a view
// inheritance chain, and its caching rules.
//
//	cart := cells.NewDefinition("cart_cell")
//	cart.State("display", func(c *cells.Component) error {
//	    c.Set("items", loadItems(c.Params().String("user")))
//	    return nil
//	})
//
// A state function publishes variables with Set and optionally decides what
// to output by calling one of the Render methods exactly once. If it decides
// nothing, the default view for the state is rendered:
//
//	return c.RenderText("hello")              // literal output, no template
//	return c.Render(cells.View("summary"))    // another state's template
//	return c.RenderNothing()                  // suppress output entirely
//	return c.Render(cells.WithLayout("box"))  // wrap the view in a layout
//
// Calling a Render method a second time within the same state is a
// programmer error and surfaces as *DoubleRenderError.
//
// # View Inheritance
//
// Definitions may extend one another. Template lookup walks the definition
// chain most-derived first, then a shared fallback directory, so a derived
// cell's view always wins and a parent view is used only when the derived
// cell provides none:
//
//	base := cells.NewDefinition("item_cell")
//	special := cells.NewDefinition("special_item_cell", cells.Extends(base))
//	// lookup order: special_item/, item/, shared/
//
// Overlay roots (plugins, engines) contribute additional search roots with
// the primary application root always searched first.
//
// # Registration and Rendering
//
// Cells are registered explicitly with a Registry configured with a template
// engine, an environment mode, and optionally a fragment store:
//
//	reg := cells.NewRegistry(cells.Config{
//	    Env:    cells.EnvProduction,
//	    Engine: engine,
//	    Root:   "app/cells",
//	})
//	reg.Add(cart)
//	out, err := reg.RenderState("cart_cell", "cart", "display", params)
//
// The template engine is an external collaborator behind the Engine
// interface; adapters for pongo2 file templates and templ components live
// under adapters/.
//
// # Fragment Caching
//
// Caching is explicit composition: a CachedCell wraps a Component behind the
// same StateRenderer contract. Cache keys are derived deterministically from
// the definition name, the state, and a canonicalized parameter hash, so
// identical inputs always hit the same entry. Parameters that cannot be
// canonicalized degrade gracefully to an uncached render.
//
//	cart.Caches("display")
//	cached := cells.NewCachedCell(component, store, true)
//	out, err := cached.RenderState("display")
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit registration (no init() side effects)
//   - Explicit inheritance (Extends, not runtime type walks)
//   - Explicit caching (decorator composition, not method interception)
//   - Explicit configuration (Config struct, no package-level switches)
//
// This keeps rendering behavior testable and statically verifiable while
// preserving the flexibility of runtime template resolution.
package cells
