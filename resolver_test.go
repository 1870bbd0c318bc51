package cells

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolverSubdirectories(t *testing.T) {
	base := NewDefinition("item_cell")
	mid := NewDefinition("book_cell", Extends(base))
	leaf := NewDefinition("rare_book_cell", Extends(mid))

	r := NewResolver("app/cells", nil)
	got := r.Subdirectories(leaf)
	want := []string{"rare_book", "book", "item", "shared"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subdirectories = %v, want %v", got, want)
	}
}

func TestResolverSubdirectoriesSingle(t *testing.T) {
	def := NewDefinition("cart_cell")
	r := NewResolver("app/cells", nil)

	got := r.Subdirectories(def)
	want := []string{"cart", "shared"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subdirectories = %v, want %v", got, want)
	}
}

func TestResolverSuffixTrimming(t *testing.T) {
	if got := dirSegment("shopping_cart_cell"); got != "shopping_cart" {
		t.Errorf("dirSegment = %q, want shopping_cart", got)
	}
	// Names without the suffix pass through untouched.
	if got := dirSegment("sidebar"); got != "sidebar" {
		t.Errorf("dirSegment = %q, want sidebar", got)
	}
}

func TestResolverCandidatePaths(t *testing.T) {
	base := NewDefinition("item_cell")
	leaf := NewDefinition("book_cell", Extends(base))
	r := NewResolver("app/cells", nil)

	got := r.CandidatePaths(leaf)
	want := []string{
		filepath.Join("app/cells", "book"),
		filepath.Join("app/cells", "item"),
		filepath.Join("app/cells", "shared"),
		"app/cells",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CandidatePaths = %v, want %v", got, want)
	}
}

func TestResolverOverlayOrdering(t *testing.T) {
	// Primary root first, then overlays highest precedence first, each
	// root's subdirectories before its bare root.
	def := NewDefinition("cart_cell")
	r := NewResolver("app/cells", func() []string {
		return []string{"plugin/cells", "engine/cells"}
	})

	got := r.CandidatePaths(def)
	want := []string{
		filepath.Join("app/cells", "cart"),
		filepath.Join("app/cells", "shared"),
		"app/cells",
		filepath.Join("plugin/cells", "cart"),
		filepath.Join("plugin/cells", "shared"),
		"plugin/cells",
		filepath.Join("engine/cells", "cart"),
		filepath.Join("engine/cells", "shared"),
		"engine/cells",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CandidatePaths = %v, want %v", got, want)
	}
}

func TestResolverLayoutPaths(t *testing.T) {
	def := NewDefinition("cart_cell")
	r := NewResolver("app/cells", nil)

	got := r.LayoutPaths(def)
	want := []string{
		filepath.Join("app/cells", "cart"),
		filepath.Join("app/cells", "shared"),
		filepath.Join("app/cells", "layouts"),
		"app/cells",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LayoutPaths = %v, want %v", got, want)
	}
}

func TestResolverCachesPerDefinition(t *testing.T) {
	def := NewDefinition("cart_cell")
	calls := 0
	r := NewResolver("app/cells", func() []string {
		calls++
		return nil
	})

	r.CandidatePaths(def)
	r.CandidatePaths(def)
	if calls != 1 {
		t.Errorf("overlay enumerator called %d times, want 1", calls)
	}
}

func TestRegistryAddOverlayPrecedence(t *testing.T) {
	engine := NewMapEngine().
		Add("late/cells/cart/display", "late overlay view")
	reg := NewRegistry(Config{
		Env:      EnvTest,
		Engine:   engine,
		Root:     "app/cells",
		Overlays: []string{"early/cells"},
	})
	reg.AddOverlay("late/cells")
	reg.Define("cart_cell").State("display", func(c *Component) error { return nil })

	// The most-recently-registered overlay is searched before earlier
	// ones, but still after the primary root.
	def, _ := reg.Lookup("cart_cell")
	paths := reg.Resolver().CandidatePaths(def)
	want := []string{
		filepath.Join("app/cells", "cart"),
		filepath.Join("app/cells", "shared"),
		"app/cells",
		filepath.Join("late/cells", "cart"),
		filepath.Join("late/cells", "shared"),
		"late/cells",
		filepath.Join("early/cells", "cart"),
		filepath.Join("early/cells", "shared"),
		"early/cells",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("CandidatePaths = %v, want %v", paths, want)
	}

	res := TestRender(reg, "cart_cell", "display", Params{})
	if !res.OK() {
		t.Fatalf("render error: %v", res.Err)
	}
	if res.Output != "late overlay view" {
		t.Errorf("output = %q", res.Output)
	}
}
