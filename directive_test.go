package cells

import "testing"

func TestDirectiveFromText(t *testing.T) {
	d := directiveFrom(buildRenderOptions([]RenderOption{Text("hello")}))
	if d.kind != kindText || d.text != "hello" {
		t.Errorf("directive = %+v, want text hello", d)
	}
}

func TestDirectiveFromEmptyText(t *testing.T) {
	// Rendering an empty literal is still a text directive, not a default
	// view render.
	d := directiveFrom(buildRenderOptions([]RenderOption{Text("")}))
	if d.kind != kindText {
		t.Errorf("kind = %v, want kindText", d.kind)
	}
}

func TestDirectiveFromView(t *testing.T) {
	d := directiveFrom(buildRenderOptions([]RenderOption{View("summary")}))
	if d.kind != kindView || d.view != "summary" {
		t.Errorf("directive = %+v, want view summary", d)
	}
}

func TestDirectiveFromNothing(t *testing.T) {
	d := directiveFrom(buildRenderOptions([]RenderOption{Nothing()}))
	if d.kind != kindNothing {
		t.Errorf("kind = %v, want kindNothing", d.kind)
	}
}

func TestDirectiveFromLayout(t *testing.T) {
	d := directiveFrom(buildRenderOptions([]RenderOption{WithLayout("box")}))
	if d.kind != kindLayout || d.layout != "box" {
		t.Errorf("directive = %+v, want layout box", d)
	}
}

func TestDirectiveFromLayoutWithView(t *testing.T) {
	d := directiveFrom(buildRenderOptions([]RenderOption{View("summary"), WithLayout("box")}))
	if d.kind != kindLayout || d.layout != "box" || d.view != "summary" {
		t.Errorf("directive = %+v, want layout box around summary", d)
	}
}

func TestDirectiveFromNoOptions(t *testing.T) {
	d := directiveFrom(buildRenderOptions(nil))
	if d.kind != kindDefault {
		t.Errorf("kind = %v, want kindDefault", d.kind)
	}
}

func TestDirectiveNothingWinsOverText(t *testing.T) {
	d := directiveFrom(buildRenderOptions([]RenderOption{Text("x"), Nothing()}))
	if d.kind != kindNothing {
		t.Errorf("kind = %v, want kindNothing", d.kind)
	}
}
