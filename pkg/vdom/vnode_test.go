package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCreateElementArgs(t *testing.T) {
	clicked := false
	node := Button(
		nil,
		Class("a", "b"),
		[]Attr{ID("btn"), {}},
		OnClick(func() { clicked = true }),
		"label",
		Text("0"),
	)

	if node.Tag != "button" {
		t.Fatalf("Tag = %q, want button", node.Tag)
	}
	if node.Props["class"] != "a b" {
		t.Errorf("class = %v", node.Props["class"])
	}
	if node.Props["id"] != "btn" {
		t.Errorf("id = %v", node.Props["id"])
	}
	if len(node.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(node.Children))
	}
	if !node.IsInteractive() {
		t.Error("button with OnClick should be interactive")
	}

	node.Props["onclick"].(func())()
	if !clicked {
		t.Error("handler was not stored")
	}
}

func TestNilHandlerIgnored(t *testing.T) {
	node := Button(OnClick(nil))
	if node.IsInteractive() {
		t.Error("nil handler should not make the node interactive")
	}
}

func TestTextContent(t *testing.T) {
	node := Div(P(Text("a"), Text("b")), Text("c"))
	if got := node.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want %q", got, "abc")
	}
}

func TestExpandRendersComponentsAndFlattensFragments(t *testing.T) {
	renders := 0
	comp := Func(func() *VNode {
		renders++
		return Fragment(H1(Text("title")), P(Text("body")))
	})

	tree := Main(comp, Fragment(Span(Text("x"))))
	out := Expand(tree)

	if renders != 1 {
		t.Fatalf("component rendered %d times, want 1", renders)
	}
	if len(out.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(out.Children))
	}
	for i, tag := range []string{"h1", "p", "span"} {
		if out.Children[i].Tag != tag {
			t.Errorf("child %d = %q, want %q", i, out.Children[i].Tag, tag)
		}
	}

	// The source tree keeps its component node.
	if tree.Children[0].Kind != KindComponent {
		t.Error("Expand mutated the input tree")
	}

	Expand(tree)
	if renders != 2 {
		t.Errorf("second Expand should re-render, renders = %d", renders)
	}
}

func TestExpandMultipleRootsReturnsFragment(t *testing.T) {
	out := Expand(Fragment(P(), P()))
	if out.Kind != KindFragment || len(out.Children) != 2 {
		t.Fatalf("got kind %s with %d children", out.Kind, len(out.Children))
	}
	if Expand(nil) != nil {
		t.Error("Expand(nil) should be nil")
	}
	if Expand(Fragment()) != nil {
		t.Error("empty fragment should expand to nil")
	}
}
