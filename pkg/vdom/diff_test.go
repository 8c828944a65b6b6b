package vdom

import "testing"

func expanded(node *VNode, gen *HIDGenerator) *VNode {
	out := Expand(node)
	AssignHIDs(out, gen)
	return out
}

func TestDiffTextOnlyChildren(t *testing.T) {
	gen := NewHIDGenerator()
	prev := expanded(Main(Button(Text("クリックしてみてね"), Textf("%d", 0))), gen)
	next := Expand(Main(Button(Text("クリックしてみてね"), Textf("%d", 1))))

	patches := Diff(prev, next, gen)
	if len(patches) != 1 {
		t.Fatalf("len(patches) = %d, want 1: %+v", len(patches), patches)
	}
	p := patches[0]
	if p.Op != PatchSetText || p.HID != "h2" || p.Value != "クリックしてみてね1" {
		t.Errorf("patch = %+v", p)
	}
	if next.Children[0].HID != "h2" {
		t.Errorf("next button HID = %q, want inherited h2", next.Children[0].HID)
	}
}

func TestDiffNoChanges(t *testing.T) {
	gen := NewHIDGenerator()
	prev := expanded(Main(H1(Text("a")), P(Class("x"), Text("b"))), gen)
	next := Expand(Main(H1(Text("a")), P(Class("x"), Text("b"))))

	if patches := Diff(prev, next, gen); len(patches) != 0 {
		t.Errorf("expected no patches, got %+v", patches)
	}
}

func TestDiffAttributes(t *testing.T) {
	gen := NewHIDGenerator()
	prev := expanded(Div(Class("a"), ID("x")), gen)
	next := Expand(Div(Class("b"), Data("k", "v")))

	patches := Diff(prev, next, gen)
	ops := map[string]PatchOp{}
	for _, p := range patches {
		ops[p.Key] = p.Op
	}
	if ops["class"] != PatchSetAttr {
		t.Error("class should be set")
	}
	if ops["id"] != PatchRemoveAttr {
		t.Error("id should be removed")
	}
	if ops["data-k"] != PatchSetAttr {
		t.Error("data-k should be set")
	}
}

func TestDiffStructuralChangeReplaces(t *testing.T) {
	gen := NewHIDGenerator()
	prev := expanded(Main(H1(Text("ようこそ")), P(Text("Hello, World!")), Button(Text("0"))), gen)
	before := gen.Current()
	next := Expand(Main(H1(Text("Not Found"))))

	patches := Diff(prev, next, gen)
	if len(patches) != 1 {
		t.Fatalf("len(patches) = %d, want 1: %+v", len(patches), patches)
	}
	p := patches[0]
	if p.Op != PatchReplaceNode || p.HID != "h1" {
		t.Fatalf("patch = %+v", p)
	}
	if p.Node.HID == "" || p.Node.HID == "h1" {
		t.Errorf("replacement should carry a fresh HID, got %q", p.Node.HID)
	}
	if gen.Current() <= before {
		t.Error("generator should have advanced")
	}
	if next.HID != p.Node.HID {
		t.Error("next tree should keep the replacement HIDs")
	}
}

func TestDiffTagChangeReplacesChild(t *testing.T) {
	gen := NewHIDGenerator()
	prev := expanded(Main(H1(Text("a"))), gen)
	next := Expand(Main(H2(Text("a"))))

	patches := Diff(prev, next, gen)
	if len(patches) != 1 || patches[0].Op != PatchReplaceNode || patches[0].HID != "h2" {
		t.Fatalf("patches = %+v", patches)
	}
}

func TestPatchOpString(t *testing.T) {
	if PatchSetText.String() != "SetText" || PatchReplaceNode.String() != "ReplaceNode" {
		t.Error("unexpected PatchOp names")
	}
	if PatchOp(0xFF).String() != "Unknown" {
		t.Error("unknown op should be Unknown")
	}
}
