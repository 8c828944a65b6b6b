package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
	HID      string    // Hydration ID (assigned before render)
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if isEventHandler(key) {
			return true
		}
	}
	return false
}

// TextContent concatenates the text of all descendant text nodes.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	var b strings.Builder
	for _, child := range v.Children {
		b.WriteString(child.TextContent())
	}
	return b.String()
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler func()
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// ComponentNode wraps c in a component node.
func ComponentNode(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}

// Expand returns a copy of the tree with component nodes rendered and
// fragments flattened into their parents, so every element's Children mirror
// the child nodes the browser will see. The input tree is not modified and can
// be expanded again after state changes. A root that expands to more than one
// node comes back as a fragment.
func Expand(node *VNode) *VNode {
	var out []*VNode
	expandInto(node, &out)
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return &VNode{Kind: KindFragment, Children: out}
	}
}

func expandInto(node *VNode, out *[]*VNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case KindComponent:
		if node.Comp != nil {
			expandInto(node.Comp.Render(), out)
		}

	case KindFragment:
		for _, child := range node.Children {
			expandInto(child, out)
		}

	case KindText, KindRaw:
		clone := *node
		*out = append(*out, &clone)

	default:
		clone := *node
		clone.HID = ""
		clone.Children = make([]*VNode, 0, len(node.Children))
		for _, child := range node.Children {
			expandInto(child, &clone.Children)
		}
		*out = append(*out, &clone)
	}
}
