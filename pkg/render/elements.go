package render

import "github.com/vango-dev/homepage/pkg/vdom"

// inlineElements never get line breaks in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"br":     true,
	"button": true,
	"code":   true,
	"em":     true,
	"i":      true,
	"span":   true,
	"strong": true,
	"small":  true,
	"title":  true,
}

// isInlineElement returns true if the tag is an inline element.
func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"async":    true,
	"checked":  true,
	"defer":    true,
	"disabled": true,
	"hidden":   true,
	"multiple": true,
	"readonly": true,
	"required": true,
	"selected": true,
}

// isBooleanAttr returns true if the attribute is a boolean attribute.
func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// hasOnlyElementChildren reports whether pretty printing may put children on
// their own lines without changing any text content.
func hasOnlyElementChildren(node *vdom.VNode) bool {
	if len(node.Children) == 0 {
		return false
	}
	for _, c := range node.Children {
		if c.Kind != vdom.KindElement {
			return false
		}
	}
	return true
}
