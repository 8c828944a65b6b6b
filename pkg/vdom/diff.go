package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// Diff compares two expanded trees and returns the patches needed to turn
// prev into next. Matched elements inherit their HID from prev; replaced
// subtrees get fresh HIDs from gen so they never collide with live DOM IDs.
func Diff(prev, next *VNode, gen *HIDGenerator) []Patch {
	var patches []Patch
	diff(prev, next, gen, &patches)
	return patches
}

func diff(prev, next *VNode, gen *HIDGenerator, patches *[]Patch) {
	if prev == nil || next == nil {
		return
	}

	if prev.Kind != KindElement || next.Kind != KindElement || prev.Tag != next.Tag {
		replace(prev, next, gen, patches)
		return
	}

	next.HID = prev.HID
	diffProps(prev, next, patches)
	diffChildren(prev, next, gen, patches)
}

// replace swaps prev for next. Only elements can be targeted by HID.
func replace(prev, next *VNode, gen *HIDGenerator, patches *[]Patch) {
	if prev.HID == "" {
		return
	}
	AssignHIDs(next, gen)
	*patches = append(*patches, Patch{
		Op:   PatchReplaceNode,
		HID:  prev.HID,
		Node: next,
	})
}

// diffChildren compares child lists positionally. An element whose children
// are all text gets a single SetText with the concatenated content, because
// the browser merges adjacent text nodes. Any other structural change
// replaces the parent.
func diffChildren(prev, next *VNode, gen *HIDGenerator, patches *[]Patch) {
	if allText(prev.Children) && allText(next.Children) {
		if a, b := prev.TextContent(), next.TextContent(); a != b {
			*patches = append(*patches, Patch{
				Op:    PatchSetText,
				HID:   prev.HID,
				Value: b,
			})
		}
		return
	}

	if !sameShape(prev.Children, next.Children) {
		next.HID = ""
		replace(prev, next, gen, patches)
		return
	}

	for i := range prev.Children {
		diff(prev.Children[i], next.Children[i], gen, patches)
	}
}

// sameShape reports whether two child lists line up one-to-one with equal
// text and raw content, so element children can be diffed in place.
func sameShape(prev, next []*VNode) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		p, n := prev[i], next[i]
		if p.Kind != n.Kind {
			return false
		}
		if (p.Kind == KindText || p.Kind == KindRaw) && p.Text != n.Text {
			return false
		}
	}
	return true
}

func allText(children []*VNode) bool {
	if len(children) == 0 {
		return false
	}
	for _, c := range children {
		if c.Kind != KindText {
			return false
		}
	}
	return true
}

// diffProps compares and patches attributes.
func diffProps(prev, next *VNode, patches *[]Patch) {
	for key, prevVal := range prev.Props {
		if isEventHandler(key) {
			continue
		}

		nextVal, exists := next.Props[key]
		if !exists {
			*patches = append(*patches, Patch{
				Op:  PatchRemoveAttr,
				HID: prev.HID,
				Key: key,
			})
		} else if !propsEqual(prevVal, nextVal) {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				HID:   prev.HID,
				Key:   key,
				Value: propToString(nextVal),
			})
		}
	}

	for key, nextVal := range next.Props {
		if isEventHandler(key) {
			continue
		}
		if _, exists := prev.Props[key]; !exists {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				HID:   prev.HID,
				Key:   key,
				Value: propToString(nextVal),
			})
		}
	}
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to a string for the patch.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
