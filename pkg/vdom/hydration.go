package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs for elements.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Current returns the current counter value without incrementing.
func (g *HIDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// AssignHIDs walks an expanded tree in pre-order and assigns an HID to every
// element that does not have one yet.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	if node == nil {
		return
	}
	if node.Kind == KindElement && node.HID == "" {
		node.HID = gen.Next()
	}
	for _, child := range node.Children {
		AssignHIDs(child, gen)
	}
}

// CollectHandlers returns the event handlers of an expanded tree keyed by
// HID and event name ("h3" → "onclick" → handler).
func CollectHandlers(node *VNode) map[string]map[string]func() {
	handlers := make(map[string]map[string]func())
	collectHandlers(node, handlers)
	return handlers
}

func collectHandlers(node *VNode, out map[string]map[string]func()) {
	if node == nil {
		return
	}
	if node.HID != "" && node.IsInteractive() {
		for key, value := range node.Props {
			fn, ok := value.(func())
			if !ok || !isEventHandler(key) {
				continue
			}
			if out[node.HID] == nil {
				out[node.HID] = make(map[string]func())
			}
			out[node.HID][key] = fn
		}
	}
	for _, child := range node.Children {
		collectHandlers(child, out)
	}
}

// FindByHID returns the element with the given HID, or nil.
func FindByHID(node *VNode, hid string) *VNode {
	if node == nil {
		return nil
	}
	if node.HID == hid {
		return node
	}
	for _, child := range node.Children {
		if found := FindByHID(child, hid); found != nil {
			return found
		}
	}
	return nil
}
