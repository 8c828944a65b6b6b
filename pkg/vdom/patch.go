package vdom

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchReplaceNode PatchOp = 0x07 // Replace node entirely
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchReplaceNode:
		return "ReplaceNode"
	default:
		return "Unknown"
	}
}

// Patch represents a single DOM operation to apply.
type Patch struct {
	Op    PatchOp // Operation type
	HID   string  // Target element's hydration ID
	Key   string  // Attribute key (for SetAttr/RemoveAttr)
	Value string  // New value
	Node  *VNode  // For ReplaceNode, with HIDs already assigned
}
