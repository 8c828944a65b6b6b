package protocol

import "fmt"

// PatchOp names a DOM operation.
type PatchOp string

const (
	OpSetText     PatchOp = "text"
	OpSetAttr     PatchOp = "attr"
	OpRemoveAttr  PatchOp = "rmattr"
	OpReplaceNode PatchOp = "replace"
)

// Patch is one DOM operation addressed by hydration ID.
type Patch struct {
	Op    PatchOp `json:"op"`
	HID   string  `json:"hid"`
	Key   string  `json:"key,omitempty"`
	Value string  `json:"value,omitempty"`
	HTML  string  `json:"html,omitempty"`
}

// Validate checks the fields required by the patch operation.
func (p *Patch) Validate() error {
	if p.HID == "" {
		return fmt.Errorf("%w: hid", ErrMissingField)
	}
	switch p.Op {
	case OpSetText:
	case OpSetAttr, OpRemoveAttr:
		if p.Key == "" {
			return fmt.Errorf("%w: key", ErrMissingField)
		}
	case OpReplaceNode:
		if p.HTML == "" {
			return fmt.Errorf("%w: html", ErrMissingField)
		}
	default:
		return fmt.Errorf("protocol: unknown patch op %q", p.Op)
	}
	return nil
}
