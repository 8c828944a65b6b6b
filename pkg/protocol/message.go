package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// MessageType names a message on the wire.
type MessageType string

const (
	TypeHello     MessageType = "hello"
	TypeEvent     MessageType = "event"
	TypeNavigate  MessageType = "navigate"
	TypePatches   MessageType = "patches"
	TypeReloadCSS MessageType = "reload-css"
	TypeError     MessageType = "error"
)

// MaxMessageSize bounds a single inbound message.
const MaxMessageSize = 64 * 1024

var (
	ErrUnknownType   = errors.New("protocol: unknown message type")
	ErrMissingField  = errors.New("protocol: missing required field")
	ErrMessageTooBig = errors.New("protocol: message exceeds size limit")
)

// Message is the single envelope for every message type. Fields not used by
// a type are omitted on the wire.
type Message struct {
	Type MessageType `json:"t"`

	// Seq orders events from one client. The server echoes the last
	// processed sequence number on patches.
	Seq uint64 `json:"seq,omitempty"`

	// event
	HID   string `json:"hid,omitempty"`
	Event string `json:"ev,omitempty"`

	// navigate
	Path string `json:"path,omitempty"`

	// hello
	Session string `json:"session,omitempty"`

	// patches
	Patches []Patch `json:"patches,omitempty"`

	// reload-css
	Href string `json:"href,omitempty"`

	// error
	Code    ErrorCode `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Validate checks that the fields required by the message type are set.
func (m *Message) Validate() error {
	switch m.Type {
	case TypeHello:
		if m.Session == "" {
			return fmt.Errorf("%w: session", ErrMissingField)
		}
	case TypeEvent:
		if m.HID == "" {
			return fmt.Errorf("%w: hid", ErrMissingField)
		}
		if m.Event == "" {
			return fmt.Errorf("%w: ev", ErrMissingField)
		}
	case TypeNavigate:
		if m.Path == "" {
			return fmt.Errorf("%w: path", ErrMissingField)
		}
	case TypePatches:
		for i := range m.Patches {
			if err := m.Patches[i].Validate(); err != nil {
				return fmt.Errorf("patch %d: %w", i, err)
			}
		}
	case TypeReloadCSS:
		if m.Href == "" {
			return fmt.Errorf("%w: href", ErrMissingField)
		}
	case TypeError:
		if m.Code == "" {
			return fmt.Errorf("%w: code", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	return nil
}

// Encode validates m and returns its JSON encoding.
func Encode(m *Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Decode parses and validates a single message.
func Decode(data []byte) (*Message, error) {
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooBig
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("protocol: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeFrom reads one message from r, bounded by MaxMessageSize.
func DecodeFrom(r io.Reader) (*Message, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxMessageSize+1))
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// NewHello builds the greeting sent once a live session is mounted.
func NewHello(sessionID string) *Message {
	return &Message{Type: TypeHello, Session: sessionID}
}

// NewEvent builds an event message.
func NewEvent(seq uint64, hid, event string) *Message {
	return &Message{Type: TypeEvent, Seq: seq, HID: hid, Event: event}
}

// NewNavigate builds a navigate message.
func NewNavigate(seq uint64, path string) *Message {
	return &Message{Type: TypeNavigate, Seq: seq, Path: path}
}

// NewPatches builds a patches message acknowledging seq.
func NewPatches(seq uint64, patches []Patch) *Message {
	return &Message{Type: TypePatches, Seq: seq, Patches: patches}
}

// NewReloadCSS builds a stylesheet reload message.
func NewReloadCSS(href string) *Message {
	return &Message{Type: TypeReloadCSS, Href: href}
}

// NewError builds an error message.
func NewError(code ErrorCode, msg string) *Message {
	return &Message{Type: TypeError, Code: code, Message: msg}
}
