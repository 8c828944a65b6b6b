package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewRegistered(t *testing.T) {
	for _, code := range Codes() {
		e := New(code)
		if e.Code != code || e.Message == "" || e.Category == "" {
			t.Errorf("New(%q) = %+v", code, e)
		}
	}
	if got := New("E999"); got.Message != "Unknown error" {
		t.Errorf("New(E999).Message = %q", got.Message)
	}
}

func TestErrorStringAndUnwrap(t *testing.T) {
	cause := stderrors.New("address in use")
	err := New("E005").Wrap(cause)

	if got := err.Error(); got != "E005: Server failed to listen: address in use" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestFromErrorAndCode(t *testing.T) {
	coded := New("E002")
	wrapped := fmt.Errorf("validate: %w", coded)

	if FromError(wrapped, "E003") != coded {
		t.Error("FromError should return the existing *Error")
	}
	if got := FromError(stderrors.New("x"), "E003").Code; got != "E003" {
		t.Errorf("FromError code = %q, want E003", got)
	}
	if FromError(nil, "E003") != nil {
		t.Error("FromError(nil) should be nil")
	}
	if Code(wrapped) != "E002" || Code(stderrors.New("plain")) != "" {
		t.Error("Code did not walk the chain")
	}
}

func TestFormatPlain(t *testing.T) {
	err := New("E003").WithSuggestion("Set server.address.")
	out := err.Format(false)

	if strings.Contains(out, "\033[") {
		t.Error("plain format contains ANSI codes")
	}
	for _, want := range []string{"ERROR E003: Invalid configuration", "Hint: Set server.address."} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if colored := err.Format(true); !strings.Contains(colored, colorRed) {
		t.Error("colored format has no ANSI codes")
	}
}

func TestFprintNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, New("E004"))
	if strings.Contains(buf.String(), "\033[") || !strings.Contains(buf.String(), "E004") {
		t.Errorf("Fprint(buffer) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(plain) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}
