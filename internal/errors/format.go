package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

type palette bool

func (p palette) wrap(code, text string) string {
	if !p {
		return text
	}
	return code + text + colorReset
}

// Format returns the error formatted for a terminal, with ANSI colors when
// color is true.
func (e *Error) Format(color bool) string {
	p := palette(color)
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(p.wrap(colorRed+colorBold, "ERROR "+e.Code+": "))
	} else {
		b.WriteString(p.wrap(colorRed+colorBold, "ERROR: "))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(p.wrap(colorGray, "Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(p.wrap(colorCyan, "Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	return b.String()
}

// FormatCompact returns a single-line form.
func (e *Error) FormatCompact() string {
	return e.Error()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// IsTerminal reports whether w is a terminal that should receive colors.
// NO_COLOR disables colors everywhere.
func IsTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Fprint writes err to w. Coded errors get the full format; colors are used
// only when w is a terminal.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	color := IsTerminal(w)
	var e *Error
	if stderrors.As(err, &e) {
		fmt.Fprint(w, e.Format(color))
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", palette(color).wrap(colorRed+colorBold, "ERROR:"), err.Error())
}

// Print writes err to stderr.
func Print(err error) {
	Fprint(os.Stderr, err)
}
