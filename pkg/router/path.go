package router

import (
	"errors"
	"net/url"
	"strings"
)

// Path errors.
var (
	ErrInvalidPath     = errors.New("router: invalid path")
	ErrPathEscapesRoot = errors.New("router: path escapes root via ..")
)

// CleanPath normalizes a URL path: a leading slash is ensured, repeated
// slashes collapse, "." segments are dropped and ".." segments are resolved.
// A trailing slash is removed except for the root. The query string, if
// any, is discarded. Backslashes, NUL bytes, invalid percent escapes and
// ".." above the root are rejected.
func CleanPath(input string) (string, error) {
	path, _, _ := strings.Cut(input, "?")
	path, _, _ = strings.Cut(path, "#")
	if path == "" {
		return "/", nil
	}
	if strings.ContainsAny(path, "\\\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrInvalidPath
	}
	if strings.Contains(path, "%") {
		if _, err := url.PathUnescape(path); err != nil {
			return "", ErrInvalidPath
		}
	}

	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), nil
}

// splitPath returns the decoded segments of a clean path. The root has none.
func splitPath(clean string) ([]string, error) {
	trimmed := strings.TrimPrefix(clean, "/")
	if trimmed == "" {
		return nil, nil
	}
	raw := strings.Split(trimmed, "/")
	segs := make([]string, len(raw))
	for i, seg := range raw {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrInvalidPath
		}
		segs[i] = decoded
	}
	return segs, nil
}

// rawSegments splits path on "/" without cleaning or decoding. Empty
// segments are dropped.
func rawSegments(path string) []string {
	path, _, _ = strings.Cut(path, "?")
	path, _, _ = strings.Cut(path, "#")
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
