package render

import (
	"io"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc("text/css", css.Minify)
	return m
}

// MinifyHTML copies a complete HTML document from r to w, minified.
func MinifyHTML(w io.Writer, r io.Reader) error {
	return minifier.Minify("text/html", w, r)
}

// MinifyCSS copies a stylesheet from r to w, minified.
func MinifyCSS(w io.Writer, r io.Reader) error {
	return minifier.Minify("text/css", w, r)
}
