package render

import "strings"

// textEscaper covers text nodes, which carry user-visible copy such as the
// counter label and page headings.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrEscaper additionally encodes line breaks and tabs. Every attribute the
// renderer writes goes through it: element attributes, data-hid, the html
// lang and the client script's src and data-socket.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

func escapeHTML(s string) string { return textEscaper.Replace(s) }

// escapeAttr escapes a value written inside double quotes.
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
