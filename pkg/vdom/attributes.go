package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Href sets the href attribute.
func Href(href string) Attr { return attr("href", href) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// CrossOrigin sets the crossorigin attribute.
func CrossOrigin(value string) Attr { return attr("crossorigin", value) }

// Src sets the src attribute.
func Src(src string) Attr { return attr("src", src) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Defer sets the boolean defer attribute.
func Defer() Attr { return attr("defer", true) }

// Disabled sets the boolean disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }
