// Package composer renders reply templates behind the shared greeting.
//
// Template bodies reference bindings as {{key}} for plain text and {{*key}}
// for an emphasised value wrapped in <b></b>. An unbound key renders empty.
// Replies are HTML fragments: bound values and the display name are
// HTML-escaped, template bodies are not.
package composer

import (
	"html"
	"strings"
)

// BindingName carries the caller's display name into every template.
const BindingName = "name"

// FallbackName greets a caller whose display name could not be resolved.
const FallbackName = "there"

type Bindings map[string]string

type Composer struct {
	templates map[string]string
}

// New returns a Composer over the built-in templates. Extra entries override
// or add templates by key.
func New(extra map[string]string) *Composer {
	templates := builtinTemplates()
	for k, v := range extra {
		templates[k] = v
	}
	return &Composer{templates: templates}
}

// Has reports whether key names a known template.
func (c *Composer) Has(key string) bool {
	_, ok := c.templates[key]
	return ok
}

// Compose renders key with bindings behind "Hello <name>, ". An unknown key
// renders the generic fallback. The result is never empty.
func (c *Composer) Compose(key string, bindings Bindings) string {
	body, ok := c.templates[key]
	if !ok {
		body = c.templates[KeyFallback]
	}

	var sb strings.Builder
	sb.WriteString(Greeting(bindings[BindingName]))
	render(&sb, body, bindings)
	return sb.String()
}

// Greeting is the prefix shared by every reply; name is escaped.
func Greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = FallbackName
	}
	return "Hello " + html.EscapeString(name) + ", "
}

// Emphasize escapes value and wraps it in the bold marker.
func Emphasize(value string) string {
	return "<b>" + html.EscapeString(value) + "</b>"
}

func render(sb *strings.Builder, body string, bindings Bindings) {
	for {
		start := strings.Index(body, "{{")
		if start < 0 {
			sb.WriteString(body)
			return
		}
		end := strings.Index(body[start+2:], "}}")
		if end < 0 {
			sb.WriteString(body)
			return
		}
		end += start + 2

		sb.WriteString(body[:start])
		key := strings.TrimSpace(body[start+2 : end])
		if strings.HasPrefix(key, "*") {
			sb.WriteString(Emphasize(bindings[strings.TrimSpace(key[1:])]))
		} else {
			sb.WriteString(html.EscapeString(bindings[key]))
		}
		body = body[end+2:]
	}
}
