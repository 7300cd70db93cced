// Package handoff converts an initialized payment session into the
// auto-submitting form document that carries the buyer to the processor.
package handoff

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
)

var (
	ErrTargetURLRequired = errors.New("handoff: target url is required")
)

// Field is one hidden form field. Value is the exact string received from
// the payment collaborator; the processor verifies a signature over it, so
// it must never be reformatted.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Redirect is a rendered payment handoff: the target URL, the ordered field
// set, and the self-submitting HTML document.
type Redirect struct {
	URL    string  `json:"url"`
	Fields []Field `json:"fields"`
	HTML   string  `json:"html"`
}

// Build renders the handoff form. Fields are emitted in name order so the
// document is deterministic; values pass through byte-for-byte, with HTML
// attribute escaping only (the browser decodes entities before submitting,
// so the posted value is unchanged).
func Build(targetURL string, fields map[string]string) (*Redirect, error) {
	if strings.TrimSpace(targetURL) == "" {
		return nil, ErrTargetURLRequired
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	ordered := make([]Field, 0, len(names))
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Redirecting to payment…</title></head>\n<body onload=\"document.forms[0].submit()\">\n")
	fmt.Fprintf(&b, "<form method=\"POST\" action=\"%s\">\n", html.EscapeString(targetURL))
	for _, name := range names {
		value := fields[name]
		ordered = append(ordered, Field{Name: name, Value: value})
		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"%s\" value=\"%s\">\n",
			html.EscapeString(name), html.EscapeString(value))
	}
	b.WriteString("<noscript><button type=\"submit\">Continue to payment</button></noscript>\n</form>\n</body>\n</html>\n")

	return &Redirect{URL: targetURL, Fields: ordered, HTML: b.String()}, nil
}
