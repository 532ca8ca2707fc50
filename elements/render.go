package elements

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Attrs are the attributes of an element. An attribute with an empty value
// is rendered by its name only.
type Attrs map[string]string

// startTag renders tag with its attributes in name order.
func startTag(tag string, attrs Attrs) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		if v := attrs[k]; v != "" {
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(v))
			b.WriteString(`"`)
		}
	}
	b.WriteString(">")
	return b.String()
}

func endTag(tag string) string {
	return "</" + tag + ">"
}
