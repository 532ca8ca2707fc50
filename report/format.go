package report

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Formatter renders a violation into a fragment for inline placement.
// hint is empty unless the violation is the first one for its key chain.
type Formatter interface {
	Format(v Violation, hint string) string
}

// PlainFormatter renders violations as indented plain text.
type PlainFormatter struct{}

// Format is part of interface Formatter.
func (PlainFormatter) Format(v Violation, hint string) string {
	return layout(v, hint, plainStyle)
}

// CommentFormatter wraps the output of another formatter into a markup
// comment, so that reports placed inline do not change the document.
type CommentFormatter struct {
	Inner Formatter
}

// Format is part of interface Formatter.
func (f CommentFormatter) Format(v Violation, hint string) string {
	inner := f.Inner
	if inner == nil {
		inner = PlainFormatter{}
	}
	text := inner.Format(v, hint)
	text = strings.ReplaceAll(text, "--", "- -") // "--" must not occur in comments
	return "<!-- " + strings.TrimRight(text, "\n") + " -->\n"
}

// ColorFormatter renders violations as plain text with terminal colors.
type ColorFormatter struct {
	style style
}

// NewColorFormatter creates a color formatter. If enabled is false,
// output carries no escape sequences.
func NewColorFormatter(enabled bool) *ColorFormatter {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &ColorFormatter{style: style{
		severity: map[Severity]func(a ...interface{}) string{
			Debug:   mk(color.FgHiBlack),
			Info:    mk(color.FgCyan),
			Warning: mk(color.FgYellow, color.Bold),
			Error:   mk(color.FgRed, color.Bold),
		},
		tag:  mk(color.FgBlue, color.Bold),
		dim:  mk(color.FgHiBlack),
		hint: mk(color.FgGreen),
	}}
}

// Format is part of interface Formatter.
func (f *ColorFormatter) Format(v Violation, hint string) string {
	return layout(v, hint, f.style)
}

// TerminalFormatter returns a color formatter if out is a terminal and a
// plain formatter otherwise.
func TerminalFormatter(out *os.File) Formatter {
	if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return NewColorFormatter(true)
	}
	return PlainFormatter{}
}

// --- Layout ----------------------------------------------------------------

type style struct {
	severity map[Severity]func(a ...interface{}) string
	tag      func(a ...interface{}) string
	dim      func(a ...interface{}) string
	hint     func(a ...interface{}) string
}

var plainStyle = style{}

func (s style) apply(f func(a ...interface{}) string, text string) string {
	if f == nil {
		return text
	}
	return f(text)
}

// Expectations longer than maxInline are repeated as a grouped list.
const maxInline = 72

// layout renders
//
//	warning: <html> at main.go:12 [html-children]
//	  expected: head followed by body
//	  found: child #1: <body> is not head
//	  offender: <body> at main.go:14
//	  see: https://...
//	  hint: ...
func layout(v Violation, hint string, s style) string {
	var b strings.Builder
	b.WriteString(s.apply(s.severity[v.Severity], v.Severity.String()+":"))
	b.WriteString(" ")
	b.WriteString(s.apply(s.tag, "<"+v.Tag+">"))
	if v.Location != "" {
		b.WriteString(" at " + v.Location)
	}
	if v.Rule != "" {
		b.WriteString(s.apply(s.dim, " ["+v.Rule+"]"))
	}
	b.WriteString("\n")
	b.WriteString("  expected: " + v.Expected + "\n")
	if len(v.Expected) > maxInline && strings.Contains(v.Rendered, "\n") {
		for _, line := range strings.Split(v.Rendered, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	if v.Note != "" {
		b.WriteString("  found: " + v.Note + "\n")
	}
	if v.Offender != nil {
		b.WriteString("  offender: " + v.Offender.String() + "\n")
	}
	if v.Ref != "" {
		b.WriteString(s.apply(s.dim, "  see: "+v.Ref) + "\n")
	}
	if hint != "" {
		b.WriteString(s.apply(s.hint, "  hint: "+hint) + "\n")
	}
	return b.String()
}
