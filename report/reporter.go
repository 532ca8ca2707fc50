package report

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko"
)

// DefaultPrefix is the configuration key prefix used unless overridden
// with WithPrefix.
const DefaultPrefix = "contentmodel"

// Reporter resolves severities and emits reports. It collects every
// report it emits, in emission order.
//
// A Reporter is meant to be used by a single evaluation pass.
type Reporter struct {
	conf      schuko.Configuration
	prefix    string
	explained *Explained
	format    Formatter
	reports   []Violation
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithPrefix sets the configuration key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Reporter) { r.prefix = prefix }
}

// WithExplained shares a set of explained key chains.
func WithExplained(e *Explained) Option {
	return func(r *Reporter) { r.explained = e }
}

// WithFormatter sets the formatter for inline fragments.
func WithFormatter(f Formatter) Option {
	return func(r *Reporter) { r.format = f }
}

// New creates a reporter resolving severities from conf, which may be nil.
// Without options, a reporter uses DefaultPrefix, a fresh Explained set
// and formats fragments as markup comments.
func New(conf schuko.Configuration, opts ...Option) *Reporter {
	r := &Reporter{
		conf:   conf,
		prefix: DefaultPrefix,
		format: CommentFormatter{Inner: PlainFormatter{}},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.explained == nil {
		r.explained = NewExplained()
	}
	return r
}

// Chain returns the key chain for a report about tag violating rule.
func (r *Reporter) Chain(tag, rule string) KeyChain {
	return ChainFor(r.prefix, tag, rule)
}

// Resolve finds the severity for chain. The most specific key which is set
// wins. If no key is set, Resolve returns ErrLevelUnset; if the winning
// value is not a severity name, ErrInvalidLevel.
func (r *Reporter) Resolve(chain KeyChain) (Severity, error) {
	if r.conf == nil {
		return Off, fmt.Errorf("%w: no configuration for %s", ErrLevelUnset, chain)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		key := chain[i]
		if !r.conf.IsSet(key) {
			continue
		}
		sev, err := ParseSeverity(r.conf.GetString(key))
		if err != nil {
			return Off, fmt.Errorf("key %s: %w", key, err)
		}
		return sev, nil
	}
	return Off, fmt.Errorf("%w for %s", ErrLevelUnset, chain)
}

// Report emits v. Misconfiguration is traced as an error and v is
// reported at Warning. Report returns the formatted fragment, which is
// empty for severity Off.
func (r *Reporter) Report(v Violation) string {
	chain := r.Chain(v.Tag, v.Rule)
	sev, err := r.Resolve(chain)
	if err != nil {
		tracer().Errorf("cannot resolve severity, reporting as %s: %v", Warning, err)
		sev = Warning
	}
	return r.emit(v, chain, sev)
}

// ReportStrict emits v like Report, but treats misconfiguration as fatal.
func (r *Reporter) ReportStrict(v Violation) (string, error) {
	chain := r.Chain(v.Tag, v.Rule)
	sev, err := r.Resolve(chain)
	if err != nil {
		return "", fmt.Errorf("reporting <%s>: %w", v.Tag, err)
	}
	return r.emit(v, chain, sev), nil
}

// Violations returns the reports emitted so far, including those at
// severity Off.
func (r *Reporter) Violations() []Violation {
	vs := make([]Violation, len(r.reports))
	copy(vs, r.reports)
	return vs
}

// Last returns the most recent report.
func (r *Reporter) Last() (Violation, bool) {
	if len(r.reports) == 0 {
		return Violation{}, false
	}
	return r.reports[len(r.reports)-1], true
}

func (r *Reporter) emit(v Violation, chain KeyChain, sev Severity) string {
	v.Severity, v.Chain = sev, chain
	r.reports = append(r.reports, v)
	if sev == Off {
		return ""
	}
	hint := ""
	if r.explained.First(chain) {
		hint = Hint(chain)
	}
	trace(sev, v)
	return r.format.Format(v, hint)
}

// Hint tells how to change the severity of reports for chain.
func Hint(chain KeyChain) string {
	return fmt.Sprintf("set %s to one of %s to change how this is reported",
		strings.Join(chain, " or "), strings.Join(severityNames[:], ", "))
}

// trace maps severities onto the levels of the tracer. Warnings and
// errors both go to the error level.
func trace(sev Severity, v Violation) {
	t := tracer()
	switch sev {
	case Debug:
		t.Debugf("%s", v)
	case Info:
		t.Infof("%s", v)
	case Warning, Error:
		t.Errorf("%s: %s", sev, v)
	}
}
