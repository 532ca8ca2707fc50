package report

import (
	"errors"
	"fmt"
	"strings"
)

// Severity is the level at which a violation is reported.
type Severity uint8

// Severities, from quiet to loud.
const (
	Off Severity = iota
	Debug
	Info
	Warning
	Error
)

var severityNames = [...]string{"off", "debug", "info", "warning", "error"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", s)
}

// Errors of severity resolution.
var (
	ErrLevelUnset   = errors.New("no severity configured")
	ErrInvalidLevel = errors.New("invalid severity")
)

// ParseSeverity converts a severity name (case-insensitive) to a Severity.
// "warn" and "none" are accepted as aliases.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off", "none":
		return Off, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Off, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// --- Key chains ------------------------------------------------------------

// KeyChain is an ordered list of configuration keys, least specific first.
type KeyChain []string

// ChainFor creates the key chain for a report about tag violating rule.
// Empty tag or rule names are left out of the chain.
func ChainFor(prefix, tag, rule string) KeyChain {
	base := "verify"
	if prefix != "" {
		base = prefix + ".verify"
	}
	chain := KeyChain{base}
	if tag != "" {
		chain = append(chain, base+".tag."+tag)
	}
	if rule != "" {
		chain = append(chain, base+".rule."+rule)
	}
	return chain
}

// MostSpecific returns the last key of the chain.
func (kc KeyChain) MostSpecific() string {
	if len(kc) == 0 {
		return ""
	}
	return kc[len(kc)-1]
}

func (kc KeyChain) String() string {
	return strings.Join(kc, " < ")
}
