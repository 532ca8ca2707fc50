package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/npillmayer/schuko"
)

// Levels is a configuration holding severity levels by key. It implements
// schuko.Configuration and may be passed to New.
//
// Levels are usually loaded from YAML, where nested mappings are flattened
// into dotted keys:
//
//	contentmodel:
//	  verify: warning
//	  verify.tag.img: error
//	  verify.rule:
//	    ancestors: off
type Levels map[string]string

var _ schuko.Configuration = Levels{}

// DefaultLevels returns levels reporting every violation at Warning.
func DefaultLevels(prefix string) Levels {
	return Levels{ChainFor(prefix, "", "")[0]: Warning.String()}
}

// ParseLevels reads levels from YAML. Every value must be a severity name.
func ParseLevels(data []byte) (Levels, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("reading severity levels: %w", err)
	}
	levels := Levels{}
	if err := flatten("", raw, levels); err != nil {
		return nil, err
	}
	for _, key := range levels.Keys() {
		if _, err := ParseSeverity(levels[key]); err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
	}
	tracer().Debugf("read %d severity levels", len(levels))
	return levels, nil
}

// LoadLevels reads levels in YAML format from r.
func LoadLevels(r io.Reader) (Levels, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading severity levels: %w", err)
	}
	return ParseLevels(data)
}

func flatten(prefix string, node interface{}, into Levels) error {
	join := func(k interface{}) string {
		if prefix == "" {
			return fmt.Sprint(k)
		}
		return prefix + "." + fmt.Sprint(k)
	}
	switch n := node.(type) {
	case map[string]interface{}:
		for k, v := range n {
			if err := flatten(join(k), v, into); err != nil {
				return err
			}
		}
	case map[interface{}]interface{}:
		for k, v := range n {
			if err := flatten(join(k), v, into); err != nil {
				return err
			}
		}
	case nil:
		if prefix != "" {
			return fmt.Errorf("key %s: %w: empty value", prefix, ErrInvalidLevel)
		}
	case bool:
		if n { // YAML 1.1 reads "off" as false
			return fmt.Errorf("key %s: %w: %v", prefix, ErrInvalidLevel, n)
		}
		into[prefix] = Off.String()
	case string:
		into[prefix] = n
	default:
		return fmt.Errorf("key %s: %w: %v", prefix, ErrInvalidLevel, n)
	}
	return nil
}

// Set overrides the level for key.
func (l Levels) Set(key string, sev Severity) {
	l[key] = sev.String()
}

// Merge returns new levels with the entries of l, overridden by other.
func (l Levels) Merge(other Levels) Levels {
	m := make(Levels, len(l)+len(other))
	for k, v := range l {
		m[k] = v
	}
	for k, v := range other {
		m[k] = v
	}
	return m
}

// Keys returns the sorted keys of l.
func (l Levels) Keys() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InitDefaults is part of interface schuko.Configuration. It does nothing.
func (l Levels) InitDefaults() {}

// IsSet is part of interface schuko.Configuration.
func (l Levels) IsSet(key string) bool {
	_, ok := l[key]
	return ok
}

// GetString is part of interface schuko.Configuration.
func (l Levels) GetString(key string) string {
	return l[key]
}

// GetInt is part of interface schuko.Configuration. Levels hold no
// integers; GetInt returns the ordinal of a severity, or 0.
func (l Levels) GetInt(key string) int {
	sev, err := ParseSeverity(l[key])
	if err != nil {
		return 0
	}
	return int(sev)
}

// GetBool is part of interface schuko.Configuration. It is true for keys
// with a severity other than off.
func (l Levels) GetBool(key string) bool {
	sev, err := ParseSeverity(l[key])
	return err == nil && sev != Off
}

// IsInteractive is part of interface schuko.Configuration.
func (l Levels) IsInteractive() bool { return false }
