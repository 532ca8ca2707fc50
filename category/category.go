package category

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html/atom"
)

// Category is an opaque token naming a content category or a single tag.
// Categories compare by identity, not by name.
type Category struct {
	name string
	ref  string // specification reference, usually a URL
	tag  string // non-empty for single-tag categories
}

// New creates a fresh category. Every call returns a distinct category,
// even for identical names.
func New(name, ref string) *Category {
	return &Category{name: name, ref: ref}
}

// Name returns the human-readable name of a category.
func (c *Category) Name() string {
	if c == nil {
		return "<no category>"
	}
	return c.name
}

// Ref returns the specification reference of a category.
func (c *Category) Ref() string {
	if c == nil {
		return ""
	}
	return c.ref
}

// Tag returns the tag name for single-tag categories and "" otherwise.
func (c *Category) Tag() string {
	if c == nil {
		return ""
	}
	return c.tag
}

// Describe returns the category name together with its citation link.
func (c *Category) Describe() string {
	if c == nil {
		return "<no category>"
	}
	if c.ref == "" {
		return c.name
	}
	return fmt.Sprintf("%s (%s)", c.name, c.ref)
}

func (c *Category) String() string {
	return c.Name()
}

// Equal is true if a and b are the same category.
func Equal(a, b *Category) bool {
	return a == b
}

// --- Sets ------------------------------------------------------------------

// Set is an immutable set of categories. The zero value is the empty set.
type Set struct {
	members []*Category
}

// SetOf creates a set from a list of categories. Duplicates and nil
// entries are dropped.
func SetOf(cats ...*Category) Set {
	var s Set
	for _, c := range cats {
		if c != nil && !s.Has(c) {
			s.members = append(s.members, c)
		}
	}
	return s
}

// Has checks membership by identity.
func (s Set) Has(c *Category) bool {
	for _, m := range s.members {
		if m == c {
			return true
		}
	}
	return false
}

// Len returns the number of categories in s.
func (s Set) Len() int {
	return len(s.members)
}

// Union returns a new set containing the members of s and other.
func (s Set) Union(other Set) Set {
	u := Set{members: make([]*Category, 0, len(s.members)+len(other.members))}
	u.members = append(u.members, s.members...)
	for _, c := range other.members {
		if !u.Has(c) {
			u.members = append(u.members, c)
		}
	}
	return u
}

// With returns a new set with additional members.
func (s Set) With(cats ...*Category) Set {
	return s.Union(SetOf(cats...))
}

// Members returns a copy of the members of s, in insertion order.
func (s Set) Members() []*Category {
	m := make([]*Category, len(s.members))
	copy(m, s.members)
	return m
}

// Names returns the sorted display names of the members.
func (s Set) Names() []string {
	names := make([]string, len(s.members))
	for i, c := range s.members {
		names[i] = c.Name()
	}
	sort.Strings(names)
	return names
}

func (s Set) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

// --- Registry --------------------------------------------------------------

// Registry interns single-tag categories. Known HTML tags are keyed by
// their atom, others by their lower-cased name.
//
// A Registry is safe for concurrent use.
type Registry struct {
	sync.RWMutex
	refBase string
	atoms   map[atom.Atom]*Category
	custom  map[string]*Category
}

// NewRegistry creates an empty registry. refBase is used to derive
// specification references for tag categories (tag name is appended as
// a fragment-style suffix).
func NewRegistry(refBase string) *Registry {
	return &Registry{
		refBase: refBase,
		atoms:   make(map[atom.Atom]*Category),
		custom:  make(map[string]*Category),
	}
}

// ForTag returns the single-tag category for tag, creating it on first use.
// Subsequent calls for the same tag return the identical category.
func (r *Registry) ForTag(tag string) *Category {
	tag = strings.ToLower(tag)
	a := atom.Lookup([]byte(tag))
	r.RLock()
	c := r.lookup(a, tag)
	r.RUnlock()
	if c != nil {
		return c
	}
	r.Lock()
	defer r.Unlock()
	if c = r.lookup(a, tag); c != nil { // re-check under write lock
		return c
	}
	c = &Category{name: tag, tag: tag}
	if r.refBase != "" {
		c.ref = r.refBase + "#the-" + tag + "-element"
	}
	if a != 0 {
		r.atoms[a] = c
	} else {
		r.custom[tag] = c
	}
	tracer().Debugf("registered tag category %q", tag)
	return c
}

func (r *Registry) lookup(a atom.Atom, tag string) *Category {
	if a != 0 {
		return r.atoms[a]
	}
	return r.custom[tag]
}

// Tags returns the sorted list of tags with an interned category.
func (r *Registry) Tags() []string {
	r.RLock()
	defer r.RUnlock()
	tags := make([]string, 0, len(r.atoms)+len(r.custom))
	for a := range r.atoms {
		tags = append(tags, a.String())
	}
	for t := range r.custom {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
