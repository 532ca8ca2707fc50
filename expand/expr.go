package expand

import (
	"fmt"
	"strings"

	"github.com/npillmayer/contentmodel/tree"
)

// Expr is an unevaluated expression. Expressions are immutable and may be
// evaluated any number of times.
type Expr interface {
	eval(ev *Evaluator, env *Env, k continuation)
	String() string
}

// continuation receives the text of a resolved expression.
type continuation func(string) error

// Continuation is the signature of Defer continuations. It receives the
// text of the resolved expression and returns the expression to continue
// with.
type Continuation func(text string) (Expr, error)

// Text is a literal.
func Text(s string) Expr {
	return text(s)
}

// Textf is a formatted literal.
func Textf(format string, args ...interface{}) Expr {
	return text(fmt.Sprintf(format, args...))
}

// Empty is the empty literal.
var Empty Expr = text("")

// Seq evaluates a list of expressions and concatenates their texts in
// declaration order. Item i is evaluated at position p.i, if p is the
// position of the sequence.
func Seq(items ...Expr) Expr {
	return seq(items)
}

// Delay evaluates e after the evaluator has processed ticks other jobs.
// It simulates nested asynchronous work which completes later than its
// siblings.
func Delay(ticks int, e Expr) Expr {
	return delay{ticks: ticks, e: e}
}

// Defer evaluates e and, once e is fully resolved, calls k with the
// resulting text. The expression returned by k is evaluated in place of
// the deferred expression. e is evaluated at position p.0, the
// continuation's expression at p.1.
func Defer(e Expr, k Continuation) Expr {
	return deferred{e: e, k: k}
}

// With evaluates e in a scope where key is bound to value.
func With(key, value interface{}, e Expr) Expr {
	return with{key: key, value: value, e: e}
}

// Dynamic calls f with the current environment when evaluation reaches
// it, and evaluates the expression returned by f.
func Dynamic(f func(*Env) Expr) Expr {
	return dynamic(f)
}

// --- Expression types ------------------------------------------------------

type text string

func (t text) eval(ev *Evaluator, env *Env, k continuation) {
	ev.schedule(func() error { return k(string(t)) })
}

func (t text) String() string {
	return fmt.Sprintf("%q", string(t))
}

type seq []Expr

func (s seq) eval(ev *Evaluator, env *Env, k continuation) {
	if len(s) == 0 {
		ev.schedule(func() error { return k("") })
		return
	}
	results := make([]string, len(s))
	pending := len(s)
	for i, item := range s {
		i := i
		item.eval(ev, env.at(env.pos.Child(i)), func(out string) error {
			results[i] = out
			pending--
			if pending == 0 {
				return k(strings.Join(results, ""))
			}
			return nil
		})
	}
}

func (s seq) String() string {
	items := make([]string, len(s))
	for i, item := range s {
		items[i] = item.String()
	}
	return "seq(" + strings.Join(items, ", ") + ")"
}

type delay struct {
	ticks int
	e     Expr
}

func (d delay) eval(ev *Evaluator, env *Env, k continuation) {
	if d.ticks <= 0 {
		d.e.eval(ev, env, k)
		return
	}
	ev.schedule(func() error {
		delay{ticks: d.ticks - 1, e: d.e}.eval(ev, env, k)
		return nil
	})
}

func (d delay) String() string {
	return fmt.Sprintf("delay(%d, %s)", d.ticks, d.e)
}

type deferred struct {
	e Expr
	k Continuation
}

func (d deferred) eval(ev *Evaluator, env *Env, k continuation) {
	d.e.eval(ev, env.at(env.pos.Child(0)), func(out string) error {
		next, err := d.k(out)
		if err != nil {
			return err
		}
		if next == nil {
			return k("")
		}
		next.eval(ev, env.at(env.pos.Child(1)), k)
		return nil
	})
}

func (d deferred) String() string {
	return fmt.Sprintf("defer(%s)", d.e)
}

type with struct {
	key, value interface{}
	e          Expr
}

func (w with) eval(ev *Evaluator, env *Env, k continuation) {
	w.e.eval(ev, env.bind(w.key, w.value), k)
}

func (w with) String() string {
	return fmt.Sprintf("with(%v=%v, %s)", w.key, w.value, w.e)
}

type dynamic func(*Env) Expr

func (f dynamic) eval(ev *Evaluator, env *Env, k continuation) {
	ev.schedule(func() error {
		e := f(env)
		if e == nil {
			return k("")
		}
		e.eval(ev, env, k)
		return nil
	})
}

func (f dynamic) String() string {
	return "dynamic(...)"
}

// --- Environments ----------------------------------------------------------

// Env is the environment of an expression under evaluation. Envs are
// immutable; nested expressions get derived environments.
type Env struct {
	pos   tree.Marker
	scope *scope
}

// scope is a linked list of bindings, innermost first.
type scope struct {
	key, value interface{}
	next       *scope
}

// Position returns the evaluation-order marker of the expression.
// Markers of sibling expressions compare in declaration order.
func (env *Env) Position() tree.Marker {
	return env.pos.Clone()
}

// Lookup finds the innermost binding for key.
func (env *Env) Lookup(key interface{}) (interface{}, bool) {
	for s := env.scope; s != nil; s = s.next {
		if s.key == key {
			return s.value, true
		}
	}
	return nil, false
}

func (env *Env) at(pos tree.Marker) *Env {
	return &Env{pos: pos, scope: env.scope}
}

func (env *Env) bind(key, value interface{}) *Env {
	return &Env{pos: env.pos, scope: &scope{key: key, value: value, next: env.scope}}
}
