package expand

import (
	"errors"
	"fmt"

	"github.com/npillmayer/contentmodel/tree"
)

// ErrUnresolved is returned by Run if the job queue drains before the
// expression is resolved.
var ErrUnresolved = errors.New("expression did not resolve")

// ErrStepLimit is returned by Run if an evaluation exceeds its step limit.
var ErrStepLimit = errors.New("evaluation exceeds step limit")

type job func() error

// Evaluator expands expressions on a single logical thread. Jobs are
// processed in FIFO order.
//
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	queue    []job
	steps    int
	MaxSteps int // 0 for unlimited
}

// NewEvaluator creates an evaluator without a step limit.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Run evaluates e at the root position and returns its text. Evaluation
// stops at the first error returned by a continuation.
func (ev *Evaluator) Run(e Expr) (string, error) {
	return ev.RunAt(e, tree.Marker{})
}

// RunAt evaluates e at position pos.
func (ev *Evaluator) RunAt(e Expr, pos tree.Marker) (string, error) {
	var out string
	resolved := false
	ev.queue, ev.steps = ev.queue[:0], 0
	e.eval(ev, &Env{pos: pos.Clone()}, func(s string) error {
		out, resolved = s, true
		return nil
	})
	for len(ev.queue) > 0 {
		j := ev.queue[0]
		ev.queue[0] = nil
		ev.queue = ev.queue[1:]
		ev.steps++
		if ev.MaxSteps > 0 && ev.steps > ev.MaxSteps {
			ev.queue = nil
			return "", fmt.Errorf("%w (%d)", ErrStepLimit, ev.MaxSteps)
		}
		if err := j(); err != nil {
			tracer().Errorf("evaluation aborted after %d steps: %v", ev.steps, err)
			ev.queue = nil
			return "", err
		}
	}
	if !resolved {
		return "", ErrUnresolved
	}
	tracer().Debugf("evaluation finished after %d steps", ev.steps)
	return out, nil
}

// Steps returns the number of jobs processed by the latest run.
func (ev *Evaluator) Steps() int {
	return ev.steps
}

func (ev *Evaluator) schedule(j job) {
	ev.queue = append(ev.queue, j)
}
