package expand

import (
	"errors"
	"testing"

	"github.com/npillmayer/contentmodel/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextAndSeq(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.expand")
	defer teardown()
	//
	ev := NewEvaluator()
	out, err := ev.Run(Seq(Text("<p>"), Textf("%d items", 3), Seq(), Text("</p>")))
	require.NoError(t, err)
	assert.Equal(t, "<p>3 items</p>", out)
	out, err = ev.Run(Empty)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestOutputInDeclarationOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.expand")
	defer teardown()
	//
	var completed []string
	track := func(name string, ticks int) Expr {
		return Defer(Delay(ticks, Text(name)), func(s string) (Expr, error) {
			completed = append(completed, s)
			return Text(s), nil
		})
	}
	e := Seq(track("X", 3), track("Y", 5), track("Z", 0))
	out, err := NewEvaluator().Run(e)
	require.NoError(t, err)
	assert.Equal(t, "XYZ", out)
	assert.Equal(t, []string{"Z", "X", "Y"}, completed)
}

func TestPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.expand")
	defer teardown()
	//
	var positions []tree.Marker
	probe := Dynamic(func(env *Env) Expr {
		positions = append(positions, env.Position())
		return Text(env.Position().String())
	})
	e := Seq(probe, Seq(probe, Delay(2, probe)), With("k", 1, probe))
	out, err := NewEvaluator().Run(e)
	require.NoError(t, err)
	assert.Equal(t, "01.01.12", out)
	require.Len(t, positions, 4)
	assert.True(t, positions[0].Less(positions[1]))
	//
	d := Defer(probe, func(s string) (Expr, error) { return Seq(Text(s+"|"), probe), nil })
	out, err = NewEvaluator().RunAt(d, tree.Marker{7})
	require.NoError(t, err)
	assert.Equal(t, "7.0|7.1.1", out)
}

func TestScopedState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.expand")
	defer teardown()
	//
	type key string
	show := Dynamic(func(env *Env) Expr {
		if v, ok := env.Lookup(key("color")); ok {
			return Text(v.(string))
		}
		return Text("none")
	})
	e := Seq(
		show, Text(","),
		With(key("color"), "red", Seq(show, Text(","), With(key("color"), "blue", show))),
		Text(","), show,
	)
	out, err := NewEvaluator().Run(e)
	require.NoError(t, err)
	assert.Equal(t, "none,red,blue,none", out)
}

func TestContinuationErrorAborts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.expand")
	defer teardown()
	//
	fatal := errors.New("misconfigured")
	reached := false
	e := Seq(
		Defer(Text("a"), func(string) (Expr, error) { return nil, fatal }),
		Delay(10, Dynamic(func(*Env) Expr { reached = true; return Empty })),
	)
	_, err := NewEvaluator().Run(e)
	assert.ErrorIs(t, err, fatal)
	assert.False(t, reached, "evaluation should stop at first error")
}

func TestStepLimit(t *testing.T) {
	ev := NewEvaluator()
	ev.MaxSteps = 5
	_, err := ev.Run(Delay(100, Text("late")))
	assert.ErrorIs(t, err, ErrStepLimit)
	ev.MaxSteps = 0
	out, err := ev.Run(Delay(100, Text("late")))
	require.NoError(t, err)
	assert.Equal(t, "late", out)
	assert.Equal(t, 101, ev.Steps())
}

func TestNilContinuationResult(t *testing.T) {
	out, err := NewEvaluator().Run(Seq(
		Defer(Text("dropped"), func(string) (Expr, error) { return nil, nil }),
		Dynamic(func(*Env) Expr { return nil }),
		Text("kept"),
	))
	require.NoError(t, err)
	assert.Equal(t, "kept", out)
}
