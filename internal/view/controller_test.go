package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type outcome struct {
	data string
	err  error
}

// gated returns a fetch whose result for each id is released by the test.
// The fetch ignores ctx so late results really arrive.
func gated(ids ...int) (FetchFunc[int, string], map[int]chan outcome, chan context.Context) {
	gates := make(map[int]chan outcome, len(ids))
	for _, id := range ids {
		gates[id] = make(chan outcome, 1)
	}
	started := make(chan context.Context, len(ids)*2)
	fetch := func(ctx context.Context, id int) (string, error) {
		started <- ctx
		o := <-gates[id]
		return o.data, o.err
	}
	return fetch, gates, started
}

type recorded struct {
	param int
	state State[string, int]
}

func newTestController(fetch FetchFunc[int, string], derives *atomic.Int32) (*Controller[int, string, int], chan recorded) {
	transitions := make(chan recorded, 32)
	c := New(Options[int, string, int]{
		Name:  "test",
		Fetch: fetch,
		Derive: func(s string) int {
			derives.Add(1)
			return len(s)
		},
		OnTransition: func(p int, s State[string, int]) { transitions <- recorded{p, s} },
	})
	return c, transitions
}

func next(t *testing.T, ch chan recorded) recorded {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transition")
		return recorded{}
	}
}

func TestController_StartsIdle(t *testing.T) {
	var derives atomic.Int32
	fetch, _, _ := gated()
	c, _ := newTestController(fetch, &derives)
	require.Equal(t, StatusIdle, c.State().Status)
	require.Nil(t, c.ViewModel())
	_, ok := c.Param()
	require.False(t, ok)
}

func TestController_SwitchToLatest_LateResultDiscarded(t *testing.T) {
	var derives atomic.Int32
	fetch, gates, started := gated(1, 2)
	c, transitions := newTestController(fetch, &derives)

	c.Navigate(1)
	require.Equal(t, StatusLoading, next(t, transitions).state.Status)
	ctxA := <-started
	c.Navigate(2)
	require.Equal(t, StatusLoading, next(t, transitions).state.Status)
	<-started

	require.ErrorIs(t, ctxA.Err(), context.Canceled, "superseded fetch must see cancellation")

	gates[2] <- outcome{data: "second"}
	r := next(t, transitions)
	require.Equal(t, 2, r.param)
	require.Equal(t, StatusSuccess, r.state.Status)

	gates[1] <- outcome{data: "first, but late"}
	c.Wait()

	st := c.State()
	require.Equal(t, StatusSuccess, st.Status)
	require.Equal(t, "second", st.Data)
	require.Len(t, transitions, 0)
	require.EqualValues(t, 1, derives.Load())
}

func TestController_SwitchToLatest_EarlyResultDiscarded(t *testing.T) {
	for _, early := range []outcome{{data: "early"}, {err: errors.New("boom")}} {
		var derives atomic.Int32
		fetch, gates, started := gated(1, 2)
		c, transitions := newTestController(fetch, &derives)

		c.Navigate(1)
		next(t, transitions)
		<-started
		c.Navigate(2)
		next(t, transitions)
		<-started

		gates[1] <- early
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, StatusLoading, c.State().Status)
		require.Len(t, transitions, 0)

		gates[2] <- outcome{err: errors.New("second failed")}
		r := next(t, transitions)
		require.Equal(t, StatusError, r.state.Status)
		require.EqualError(t, r.state.Err, "second failed")
		c.Wait()
		require.Zero(t, derives.Load())
	}
}

func TestController_ViewModelDerivedOnce(t *testing.T) {
	var derives atomic.Int32
	fetch, gates, _ := gated(1)
	c, transitions := newTestController(fetch, &derives)

	c.Navigate(1)
	next(t, transitions)
	gates[1] <- outcome{data: "hello"}
	next(t, transitions)

	first := c.ViewModel()
	second := c.ViewModel()
	require.NotNil(t, first)
	require.Same(t, first, second)
	require.Same(t, first, c.State().ViewModel)
	require.Equal(t, 5, *first)
	require.EqualValues(t, 1, derives.Load())
}

func TestController_ErrorKeepsCauseWithoutViewModel(t *testing.T) {
	var derives atomic.Int32
	cause := errors.New("not found")
	fetch, gates, _ := gated(999)
	c, transitions := newTestController(fetch, &derives)

	c.Navigate(999)
	next(t, transitions)
	gates[999] <- outcome{err: cause}
	r := next(t, transitions)

	require.Equal(t, StatusError, r.state.Status)
	require.ErrorIs(t, c.State().Err, cause)
	require.Nil(t, c.ViewModel())
	require.Zero(t, derives.Load())
}

func TestController_SameParamIsNoOp_RefreshRefetches(t *testing.T) {
	var derives atomic.Int32
	var calls atomic.Int32
	fetch := func(ctx context.Context, id int) (string, error) {
		calls.Add(1)
		return "v", nil
	}
	c, transitions := newTestController(fetch, &derives)

	c.Navigate(1)
	next(t, transitions)
	next(t, transitions)
	vm := c.ViewModel()

	c.Navigate(1)
	c.Wait()
	require.EqualValues(t, 1, calls.Load())
	require.Len(t, transitions, 0)

	c.Refresh()
	require.Equal(t, StatusLoading, next(t, transitions).state.Status)
	require.Equal(t, StatusSuccess, next(t, transitions).state.Status)
	require.EqualValues(t, 2, calls.Load())
	require.NotSame(t, vm, c.ViewModel(), "next success replaces the view-model wholesale")
}

func TestController_TeardownWhileLoading(t *testing.T) {
	var derives atomic.Int32
	fetch, gates, started := gated(1)
	c, transitions := newTestController(fetch, &derives)

	c.Navigate(1)
	next(t, transitions)
	ctx := <-started

	c.Close()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.Equal(t, StatusIdle, c.State().Status)

	gates[1] <- outcome{data: "too late"}
	c.Wait()

	require.Len(t, transitions, 0)
	require.Equal(t, StatusIdle, c.State().Status)
	require.Nil(t, c.ViewModel())
	require.Zero(t, derives.Load())

	c.Navigate(2)
	c.Refresh()
	c.Close()
	require.Len(t, transitions, 0)
	_, ok := c.Param()
	require.False(t, ok)
}

func TestController_IndependentInstances(t *testing.T) {
	var derives atomic.Int32
	fetch := func(ctx context.Context, id int) (string, error) { return "x", nil }
	a, ta := newTestController(fetch, &derives)
	b, _ := newTestController(fetch, &derives)

	a.Navigate(1)
	next(t, ta)
	next(t, ta)
	a.Close()

	require.Equal(t, StatusIdle, b.State().Status)
	b.Navigate(1)
	b.Wait()
	require.Equal(t, StatusSuccess, b.State().Status)
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "loading", StatusLoading.String())
	require.Equal(t, "Status(9)", Status(9).String())
}
