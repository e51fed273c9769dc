package eddy_test

import (
	"errors"
	"testing"

	"github.com/gordian-engine/eddy"
	"github.com/gordian-engine/eddy/internal/etest"
	"github.com/stretchr/testify/require"
)

func TestSubject_multicast(t *testing.T) {
	t.Parallel()

	s := eddy.NewSubject[int]()

	r1 := etest.NewRecorder[int]()
	r2 := etest.NewRecorder[int]()
	s.Subscribe(r1)
	d2 := s.Subscribe(r2)

	s.On(eddy.Next(1))
	d2.Dispose()
	s.On(eddy.Next(2))
	s.On(eddy.Completed[int]())

	require.Equal(t, []int{1, 2}, r1.Values())
	etest.IsSending(t, r1.Terminated())
	require.Equal(t, []int{1}, r2.Values())
	etest.NotSending(t, r2.Terminated())
	require.False(t, s.HasObservers())
}

func TestSubject_lateSubscriberGetsTerminal(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	s := eddy.NewSubject[int]()
	s.On(eddy.Next(1))
	s.On(eddy.Error[int](errBoom))
	s.On(eddy.Next(2))

	r := etest.NewRecorder[int]()
	s.Subscribe(r)

	require.Equal(t, []eddy.Event[int]{eddy.Error[int](errBoom)}, r.Events())
}

func TestSubject_reentrantSend(t *testing.T) {
	t.Parallel()

	s := eddy.NewSubject[int]()

	var got []int
	s.Subscribe(eddy.ObserverFunc[int](func(e eddy.Event[int]) {
		got = append(got, e.Value())
		if e.Value() < 3 {
			s.On(eddy.Next(e.Value() + 1))
		}
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.On(eddy.Next(1))
	}()

	etest.ReceiveSoon(t, done)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestSubject_unsubscribeFromCallback(t *testing.T) {
	t.Parallel()

	s := eddy.NewSubject[int]()

	r := etest.NewRecorder[int]()
	var d interface{ Dispose() }
	d = s.Subscribe(eddy.ObserverFunc[int](func(e eddy.Event[int]) {
		r.On(e)
		d.Dispose()
	}))

	s.On(eddy.Next(1))
	s.On(eddy.Next(2))

	require.Equal(t, []int{1}, r.Values())
}

func TestSubject_reentrantSendReachesEveryObserverInOrder(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		resend eddy.Event[int]
		want   []eddy.Event[int]
	}{
		{
			name:   "next",
			resend: eddy.Next(2),
			want:   []eddy.Event[int]{eddy.Next(1), eddy.Next(2)},
		},
		{
			name:   "completed",
			resend: eddy.Completed[int](),
			want:   []eddy.Event[int]{eddy.Next(1), eddy.Completed[int]()},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := eddy.NewSubject[int]()

			first := etest.NewRecorder[int]()
			s.Subscribe(eddy.ObserverFunc[int](func(e eddy.Event[int]) {
				first.On(e)
				if e.Kind() == eddy.KindNext && e.Value() == 1 {
					s.On(tc.resend)
				}
			}))

			second := etest.NewRecorder[int]()
			s.Subscribe(second)

			s.On(eddy.Next(1))

			require.Equal(t, tc.want, first.Events())
			require.Equal(t, tc.want, second.Events())
			require.Zero(t, second.AfterStop())
		})
	}
}

func TestSubject_nothingAfterReentrantTerminal(t *testing.T) {
	t.Parallel()

	s := eddy.NewSubject[int]()

	s.Subscribe(eddy.ObserverFunc[int](func(e eddy.Event[int]) {
		if e.Kind() == eddy.KindNext && e.Value() == 1 {
			s.On(eddy.Completed[int]())
			s.On(eddy.Next(2))
		}
	}))

	r := etest.NewRecorder[int]()
	s.Subscribe(r)

	s.On(eddy.Next(1))
	s.On(eddy.Next(3))

	require.Equal(t, []eddy.Event[int]{eddy.Next(1), eddy.Completed[int]()}, r.Events())
	require.Zero(t, r.AfterStop())
	require.False(t, s.HasObservers())
}
