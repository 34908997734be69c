package simulation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"gitlab.com/slon/readerwriter/library"
)

const (
	waitFor = time.Second
	tick    = time.Millisecond
)

func fixedSettings() Settings {
	s := DefaultSettings()
	s.WorkMin, s.WorkMax = time.Second, time.Second
	return s
}

func newLibrary(t *testing.T, opts ...library.Option) *library.Library {
	t.Helper()
	lib, err := library.New(library.DefaultCapacity, opts...)
	require.NoError(t, err)
	return lib
}

func start(ctx context.Context, f func(context.Context) error) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- f(ctx)
	}()
	return done
}

func requireReturned(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitFor):
		t.Fatal("worker did not stop")
	}
}

func requireInside(t *testing.T, lib *library.Library, ids ...string) {
	t.Helper()
	if ids == nil {
		ids = []string{}
	}
	require.Eventually(t, func() bool {
		got := lib.Inside()
		if len(got) != len(ids) {
			return false
		}
		for i := range got {
			if got[i] != ids[i] {
				return false
			}
		}
		return true
	}, waitFor, tick)
}

func TestReaderCycle(t *testing.T) {
	lib := newLibrary(t)
	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())

	done := start(ctx, func(ctx context.Context) error {
		return Reader(ctx, lib, 1, fixedSettings(), clock)
	})

	requireInside(t, lib, "Reader-1")
	clock.BlockUntil(1)
	clock.Advance(time.Second)

	// отдыхает снаружи
	requireInside(t, lib)
	clock.BlockUntil(1)
	clock.Advance(500 * time.Millisecond)

	requireInside(t, lib, "Reader-1")

	cancel()
	requireReturned(t, done)
	require.Empty(t, lib.Inside())
	require.Empty(t, lib.Waiting())
}

func TestWriterLeavesWhenCancelledInside(t *testing.T) {
	lib := newLibrary(t)
	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())

	done := start(ctx, func(ctx context.Context) error {
		return Writer(ctx, lib, 2, fixedSettings(), clock)
	})
	requireInside(t, lib, "Writer-2")
	clock.BlockUntil(1)

	cancel()
	requireReturned(t, done)
	require.Empty(t, lib.Inside())

	// все места снова свободны
	require.NoError(t, lib.BeginWrite(context.Background(), "Writer-3"))
	require.NoError(t, lib.EndWrite("Writer-3"))
}

func TestReaderCancelledWhileWaiting(t *testing.T) {
	lib := newLibrary(t)
	require.NoError(t, lib.BeginWrite(context.Background(), "Writer-1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := start(ctx, func(ctx context.Context) error {
		return Reader(ctx, lib, 1, fixedSettings(), clockwork.NewFakeClock())
	})
	require.Eventually(t, func() bool {
		return len(lib.Waiting()) == 1
	}, waitFor, tick)

	cancel()
	requireReturned(t, done)
	require.Empty(t, lib.Waiting())
	require.Equal(t, []string{"Writer-1"}, lib.Inside())
	require.NoError(t, lib.EndWrite("Writer-1"))
}

func TestWorkersCancelledBeforeStart(t *testing.T) {
	lib := newLibrary(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, Reader(ctx, lib, 2, fixedSettings(), clockwork.NewRealClock()))
	require.NoError(t, Writer(ctx, lib, 2, fixedSettings(), clockwork.NewRealClock()))
	require.Empty(t, lib.Snapshot().Inside)
}

func TestWorkerReportsBookkeepingErrors(t *testing.T) {
	lib := newLibrary(t)
	require.NoError(t, lib.BeginRead(context.Background(), "Reader-1"))

	err := Reader(context.Background(), lib, 1, fixedSettings(), clockwork.NewFakeClock())
	require.ErrorIs(t, err, library.ErrIdentifierInUse)
	require.NoError(t, lib.EndRead("Reader-1"))
}

func TestRun(t *testing.T) {
	var (
		mu       sync.Mutex
		kinds    = map[library.EventKind]int{}
		badState []library.Event
	)
	lib := newLibrary(t, library.WithObserver(library.ObserverFunc(func(e library.Event) {
		mu.Lock()
		defer mu.Unlock()
		kinds[e.Kind]++
		if e.Inside > library.DefaultCapacity || (e.Writers > 0 && e.Inside != 1) {
			badState = append(badState, e)
		}
	})))

	s := Settings{
		Capacity: library.DefaultCapacity,
		Readers:  8,
		Writers:  2,
		Rest:     time.Millisecond,
		WorkMin:  time.Millisecond,
		WorkMax:  3 * time.Millisecond,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, Run(ctx, lib, s, clockwork.NewRealClock()))

	snap := lib.Snapshot()
	require.Empty(t, snap.Inside)
	require.Empty(t, snap.Waiting)

	mu.Lock()
	defer mu.Unlock()
	require.Empty(t, badState)
	require.Positive(t, kinds[library.EventEntersRead])
	require.Positive(t, kinds[library.EventEntersWrite])
	require.Equal(t, kinds[library.EventEntersRead], kinds[library.EventLeavesRead])
	require.Equal(t, kinds[library.EventEntersWrite], kinds[library.EventLeavesWrite])
	require.Equal(t, kinds[library.EventWantsRead],
		kinds[library.EventEntersRead]+kinds[library.EventAbandonsRead])
	require.Equal(t, kinds[library.EventWantsWrite],
		kinds[library.EventEntersWrite]+kinds[library.EventAbandonsWrite])
}

func TestRunRejectsInvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.Readers = -1
	err := Run(context.Background(), newLibrary(t), s, clockwork.NewFakeClock())
	require.ErrorIs(t, err, ErrInvalidSettings)
}
