//go:build !solution

package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"

	"gitlab.com/slon/readerwriter/library"
)

func ReaderID(n int) string { return fmt.Sprintf("Reader-%d", n) }
func WriterID(n int) string { return fmt.Sprintf("Writer-%d", n) }

// Reader visits lib as reader number n until ctx is done. An actor cancelled
// while inside leaves before Reader returns. Cancellation is not an error.
func Reader(ctx context.Context, lib *library.Library, n int, s Settings, clock clockwork.Clock) error {
	return visit(ctx, ReaderID(n), lib.BeginRead, lib.EndRead, s, clock)
}

// Writer is the writing counterpart of Reader.
func Writer(ctx context.Context, lib *library.Library, n int, s Settings, clock clockwork.Clock) error {
	return visit(ctx, WriterID(n), lib.BeginWrite, lib.EndWrite, s, clock)
}

func visit(
	ctx context.Context,
	id string,
	begin func(context.Context, string) error,
	end func(string) error,
	s Settings,
	clock clockwork.Clock,
) error {
	for {
		if err := begin(ctx, id); err != nil {
			if errors.Is(err, library.ErrCancelled) {
				return nil
			}
			return err
		}

		worked := sleep(ctx, clock, s.workTime())
		// Выходим из библиотеки даже если нас отменили
		if err := end(id); err != nil {
			return err
		}
		if !worked || !sleep(ctx, clock, s.Rest) {
			return nil
		}
	}
}

// workTime returns a random duration in [WorkMin, WorkMax].
func (s Settings) workTime() time.Duration {
	spread := int64(s.WorkMax - s.WorkMin)
	if spread <= 0 {
		return s.WorkMin
	}
	return s.WorkMin + time.Duration(rand.Int64N(spread+1))
}

// sleep reports false if ctx was done before d elapsed.
func sleep(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.Chan():
		return true
	}
}
