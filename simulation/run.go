//go:build !solution

package simulation

import (
	"context"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"gitlab.com/slon/readerwriter/library"
)

// Run starts s.Readers readers and s.Writers writers on lib and blocks until ctx
// is done and every actor has left.
func Run(ctx context.Context, lib *library.Library, s Settings, clock clockwork.Clock) error {
	if err := s.Validate(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 1; i <= s.Readers; i++ {
		g.Go(func() error {
			return Reader(ctx, lib, i, s, clock)
		})
	}
	for i := 1; i <= s.Writers; i++ {
		g.Go(func() error {
			return Writer(ctx, lib, i, s, clock)
		})
	}
	return g.Wait()
}
