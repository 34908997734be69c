//go:build !solution

package simulation

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gitlab.com/slon/readerwriter/library"
)

// Settings describes one simulation run.
type Settings struct {
	Capacity int
	Readers  int
	Writers  int
	// Rest is the pause between two visits of the same actor.
	Rest time.Duration
	// WorkMin and WorkMax bound the random time an actor stays inside.
	WorkMin time.Duration
	WorkMax time.Duration
}

var ErrInvalidSettings = errors.New("simulation: invalid settings")

// DefaultSettings returns 10 readers and 3 writers resting 500ms and staying
// inside between one and three seconds.
func DefaultSettings() Settings {
	return Settings{
		Capacity: library.DefaultCapacity,
		Readers:  10,
		Writers:  3,
		Rest:     500 * time.Millisecond,
		WorkMin:  time.Second,
		WorkMax:  3 * time.Second,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d", ErrInvalidSettings, s.Capacity)
	case s.Readers < 0:
		return fmt.Errorf("%w: %d readers", ErrInvalidSettings, s.Readers)
	case s.Writers < 0:
		return fmt.Errorf("%w: %d writers", ErrInvalidSettings, s.Writers)
	case s.Rest < 0:
		return fmt.Errorf("%w: rest %v", ErrInvalidSettings, s.Rest)
	case s.WorkMin < 0 || s.WorkMax < s.WorkMin:
		return fmt.Errorf("%w: work time %v..%v", ErrInvalidSettings, s.WorkMin, s.WorkMax)
	}
	return nil
}

// ParseArgs reads up to three positional arguments: number of readers, number of
// writers and rest time in milliseconds. A value that is not a non-negative
// integer keeps the one from base and is reported to log. Extra arguments are
// ignored.
func ParseArgs(args []string, base Settings, log *zap.Logger) Settings {
	s := base
	if len(args) >= 1 {
		if n, ok := parseCount(args[0]); ok {
			s.Readers = n
		} else {
			log.Warn("invalid number of readers, using default",
				zap.String("arg", args[0]), zap.Int("default", base.Readers))
		}
	}
	if len(args) >= 2 {
		if n, ok := parseCount(args[1]); ok {
			s.Writers = n
		} else {
			log.Warn("invalid number of writers, using default",
				zap.String("arg", args[1]), zap.Int("default", base.Writers))
		}
	}
	if len(args) >= 3 {
		if n, ok := parseCount(args[2]); ok {
			s.Rest = time.Duration(n) * time.Millisecond
		} else {
			log.Warn("invalid rest time, using default",
				zap.String("arg", args[2]), zap.Duration("default", base.Rest))
		}
	}
	return s
}

func parseCount(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
