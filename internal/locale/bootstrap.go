// Package locale learns how the local reg.exe phrases its messages.
//
// reg.exe output is localized: the "key not found" error and the tokens
// printed for an unset default value differ per display language. Bootstrap
// runs two locale queries once per process and gates every other reg.exe
// invocation until both have finished.
package locale

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/internal/observability"
	"github.com/joshuapare/regkit/internal/process"
	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

// State is what the locale queries learned. It never changes once published.
type State struct {
	// NotFound is the first line reg.exe prints to stderr for a missing key.
	NotFound string
	// Markers are the tokens printed for an unset default value.
	Markers regtext.Markers
}

// Bootstrap is a one-time, concurrency-safe initializer for State.
// The zero value is not usable; use New or Preset.
type Bootstrap struct {
	runner  process.Runner
	program string
	metrics observability.MetricsRecorder

	once  sync.Once
	ready atomic.Bool
	done  chan struct{}
	state State
	err   error
}

// New returns a Bootstrap that queries program (normally reg.exe) through
// runner on first use. A nil metrics recorder disables metrics.
func New(runner process.Runner, program string, metrics observability.MetricsRecorder) *Bootstrap {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if program == "" {
		program = regtext.Program
	}
	return &Bootstrap{
		runner:  runner,
		program: program,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

// Preset returns a Bootstrap that is already resolved to s and never runs
// any query.
func Preset(s State) *Bootstrap {
	b := &Bootstrap{done: make(chan struct{}), state: s}
	b.once.Do(func() {})
	b.publish()
	return b
}

// Wait starts the locale queries if nobody has yet and blocks until they
// finish or ctx is done. Every caller shares the same queries and the same
// result; a failed query is remembered and returned to all later callers.
//
// The queries run detached from ctx so one caller giving up does not spoil
// the result for the others.
func (b *Bootstrap) Wait(ctx context.Context) (State, error) {
	if b.ready.Load() {
		return b.state, b.err
	}

	b.once.Do(func() { go b.run() })

	select {
	case <-b.done:
		return b.state, b.err
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// Done reports whether the locale queries have finished.
func (b *Bootstrap) Done() bool { return b.ready.Load() }

func (b *Bootstrap) run() {
	ctx := context.Background()
	start := time.Now()

	var g errgroup.Group
	g.Go(func() error {
		args := []string{regtext.VerbQuery, regtext.LocaleMissingKey}
		out, err := b.runner.Run(ctx, b.program, args)
		if err != nil {
			return err
		}
		b.state.NotFound = regtext.ErrorLine(out.Stderr)
		if b.state.NotFound == "" {
			return &types.Error{
				Kind:    types.ErrKindLocale,
				Msg:     "no error printed for a missing key",
				Command: regtext.CommandName + " " + strings.Join(args, " "),
			}
		}
		return nil
	})
	g.Go(func() error {
		out, err := b.runner.Run(ctx, b.program, []string{regtext.VerbQuery, regtext.LocaleDefaultKey, regtext.FlagDefaultValue})
		if err != nil {
			return err
		}
		m, ok := regtext.ParseMarkers(out.Stdout)
		if !ok {
			logger.Warn("locale query found no default value markers",
				"component", "locale", "path", regtext.LocaleDefaultKey)
		}
		b.state.Markers = m
		return nil
	})
	b.err = g.Wait()

	b.metrics.RecordBootstrap(ctx, time.Since(start), b.err)
	logger.Debug("locale learned",
		"component", "locale",
		"not_found", b.state.NotFound,
		"default_marker", b.state.Markers.DefaultName,
		"unset_marker", b.state.Markers.Unset,
		"error", b.err,
	)
	b.publish()
}

func (b *Bootstrap) publish() {
	b.ready.Store(true)
	close(b.done)
}
