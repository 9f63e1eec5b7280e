// Package deletion composes reg.exe delete commands into key, value and
// clear operations.
package deletion

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/internal/options"
	"github.com/joshuapare/regkit/internal/regtext"
)

// Executor runs reg.exe; *command.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, args ...string) (string, bool, error)
}

// KeyLister returns the immediate subkey names of req.Path;
// *query.Lister satisfies it.
type KeyLister interface {
	Keys(ctx context.Context, req options.Request) ([]string, error)
}

// Engine deletes keys and values. Deleting something that does not exist
// succeeds. Composite operations are not atomic: a failure leaves whatever
// was already deleted deleted.
type Engine struct {
	exec   Executor
	lister KeyLister
}

// New returns an Engine. lister is only needed by ClearKeys and Clear.
func New(exec Executor, lister KeyLister) *Engine {
	return &Engine{exec: exec, lister: lister}
}

// Delete removes the value named by req.Name, or the whole key when the
// request carries no name.
func (e *Engine) Delete(ctx context.Context, req options.Request) error {
	if req.HasName() {
		return e.DeleteValue(ctx, req)
	}
	return e.DeleteKey(ctx, req)
}

// DeleteKey removes req.Path with all its values and subkeys.
func (e *Engine) DeleteKey(ctx context.Context, req options.Request) error {
	return e.run(ctx, req, regtext.VerbDelete, req.Path, regtext.FlagForce)
}

// DeleteValue removes one value of req.Path. A nil or default name
// targets the unnamed value.
func (e *Engine) DeleteValue(ctx context.Context, req options.Request) error {
	if req.Name == nil || req.Name.IsDefault() {
		return e.run(ctx, req, regtext.VerbDelete, req.Path, regtext.FlagDefaultValue, regtext.FlagForce)
	}
	return e.run(ctx, req, regtext.VerbDelete, req.Path, regtext.FlagValue, req.Name.Name(), regtext.FlagForce)
}

// ClearValues removes every value of req.Path, keeping the key and its
// subkeys.
func (e *Engine) ClearValues(ctx context.Context, req options.Request) error {
	return e.run(ctx, req, regtext.VerbDelete, req.Path, regtext.FlagAllValues, regtext.FlagForce)
}

// ClearKeys removes every subkey of req.Path, keeping its values. The
// deletions run concurrently; the first error is returned once all of
// them have finished.
func (e *Engine) ClearKeys(ctx context.Context, req options.Request) error {
	keys, err := e.lister.Keys(ctx, req)
	if err != nil {
		return err
	}
	logger.Debug("clearing subkeys", "component", "deletion", "path", req.Path, "count", len(keys))

	var g errgroup.Group
	for _, k := range keys {
		child := req
		child.Path = regtext.JoinPath(req.Path, k)
		child.Name = nil
		g.Go(func() error {
			return e.Delete(ctx, child)
		})
	}
	return g.Wait()
}

// Clear empties req.Path of values and subkeys. Both halves run
// concurrently.
func (e *Engine) Clear(ctx context.Context, req options.Request) error {
	var g errgroup.Group
	g.Go(func() error { return e.ClearValues(ctx, req) })
	g.Go(func() error { return e.ClearKeys(ctx, req) })
	return g.Wait()
}

func (e *Engine) run(ctx context.Context, req options.Request, args ...string) error {
	if req.BitsArg != "" {
		args = append(args, req.BitsArg)
	}
	_, _, err := e.exec.Execute(ctx, args...)
	return err
}
