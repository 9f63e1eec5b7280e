// Package query reads keys through `reg query` and parses the listing.
package query

import (
	"context"
	"strings"

	"github.com/joshuapare/regkit/internal/locale"
	"github.com/joshuapare/regkit/internal/options"
	"github.com/joshuapare/regkit/internal/regtext"
)

// Executor runs reg.exe; *command.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, args ...string) (string, bool, error)
	Locale(ctx context.Context) (locale.State, error)
}

// Lister lists subkeys and values of a key.
type Lister struct {
	exec Executor
}

// NewLister returns a Lister running its queries through exec.
func NewLister(exec Executor) *Lister {
	return &Lister{exec: exec}
}

// Query runs `reg query <path> [view]` and parses the result. found is
// false when the key does not exist.
func (l *Lister) Query(ctx context.Context, req options.Request) (res regtext.QueryResult, found bool, err error) {
	args := []string{regtext.VerbQuery, req.Path}
	if req.BitsArg != "" {
		args = append(args, req.BitsArg)
	}

	out, found, err := l.exec.Execute(ctx, args...)
	if err != nil || !found {
		return regtext.QueryResult{}, found, err
	}

	st, err := l.exec.Locale(ctx)
	if err != nil {
		return regtext.QueryResult{}, false, err
	}

	res = regtext.ParseQuery(out, req.Path, st.Markers)
	if lowercase(req) {
		for i, k := range res.Subkeys {
			res.Subkeys[i] = strings.ToLower(k)
		}
	}
	return res, true, nil
}

// Keys returns the names of the immediate subkeys of req.Path. A missing
// key has no subkeys.
func (l *Lister) Keys(ctx context.Context, req options.Request) ([]string, error) {
	res, _, err := l.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	if res.Subkeys == nil {
		return []string{}, nil
	}
	return res.Subkeys, nil
}

func lowercase(req options.Request) bool {
	return req.Lowercase != nil && *req.Lowercase
}
