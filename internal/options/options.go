// Package options merges the three tiers a call can be configured from
// (explicit options, positional arguments, process-wide defaults) into one
// immutable Request.
package options

import (
	"sync/atomic"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

// Defaults is the process-wide configuration consulted when a call does
// not say otherwise.
type Defaults struct {
	Lowercase bool   // lowercase key/value names in listings
	Format    string // listing shape chosen by higher layers; "" for none
	Bits      int    // 32 or 64 to pin a registry view; 0 for the caller's own
	Debug     bool   // emit debug trace records
}

// Args are the positional arguments of a call: path, name, data.
type Args struct {
	Path string
	Name *types.ValueName
	Data regtext.Value
}

// Options is the explicit options object of a call. Nil fields are unset
// and fall through to Args, then Defaults.
type Options struct {
	Path      *string
	Name      *types.ValueName
	Data      regtext.Value
	Type      *types.RegType
	Bits      *int
	Lowercase *bool
	Format    *string
}

// Request is the canonical, resolved form of a call. Nil pointers, a nil
// Data, a zero Bits and empty strings mean the field was never set.
type Request struct {
	Path      string
	Name      *types.ValueName
	Data      regtext.Value
	Type      *types.RegType
	Bits      int
	BitsArg   string
	Lowercase *bool
	Format    string
}

// HasName reports whether the request addresses a value rather than a key.
func (r Request) HasName() bool { return r.Name != nil }

// BitsArg translates a view width to its reg.exe flag. Anything other than
// 32 or 64 has no flag.
func BitsArg(bits int) string {
	switch bits {
	case 64:
		return regtext.FlagView64
	case 32:
		return regtext.FlagView32
	default:
		return ""
	}
}

// Resolve merges opts over args over defaults. A nil defaults skips the
// lowest tier entirely.
func Resolve(args Args, opts *Options, defaults *Defaults) Request {
	var req Request
	if defaults != nil {
		lc := defaults.Lowercase
		req.Lowercase = &lc
		req.Format = defaults.Format
		req.Bits = defaults.Bits
	}

	req.Path = args.Path
	req.Name = args.Name
	req.Data = args.Data

	if opts != nil {
		if opts.Path != nil {
			req.Path = *opts.Path
		}
		if opts.Name != nil {
			req.Name = opts.Name
		}
		if opts.Data != nil {
			req.Data = opts.Data
		}
		if opts.Type != nil {
			req.Type = opts.Type
		}
		if opts.Bits != nil {
			req.Bits = *opts.Bits
		}
		if opts.Lowercase != nil {
			req.Lowercase = opts.Lowercase
		}
		if opts.Format != nil {
			req.Format = *opts.Format
		}
	}

	req.Path = regtext.NormalizePath(req.Path)
	req.BitsArg = BitsArg(req.Bits)
	if req.BitsArg == "" {
		req.Bits = 0
	}

	logger.Debug("options resolved",
		"component", "options",
		"path", req.Path,
		"name", req.Name,
		"bits", req.Bits,
		"include_defaults", defaults != nil,
	)
	return req
}

// Store holds the process-wide Defaults. Updates affect requests resolved
// afterwards, never ones already in flight.
type Store struct {
	p atomic.Pointer[Defaults]
}

// NewStore returns a Store holding d.
func NewStore(d Defaults) *Store {
	s := &Store{}
	s.Set(d)
	return s
}

// Get returns a copy of the current defaults.
func (s *Store) Get() Defaults {
	return *s.p.Load()
}

// Set replaces the defaults.
func (s *Store) Set(d Defaults) {
	s.p.Store(&d)
	logger.SetDebug(d.Debug)
}

// Update applies fn to a copy of the current defaults and stores it. When
// another writer lands first fn runs again on the newer copy.
func (s *Store) Update(fn func(*Defaults)) {
	for {
		old := s.p.Load()
		d := *old
		fn(&d)
		if s.p.CompareAndSwap(old, &d) {
			logger.SetDebug(d.Debug)
			return
		}
	}
}

// Resolve merges opts and args over the current defaults.
func (s *Store) Resolve(args Args, opts *Options) Request {
	d := s.Get()
	return Resolve(args, opts, &d)
}
