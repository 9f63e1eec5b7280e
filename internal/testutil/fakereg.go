// Package testutil provides an in-memory stand-in for reg.exe so command,
// delete and CLI tests run on any OS.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/joshuapare/regkit/internal/process"
	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

// Messages printed by FakeReg, matching an English reg.exe.
const (
	MsgNotFound      = "ERROR: The system was unable to find the specified registry key or value."
	MsgInvalidKey    = "ERROR: Invalid key name."
	MsgInvalidSyntax = "ERROR: Invalid syntax."
	MsgSuccess       = "The operation completed successfully."
	DefaultMarker    = "(Default)"
	UnsetMarker      = "(value not set)"
)

var hives = []string{
	regtext.HKEYLocalMachine,
	regtext.HKEYClassesRoot,
	regtext.HKEYCurrentUser,
	regtext.HKEYUsers,
	regtext.HKEYCurrentConfig,
}

type value struct {
	typ  types.RegType
	data string // as reg.exe prints it
}

type node struct {
	name     string
	values   map[string]value // keyed by name; default value under defaultKey
	order    []string
	children map[string]*node // keyed by upper-case name
}

const defaultKey = "\x00default"

func newNode(name string) *node {
	return &node{name: name, values: map[string]value{}, children: map[string]*node{}}
}

// FakeReg implements process.Runner by interpreting the reg.exe command
// subset regkit emits (QUERY and delete) against an in-memory tree.
type FakeReg struct {
	mu     sync.Mutex
	hives  map[string]*node
	calls  [][]string
	failOn map[string]string

	omitKeyLine bool
}

// Compile-time interface check.
var _ process.Runner = (*FakeReg)(nil)

// NewFakeReg returns a FakeReg holding the five empty root hives.
func NewFakeReg() *FakeReg {
	f := &FakeReg{hives: map[string]*node{}, failOn: map[string]string{}}
	for _, h := range hives {
		f.hives[h] = newNode(h)
	}
	return f
}

// SetupFakeReg returns a FakeReg seeded with the given keys.
func SetupFakeReg(t *testing.T, keys ...string) *FakeReg {
	t.Helper()
	f := NewFakeReg()
	for _, k := range keys {
		f.AddKey(k)
	}
	return f
}

// FailWith makes any command whose joined args equal cmdline print errLine
// to stderr instead of running.
func (f *FakeReg) FailWith(cmdline, errLine string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[cmdline] = errLine
}

// OmitKeyLineWithoutValues makes QUERY of a key that has no values list
// only its subkeys, without the key's own line, as reg.exe does.
func (f *FakeReg) OmitKeyLineWithoutValues() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.omitKeyLine = true
}

// AddKey creates path and any missing parents.
func (f *FakeReg) AddKey(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.walk(path, true)
}

// SetValue stores a named value, creating the key if needed.
func (f *FakeReg) SetValue(path, name string, typ types.RegType, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.walk(path, true).set(name, value{typ: typ, data: data})
}

// SetDefault stores the unnamed value of path.
func (f *FakeReg) SetDefault(path string, typ types.RegType, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.walk(path, true).set(defaultKey, value{typ: typ, data: data})
}

// HasKey reports whether path exists.
func (f *FakeReg) HasKey(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.walk(path, false) != nil
}

// ValueNames lists the named values of path in insertion order. The
// default value, when set, is reported as "".
func (f *FakeReg) ValueNames(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.walk(path, false)
	if n == nil {
		return nil
	}
	var out []string
	for _, name := range n.order {
		if name == defaultKey {
			out = append(out, "")
			continue
		}
		out = append(out, name)
	}
	return out
}

// Calls returns every argument list received, in arrival order.
func (f *FakeReg) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsWithVerb returns the received commands whose verb matches, joined
// with spaces and sorted.
func (f *FakeReg) CallsWithVerb(verb string) []string {
	var out []string
	for _, c := range f.Calls() {
		if len(c) > 0 && strings.EqualFold(c[0], verb) {
			out = append(out, strings.Join(c, " "))
		}
	}
	sort.Strings(out)
	return out
}

// Run implements process.Runner.
func (f *FakeReg) Run(_ context.Context, _ string, args []string) (process.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), args...))

	if line, ok := f.failOn[strings.Join(args, " ")]; ok {
		return failure(line), nil
	}
	if len(args) < 2 {
		return failure(MsgInvalidSyntax), nil
	}

	args = stripView(args)
	switch strings.ToUpper(args[0]) {
	case "QUERY":
		return f.query(args[1], args[2:]), nil
	case "DELETE":
		return f.delete(args[1], args[2:]), nil
	default:
		return failure(MsgInvalidSyntax), nil
	}
}

func (f *FakeReg) query(path string, flags []string) process.Output {
	n := f.walk(path, false)
	if n == nil {
		return notFound(path, f)
	}
	var b strings.Builder
	b.WriteString(regtext.CRLF)

	if len(flags) == 1 && strings.EqualFold(flags[0], regtext.FlagDefaultValue) {
		b.WriteString(f.fullPath(path) + regtext.CRLF)
		v, ok := n.values[defaultKey]
		if !ok {
			v = value{typ: types.REG_SZ, data: UnsetMarker}
		}
		writeValue(&b, DefaultMarker, v)
		b.WriteString(regtext.CRLF)
		return process.Output{Stdout: b.String()}
	}
	if len(flags) > 0 {
		return failure(MsgInvalidSyntax)
	}

	if !f.omitKeyLine || len(n.order) > 0 {
		b.WriteString(f.fullPath(path) + regtext.CRLF)
	}
	for _, name := range n.order {
		shown := name
		if name == defaultKey {
			shown = DefaultMarker
		}
		writeValue(&b, shown, n.values[name])
	}
	b.WriteString(regtext.CRLF)
	for _, c := range sortedChildren(n) {
		b.WriteString(f.fullPath(path) + regtext.Backslash + c.name + regtext.CRLF)
	}
	return process.Output{Stdout: b.String()}
}

func (f *FakeReg) delete(path string, flags []string) process.Output {
	if len(flags) == 0 || !strings.EqualFold(flags[len(flags)-1], regtext.FlagForce) {
		return failure(MsgInvalidSyntax)
	}
	flags = flags[:len(flags)-1]

	n := f.walk(path, false)
	if n == nil {
		return notFound(path, f)
	}

	switch {
	case len(flags) == 0:
		parent, name := f.parent(path)
		if parent == nil {
			return failure(MsgInvalidKey)
		}
		delete(parent.children, strings.ToUpper(name))

	case len(flags) == 1 && strings.EqualFold(flags[0], regtext.FlagAllValues):
		n.values = map[string]value{}
		n.order = nil

	case len(flags) == 1 && strings.EqualFold(flags[0], regtext.FlagDefaultValue):
		if !n.remove(defaultKey) {
			return failure(MsgNotFound)
		}

	case len(flags) == 2 && strings.EqualFold(flags[0], regtext.FlagValue):
		if !n.remove(flags[1]) {
			return failure(MsgNotFound)
		}

	default:
		return failure(MsgInvalidSyntax)
	}
	return process.Output{Stdout: MsgSuccess + regtext.CRLF}
}

// walk resolves path, creating missing keys when create is set. It
// returns nil for an unknown hive or a missing key.
func (f *FakeReg) walk(path string, create bool) *node {
	segs := strings.Split(regtext.ExpandHive(regtext.NormalizePath(path)), regtext.Backslash)
	n := f.hives[strings.ToUpper(segs[0])]
	if n == nil {
		return nil
	}
	for _, s := range segs[1:] {
		if s == "" {
			continue
		}
		child := n.children[strings.ToUpper(s)]
		if child == nil {
			if !create {
				return nil
			}
			child = newNode(s)
			n.children[strings.ToUpper(s)] = child
		}
		n = child
	}
	return n
}

func (f *FakeReg) parent(path string) (*node, string) {
	full := regtext.ExpandHive(regtext.NormalizePath(path))
	i := strings.LastIndex(full, regtext.Backslash)
	if i < 0 {
		return nil, ""
	}
	return f.walk(full[:i], false), full[i+1:]
}

func (f *FakeReg) fullPath(path string) string {
	return strings.TrimRight(regtext.ExpandHive(regtext.NormalizePath(path)), regtext.Backslash)
}

func (n *node) set(name string, v value) {
	if _, ok := n.values[name]; !ok {
		n.order = append(n.order, name)
	}
	n.values[name] = v
}

func (n *node) remove(name string) bool {
	if _, ok := n.values[name]; !ok {
		return false
	}
	delete(n.values, name)
	for i, o := range n.order {
		if o == name {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return true
}

func sortedChildren(n *node) []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func writeValue(b *strings.Builder, name string, v value) {
	b.WriteString(regtext.ValueColumnSeparator + name +
		regtext.ValueColumnSeparator + v.typ.String() +
		regtext.ValueColumnSeparator + v.data + regtext.CRLF)
}

func stripView(args []string) []string {
	out := args[:0:0]
	for _, a := range args {
		if strings.EqualFold(a, regtext.FlagView32) || strings.EqualFold(a, regtext.FlagView64) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func notFound(path string, f *FakeReg) process.Output {
	segs := strings.SplitN(regtext.ExpandHive(regtext.NormalizePath(path)), regtext.Backslash, 2)
	if f.hives[strings.ToUpper(segs[0])] == nil {
		return failure(MsgInvalidKey)
	}
	return failure(MsgNotFound)
}

func failure(line string) process.Output {
	return process.Output{Stderr: line + regtext.CRLF + regtext.CRLF, ExitCode: 1}
}
