package deletion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/command"
	"github.com/joshuapare/regkit/internal/options"
	"github.com/joshuapare/regkit/internal/query"
	"github.com/joshuapare/regkit/internal/testutil"
	"github.com/joshuapare/regkit/pkg/types"
)

func newEngine(fake *testutil.FakeReg) *Engine {
	exec := command.New(command.Config{Runner: fake})
	return New(exec, query.NewLister(exec))
}

func named(s string) *types.ValueName {
	n := types.Named(s)
	return &n
}

func TestDelete_Dispatch(t *testing.T) {
	def := types.DefaultValue

	tests := []struct {
		name string
		req  options.Request
		want string
	}{
		{"key", options.Request{Path: `HKCU\P`}, `delete HKCU\P /f`},
		{"named value", options.Request{Path: `HKCU\P`, Name: named("X")}, `delete HKCU\P /v X /f`},
		{"default value", options.Request{Path: `HKCU\P`, Name: &def}, `delete HKCU\P /ve /f`},
		{"view", options.Request{Path: `HKCU\P`, Bits: 64, BitsArg: "/reg:64"}, `delete HKCU\P /f /reg:64`},
		{"value with view", options.Request{Path: `HKCU\P`, Name: named("X"), Bits: 32, BitsArg: "/reg:32"}, `delete HKCU\P /v X /f /reg:32`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.SetupFakeReg(t, `HKCU\P`)
			fake.SetValue(`HKCU\P`, "X", types.REG_SZ, "v")
			fake.SetDefault(`HKCU\P`, types.REG_SZ, "d")

			require.NoError(t, newEngine(fake).Delete(context.Background(), tt.req))
			assert.Equal(t, []string{tt.want}, fake.CallsWithVerb("delete"))
		})
	}
}

func TestDeleteKey_RemovesKey(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKCU\P\Child`)
	require.NoError(t, newEngine(fake).DeleteKey(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.False(t, fake.HasKey(`HKCU\P`))
	assert.True(t, fake.HasKey(`HKCU`))
}

func TestDeleteValue_NilNameTargetsDefault(t *testing.T) {
	fake := testutil.SetupFakeReg(t)
	fake.SetDefault(`HKCU\P`, types.REG_SZ, "d")
	fake.SetValue(`HKCU\P`, "Keep", types.REG_SZ, "k")

	require.NoError(t, newEngine(fake).DeleteValue(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.Equal(t, []string{"Keep"}, fake.ValueNames(`HKCU\P`))
}

func TestDelete_MissingIsNotAnError(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKCU\P`)
	e := newEngine(fake)

	assert.NoError(t, e.Delete(context.Background(), options.Request{Path: `HKCU\Gone`}))
	assert.NoError(t, e.Delete(context.Background(), options.Request{Path: `HKCU\P`, Name: named("Nope")}))
}

func TestDelete_FailurePropagates(t *testing.T) {
	fake := testutil.SetupFakeReg(t)
	err := newEngine(fake).Delete(context.Background(), options.Request{Path: `HKXX\P`})

	var regErr *types.Error
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, types.ErrKindExec, regErr.Kind)
	assert.Equal(t, "Invalid key name.", regErr.Msg)
	assert.Equal(t, `reg delete HKXX\P /f`, regErr.Command)
}

func TestClearValues(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKCU\P\Sub`)
	fake.SetValue(`HKCU\P`, "A", types.REG_SZ, "1")
	fake.SetDefault(`HKCU\P`, types.REG_SZ, "d")

	require.NoError(t, newEngine(fake).ClearValues(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.Empty(t, fake.ValueNames(`HKCU\P`))
	assert.True(t, fake.HasKey(`HKCU\P\Sub`))
	assert.Equal(t, []string{`delete HKCU\P /va /f`}, fake.CallsWithVerb("delete"))
}

func TestClearKeys_DeletesEachChild(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKCU\P\A\Deep`, `HKCU\P\B`)
	fake.SetValue(`HKCU\P`, "Keep", types.REG_SZ, "k")

	require.NoError(t, newEngine(fake).ClearKeys(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.Equal(t, []string{`delete HKCU\P\A /f`, `delete HKCU\P\B /f`}, fake.CallsWithVerb("delete"))
	assert.True(t, fake.HasKey(`HKCU\P`))
	assert.False(t, fake.HasKey(`HKCU\P\A`))
	assert.False(t, fake.HasKey(`HKCU\P\B`))
	assert.Equal(t, []string{"Keep"}, fake.ValueNames(`HKCU\P`))
}

func TestClearKeys_ParentWithoutValues(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKCU\P\A`, `HKCU\P\B`)
	fake.OmitKeyLineWithoutValues()

	require.NoError(t, newEngine(fake).ClearKeys(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.Equal(t, []string{`delete HKCU\P\A /f`, `delete HKCU\P\B /f`}, fake.CallsWithVerb("delete"))
	assert.False(t, fake.HasKey(`HKCU\P\A`))
	assert.False(t, fake.HasKey(`HKCU\P\B`))
}

func TestClearKeys_CarriesView(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKLM\SOFTWARE\P\A`)
	req := options.Request{Path: `HKLM\SOFTWARE\P`, Bits: 32, BitsArg: "/reg:32"}

	require.NoError(t, newEngine(fake).ClearKeys(context.Background(), req))
	assert.Equal(t, []string{`delete HKLM\SOFTWARE\P\A /f /reg:32`}, fake.CallsWithVerb("delete"))
}

func TestClearKeys_MissingKeyIsNoop(t *testing.T) {
	fake := testutil.SetupFakeReg(t)
	require.NoError(t, newEngine(fake).ClearKeys(context.Background(), options.Request{Path: `HKCU\Gone`}))
	assert.Empty(t, fake.CallsWithVerb("delete"))
}

// barrierExec blocks each delete until want deletes are in flight at once.
type barrierExec struct {
	want    int
	mu      sync.Mutex
	started int
	release chan struct{}
	paths   []string
}

func (b *barrierExec) Execute(_ context.Context, args ...string) (string, bool, error) {
	b.mu.Lock()
	b.started++
	b.paths = append(b.paths, args[1])
	if b.started == b.want {
		close(b.release)
	}
	b.mu.Unlock()

	select {
	case <-b.release:
		return "", true, nil
	case <-time.After(5 * time.Second):
		return "", false, errors.New("deletes did not run concurrently")
	}
}

type staticLister []string

func (s staticLister) Keys(context.Context, options.Request) ([]string, error) {
	return s, nil
}

func TestClearKeys_Concurrent(t *testing.T) {
	exec := &barrierExec{want: 2, release: make(chan struct{})}
	e := New(exec, staticLister{"A", "B"})

	require.NoError(t, e.ClearKeys(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.ElementsMatch(t, []string{`HKCU\P\A`, `HKCU\P\B`}, exec.paths)
}

func TestClear_RunsBothHalvesConcurrently(t *testing.T) {
	// ClearValues plus one subkey deletion.
	exec := &barrierExec{want: 2, release: make(chan struct{})}
	e := New(exec, staticLister{"A"})

	require.NoError(t, e.Clear(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.ElementsMatch(t, []string{`HKCU\P`, `HKCU\P\A`}, exec.paths)
}

func TestClear_EmptiesKey(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKCU\P\A`, `HKCU\P\B\C`)
	fake.SetValue(`HKCU\P`, "V", types.REG_DWORD, "0x1")

	require.NoError(t, newEngine(fake).Clear(context.Background(), options.Request{Path: `HKCU\P`}))
	assert.True(t, fake.HasKey(`HKCU\P`))
	assert.False(t, fake.HasKey(`HKCU\P\A`))
	assert.False(t, fake.HasKey(`HKCU\P\B`))
	assert.Empty(t, fake.ValueNames(`HKCU\P`))
}

func TestClear_FirstErrorWinsWithoutRollback(t *testing.T) {
	fake := testutil.SetupFakeReg(t, `HKCU\P\A`)
	fake.SetValue(`HKCU\P`, "V", types.REG_SZ, "x")
	fake.FailWith(`delete HKCU\P\A /f`, "ERROR: Access is denied.")

	err := newEngine(fake).Clear(context.Background(), options.Request{Path: `HKCU\P`})
	require.ErrorIs(t, err, types.ErrExec)
	assert.Contains(t, err.Error(), "Access is denied.")

	// The values branch already ran and is not undone.
	assert.Empty(t, fake.ValueNames(`HKCU\P`))
	assert.True(t, fake.HasKey(`HKCU\P\A`))
}

type failingLister struct{ err error }

func (f failingLister) Keys(context.Context, options.Request) ([]string, error) { return nil, f.err }

func TestClearKeys_ListErrorPropagates(t *testing.T) {
	boom := &types.Error{Kind: types.ErrKindExec, Msg: "boom", Command: "reg QUERY x"}
	e := New(&barrierExec{want: 1, release: make(chan struct{})}, failingLister{err: boom})

	err := e.ClearKeys(context.Background(), options.Request{Path: "x"})
	assert.Same(t, boom, err)
}
