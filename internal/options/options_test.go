package options

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestResolve_OptionsOverridePositional(t *testing.T) {
	name := types.Named("Positional")
	req := Resolve(
		Args{Path: `HKCU\A`, Name: &name, Data: regtext.String("D1")},
		&Options{Data: regtext.String("D2")},
		&Defaults{},
	)
	assert.Equal(t, regtext.String("D2"), req.Data)
	assert.Equal(t, `HKCU\A`, req.Path)
	require.NotNil(t, req.Name)
	assert.Equal(t, "Positional", req.Name.Name())
}

func TestResolve_Precedence(t *testing.T) {
	defaults := &Defaults{Lowercase: true, Format: "simple", Bits: 32}

	t.Run("defaults fill gaps", func(t *testing.T) {
		req := Resolve(Args{Path: `HKLM\X`}, nil, defaults)
		assert.Equal(t, 32, req.Bits)
		assert.Equal(t, regtext.FlagView32, req.BitsArg)
		assert.Equal(t, "simple", req.Format)
		require.NotNil(t, req.Lowercase)
		assert.True(t, *req.Lowercase)
	})

	t.Run("options beat defaults", func(t *testing.T) {
		req := Resolve(Args{Path: `HKLM\X`}, &Options{
			Bits:      ptr(64),
			Lowercase: ptr(false),
			Format:    ptr("complex"),
		}, defaults)
		assert.Equal(t, 64, req.Bits)
		assert.Equal(t, regtext.FlagView64, req.BitsArg)
		assert.Equal(t, "complex", req.Format)
		assert.False(t, *req.Lowercase)
	})

	t.Run("options path beats positional path", func(t *testing.T) {
		req := Resolve(Args{Path: `HKLM\X`}, &Options{Path: ptr("HKCU/Y")}, defaults)
		assert.Equal(t, `HKCU\Y`, req.Path)
	})

	t.Run("options name beats positional name", func(t *testing.T) {
		pos := types.Named("a")
		req := Resolve(Args{Path: "HKCU", Name: &pos}, &Options{Name: &types.DefaultValue}, defaults)
		require.NotNil(t, req.Name)
		assert.True(t, req.Name.IsDefault())
	})
}

func TestResolve_WithoutDefaults(t *testing.T) {
	req := Resolve(Args{Path: " HKCU/Software "}, nil, nil)
	assert.Equal(t, Request{Path: `HKCU\Software`}, req)
}

func TestResolve_UnsetFieldsStayAbsent(t *testing.T) {
	req := Resolve(Args{Path: "HKCU"}, &Options{}, &Defaults{})
	assert.Nil(t, req.Name)
	assert.Nil(t, req.Data)
	assert.Nil(t, req.Type)
	assert.Zero(t, req.Bits)
	assert.Empty(t, req.BitsArg)
	assert.Empty(t, req.Format)
	assert.False(t, req.HasName())
}

func TestResolve_TypeOnlyFromOptions(t *testing.T) {
	req := Resolve(Args{Path: "HKCU", Data: regtext.Int(1)}, &Options{Type: ptr(types.REG_QWORD)}, nil)
	require.NotNil(t, req.Type)
	assert.Equal(t, types.REG_QWORD, *req.Type)
}

func TestResolve_InvalidBitsDropped(t *testing.T) {
	for _, bits := range []int{0, 1, 16, 63, 128, -64} {
		req := Resolve(Args{Path: "HKCU"}, &Options{Bits: ptr(bits)}, nil)
		assert.Zero(t, req.Bits, "bits %d", bits)
		assert.Empty(t, req.BitsArg, "bits %d", bits)
	}
}

func TestBitsArg(t *testing.T) {
	assert.Equal(t, "/reg:64", BitsArg(64))
	assert.Equal(t, "/reg:32", BitsArg(32))
	assert.Equal(t, "", BitsArg(0))
	assert.Equal(t, "", BitsArg(48))
}

func TestStore(t *testing.T) {
	s := NewStore(Defaults{Bits: 64})
	before := s.Resolve(Args{Path: "HKCU"}, nil)

	s.Update(func(d *Defaults) { d.Bits = 32 })
	after := s.Resolve(Args{Path: "HKCU"}, nil)

	assert.Equal(t, regtext.FlagView64, before.BitsArg)
	assert.Equal(t, regtext.FlagView32, after.BitsArg)
	assert.Equal(t, 32, s.Get().Bits)

	got := s.Get()
	got.Bits = 64
	assert.Equal(t, 32, s.Get().Bits, "Get must return a copy")
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := NewStore(Defaults{})
	const writers = 100

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(d *Defaults) { d.Bits++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, writers, s.Get().Bits)
}

func TestStore_DebugEnablesLogging(t *testing.T) {
	require.NoError(t, logger.Init(logger.Options{Enabled: false}))
	t.Cleanup(func() { _ = logger.Init(logger.Options{Enabled: false}) })

	s := NewStore(Defaults{})
	assert.False(t, logger.L.Enabled(context.Background(), slog.LevelDebug))

	s.Update(func(d *Defaults) { d.Debug = true })
	assert.True(t, logger.L.Enabled(context.Background(), slog.LevelDebug))

	s.Set(Defaults{})
	assert.False(t, logger.L.Enabled(context.Background(), slog.LevelDebug))
}
