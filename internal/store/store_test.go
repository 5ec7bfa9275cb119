package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture = []model.Item{
	{ID: 1638867600003, Text: "walk dog"},
	{ID: 1638867600002, Text: "buy milk", Checked: true},
	{ID: 1638867600001, Text: "old stuff", Removed: true},
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Backend{
		"memory": NewMemory(),
		"json":   jsonstore.New(filepath.Join(t.TempDir(), "todos.json")),
		"sqlite": sq,
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(b, "")
			require.NoError(t, repo.Save(ctx, fixture))

			got, err := repo.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(fixture, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRepository_LoadMissingKey(t *testing.T) {
	repo := NewRepository(NewMemory(), "nothing-here")
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, NewRepository(m, "k").Save(ctx, nil))

	raw, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestRepository_MissingFlagsLoadAsFalse(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, DefaultKey, []byte(`[{"id":7,"text":"legacy","colour":"red"}]`)))

	got, err := NewRepository(m, "").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 7, Text: "legacy"}}, got)
}

func TestRepository_RejectsWrongShape(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"object":        `{"id":1,"text":"a"}`,
		"null":          `null`,
		"missing text":  `[{"id":1}]`,
		"string id":     `[{"id":"1","text":"a"}]`,
		"fractional id": `[{"id":1.5,"text":"a"}]`,
		"not json":      `[{`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			m := NewMemory()
			require.NoError(t, m.Set(ctx, DefaultKey, []byte(payload)))
			_, err := NewRepository(m, "").Load(ctx)
			assert.Error(t, err)
		})
	}
}

func TestOpen_Drivers(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(config.Storage{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open(config.Storage{Driver: config.DriverJSON, Path: filepath.Join(dir, "t.json")})
	require.NoError(t, err)
	assert.IsType(t, &jsonstore.Store{}, b)

	b, err = Open(config.Storage{Driver: config.DriverSQLite, Path: filepath.Join(dir, "t.db")})
	require.NoError(t, err)
	assert.IsType(t, &sqlitestore.Store{}, b)
	require.NoError(t, b.Close())

	_, err = Open(config.Storage{Driver: "floppy"})
	assert.Error(t, err)
}
