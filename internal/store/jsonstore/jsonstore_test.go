package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", DataFileName))
	v, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSetGet_KeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DataFileName)
	s := New(path)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte(`[1,2]`)))
	require.NoError(t, s.Set(ctx, "b", []byte(`{"x":true}`)))
	require.NoError(t, s.Set(ctx, "a", []byte(`[3]`)))

	v, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[3]`, string(v))

	v, ok, err = s.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"x":true}`, string(v))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc, 2)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}

func TestSet_RejectsInvalidJSON(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), DataFileName))
	assert.Error(t, s.Set(context.Background(), "k", []byte("{nope")))
}

func TestGet_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, _, err := New(path).Get(context.Background(), "k")
	assert.Error(t, err)
}
