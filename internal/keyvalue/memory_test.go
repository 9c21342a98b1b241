package keyvalue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type doc struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}

	require.NoError(t, s.SetJSON(ctx, "k", doc{Name: "a", N: 2}))

	var got doc
	hit, err := s.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, doc{Name: "a", N: 2}, got)
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore()

	var got int
	hit, err := s.GetJSON(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStoreCorruptTreatedAsMiss(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetJSON(ctx, "k", "a string"))

	var got int
	hit, err := s.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	// corrupt record was dropped
	var str string
	hit, err = s.GetJSON(ctx, "k", &str)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStoreDel(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetJSON(ctx, "a", 1))
	require.NoError(t, s.SetJSON(ctx, "b", 2))
	require.NoError(t, s.Del(ctx, "a", "b", "missing"))

	var got int
	hit, _ := s.GetJSON(ctx, "a", &got)
	assert.False(t, hit)
}
