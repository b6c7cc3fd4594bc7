package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

func TestResultCache_GetPut(t *testing.T) {
	cache := newResultCache(10)

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	results := []domain.SearchResult{{ArticleID: 1, Score: 0.5}}
	cache.Put("k", results)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, results, got)
	assert.Equal(t, 1, cache.Len())
}

func TestResultCache_ReturnsCopy(t *testing.T) {
	cache := newResultCache(10)
	cache.Put("k", []domain.SearchResult{{ArticleID: 1, Score: 0.5}})

	got, ok := cache.Get("k")
	require.True(t, ok)
	got[0].Score = 99

	again, ok := cache.Get("k")
	require.True(t, ok)
	assert.InDelta(t, 0.5, again[0].Score, 1e-9, "callers must not mutate cached entries")
}

func TestResultCache_FIFOEviction(t *testing.T) {
	cache := newResultCache(3)
	for i := 0; i < 3; i++ {
		cache.Put(fmt.Sprintf("k%d", i), nil)
	}

	// A hit on the oldest key must not protect it: eviction is FIFO,
	// not LRU.
	_, ok := cache.Get("k0")
	require.True(t, ok)

	cache.Put("k3", nil)

	_, ok = cache.Get("k0")
	assert.False(t, ok, "oldest inserted key evicted first")
	for _, key := range []string{"k1", "k2", "k3"} {
		_, ok := cache.Get(key)
		assert.True(t, ok, "key %s should survive", key)
	}
	assert.Equal(t, 3, cache.Len())
}

func TestResultCache_OverwriteKeepsAge(t *testing.T) {
	cache := newResultCache(2)
	cache.Put("a", []domain.SearchResult{{ArticleID: 1}})
	cache.Put("b", nil)
	cache.Put("a", []domain.SearchResult{{ArticleID: 2}})

	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), got[0].ArticleID)

	// "a" is still the oldest entry and goes first.
	cache.Put("c", nil)
	_, ok = cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)
}

func TestResultCache_ZeroCapacityUsesDefault(t *testing.T) {
	cache := newResultCache(0)
	cache.Put("k", nil)
	assert.Equal(t, 1, cache.Len())
}
