package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunshinej01/second-hand/internal/models"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	return cache
}

func TestCacheListingsRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	assert.Empty(t, cache.Listings())
	assert.Zero(t, cache.ListingCount())

	listings := []models.Listing{
		{ID: 2, Title: "second", CreatedAt: time.Now()},
		{ID: 1, Title: "first", CreatedAt: time.Now().Add(-time.Hour)},
	}
	require.NoError(t, cache.SaveListings(listings))

	got := cache.Listings()
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, 2, cache.ListingCount())
}

func TestCachePrependListing(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.PrependListing(models.Listing{ID: 1, Title: "old"}))
	require.NoError(t, cache.PrependListing(models.Listing{ID: 2, Title: "new"}))

	got := cache.Listings()
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Title)
	assert.Equal(t, "old", got[1].Title)
}

func TestCacheCorruptListingsReadAsEmpty(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0644))

	assert.Empty(t, cache.Listings())

	// A save replaces the corrupt file and reads recover.
	require.NoError(t, cache.SaveListings([]models.Listing{{ID: 1}}))
	assert.Len(t, cache.Listings(), 1)
}

func TestCacheCommentsPerListing(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.PrependComment(10, models.Comment{ID: 1, Text: "첫 댓글"}))
	require.NoError(t, cache.PrependComment(10, models.Comment{ID: 2, Text: "두번째"}))
	require.NoError(t, cache.PrependComment(11, models.Comment{ID: 3, Text: "다른 상품"}))

	got := cache.Comments(10)
	require.Len(t, got, 2)
	assert.Equal(t, "두번째", got[0].Text)
	assert.Equal(t, "첫 댓글", got[1].Text)

	require.Len(t, cache.Comments(11), 1)
	assert.Empty(t, cache.Comments(12))
}

func TestRecentSearchesDedupeAndCap(t *testing.T) {
	cache := newTestCache(t)

	cache.AddRecentSearch("아이폰")
	cache.AddRecentSearch("맥북")
	cache.AddRecentSearch("아이폰")

	got := cache.RecentSearches()
	require.Equal(t, []string{"아이폰", "맥북"}, got)

	for i := 0; i < MaxRecentSearches+5; i++ {
		cache.AddRecentSearch(string(rune('a' + i)))
	}
	assert.Len(t, cache.RecentSearches(), MaxRecentSearches)
}

func TestClearRecentSearches(t *testing.T) {
	cache := newTestCache(t)

	cache.AddRecentSearch("아이폰")
	require.NotEmpty(t, cache.RecentSearches())

	cache.ClearRecentSearches()
	assert.Empty(t, cache.RecentSearches())
}

func TestJSONStoreAtomicSave(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(filepath.Join(dir, "value.json"))

	assert.False(t, store.Exists())

	require.NoError(t, store.Save(map[string]int{"n": 1}))
	assert.True(t, store.Exists())

	// No temp file left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "value.json", entries[0].Name())

	var got map[string]int
	require.NoError(t, store.Load(&got))
	assert.Equal(t, 1, got["n"])

	require.NoError(t, store.Delete())
	assert.False(t, store.Exists())
	require.NoError(t, store.Delete())
}
