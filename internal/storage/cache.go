package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/sunshinej01/second-hand/internal/models"
)

// Cache key names. They mirror the localStorage keys the web client used for
// the same records, so a migrated data directory keeps its meaning.
const (
	listingsKey       = "products"
	recentSearchesKey = "recentSearches"
	commentsKeyPrefix = "comments_"
)

// MaxRecentSearches caps the recent-search history.
const MaxRecentSearches = 10

// Cache is the local cache store: durable, string-keyed JSON persistence
// shared by every component in the process. Reads fail soft: a corrupt or
// unreadable key logs a warning and reads as empty. Writes report their
// failure to the caller but never panic; the write paths decide how to
// degrade.
type Cache struct {
	mu     sync.Mutex
	dir    string
	stores map[string]*JSONStore
}

// NewCache creates the cache rooted at dataDir, creating it if needed.
func NewCache(dataDir string) (*Cache, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &Cache{
		dir:    dataDir,
		stores: make(map[string]*JSONStore),
	}, nil
}

func (c *Cache) store(key string) *JSONStore {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.stores[key]; ok {
		return s
	}
	s := NewJSONStore(filepath.Join(c.dir, key+".json"))
	c.stores[key] = s
	return s
}

func commentsKey(listingID int64) string {
	return fmt.Sprintf("%s%d", commentsKeyPrefix, listingID)
}

// Listings returns the cached listing collection, newest first as written.
func (c *Cache) Listings() []models.Listing {
	var listings []models.Listing
	if err := c.store(listingsKey).Load(&listings); err != nil {
		log.Printf("Warning: failed to read cached listings: %v", err)
		return nil
	}
	return listings
}

// ListingCount reports how many listings the cache currently holds. Used by
// the refresh heuristic, which only re-merges when the count moves.
func (c *Cache) ListingCount() int {
	return len(c.Listings())
}

// SaveListings replaces the cached listing collection.
func (c *Cache) SaveListings(listings []models.Listing) error {
	if err := c.store(listingsKey).Save(listings); err != nil {
		log.Printf("Warning: failed to save cached listings: %v", err)
		return err
	}
	return nil
}

// PrependListing puts a new listing at the head of the cached collection.
func (c *Cache) PrependListing(l models.Listing) error {
	existing := c.Listings()
	return c.SaveListings(append([]models.Listing{l}, existing...))
}

// Comments returns the cached comments for one listing, newest first.
func (c *Cache) Comments(listingID int64) []models.Comment {
	var comments []models.Comment
	if err := c.store(commentsKey(listingID)).Load(&comments); err != nil {
		log.Printf("Warning: failed to read comments for listing %d: %v", listingID, err)
		return nil
	}
	return comments
}

// PrependComment puts a new comment at the head of a listing's comment
// sequence.
func (c *Cache) PrependComment(listingID int64, cm models.Comment) error {
	updated := append([]models.Comment{cm}, c.Comments(listingID)...)
	if err := c.store(commentsKey(listingID)).Save(updated); err != nil {
		log.Printf("Warning: failed to save comment for listing %d: %v", listingID, err)
		return err
	}
	return nil
}

// RecentSearches returns the recorded search history, most recent first.
func (c *Cache) RecentSearches() []string {
	var searches []string
	if err := c.store(recentSearchesKey).Load(&searches); err != nil {
		log.Printf("Warning: failed to read recent searches: %v", err)
		return nil
	}
	return searches
}

// AddRecentSearch records a query at the front of the history. A repeated
// query moves to the front instead of duplicating, and the history never
// grows past MaxRecentSearches.
func (c *Cache) AddRecentSearch(query string) {
	updated := []string{query}
	for _, s := range c.RecentSearches() {
		if s != query {
			updated = append(updated, s)
		}
	}
	if len(updated) > MaxRecentSearches {
		updated = updated[:MaxRecentSearches]
	}

	if err := c.store(recentSearchesKey).Save(updated); err != nil {
		log.Printf("Warning: failed to save recent searches: %v", err)
	}
}

// ClearRecentSearches wipes the search history.
func (c *Cache) ClearRecentSearches() {
	if err := c.store(recentSearchesKey).Delete(); err != nil {
		log.Printf("Warning: failed to clear recent searches: %v", err)
	}
}
