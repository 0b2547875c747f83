package services

import (
	"context"
	"strings"

	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/reconcile"
	"github.com/sunshinej01/second-hand/internal/storage"
)

// SearchService matches queries against the reconciled listing collection
// and the community board, and keeps the recent-search history.
type SearchService struct {
	cache    *storage.Cache
	listings *ListingService
	posts    []models.CommunityPost
}

func NewSearchService(cache *storage.Cache, listings *ListingService, posts []models.CommunityPost) *SearchService {
	return &SearchService{cache: cache, listings: listings, posts: posts}
}

// SearchResult carries both match sets so the search page can tab between
// products and community posts from one request.
type SearchResult struct {
	Products       []models.Listing       `json:"products"`
	Community      []models.CommunityPost `json:"community"`
	ProductCount   int                    `json:"productCount"`
	CommunityCount int                    `json:"communityCount"`
}

// Search matches case-insensitively against title and description. A
// non-empty query is recorded to the recent-search history; recording
// failures are logged and never fail the search itself.
func (s *SearchService) Search(ctx context.Context, query string) *SearchResult {
	query = strings.TrimSpace(query)

	if query != "" {
		s.cache.AddRecentSearch(query)
	}

	products := reconcile.Filter(s.listings.List(ctx), query)
	community := reconcile.FilterPosts(s.posts, query)

	return &SearchResult{
		Products:       products,
		Community:      community,
		ProductCount:   len(products),
		CommunityCount: len(community),
	}
}

func (s *SearchService) RecentSearches() []string {
	return s.cache.RecentSearches()
}

func (s *SearchService) ClearRecentSearches() {
	s.cache.ClearRecentSearches()
}

// CommunityPosts returns the board, optionally filtered.
func (s *SearchService) CommunityPosts(query string) []models.CommunityPost {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.posts
	}
	return reconcile.FilterPosts(s.posts, query)
}

// CommunityPost finds one board post by identifier.
func (s *SearchService) CommunityPost(id int64) (*models.CommunityPost, bool) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i], true
		}
	}
	return nil, false
}
