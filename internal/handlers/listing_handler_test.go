package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/reconcile"
	"github.com/sunshinej01/second-hand/internal/remote"
	"github.com/sunshinej01/second-hand/internal/services"
	"github.com/sunshinej01/second-hand/internal/storage"
)

// newTestRouter wires the listing and search routes against a dead backend,
// so everything runs on seeds and the local cache.
func newTestRouter(t *testing.T) *chi.Mux {
	return newTestRouterAt(t, t.TempDir())
}

func newTestRouterAt(t *testing.T, dataDir string) *chi.Mux {
	t.Helper()

	cache, err := storage.NewCache(dataDir)
	require.NoError(t, err)

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	backend := remote.NewClient(url, "anon-key", time.Second)

	now := time.Now()
	listingService := services.NewListingService(cache, backend, reconcile.Seeds(now))
	commentService := services.NewCommentService(cache)
	searchService := services.NewSearchService(cache, listingService, reconcile.CommunityPosts(now))

	listingHandler := NewListingHandler(listingService, commentService)
	searchHandler := NewSearchHandler(searchService)

	r := chi.NewRouter()
	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", listingHandler.ListListings)
		r.Post("/", listingHandler.CreateListing)
		r.Route("/{listingId}", func(r chi.Router) {
			r.Get("/", listingHandler.GetListing)
			r.Get("/comments", listingHandler.ListComments)
			r.Post("/comments", listingHandler.CreateComment)
		})
	})
	r.Route("/api/search", func(r chi.Router) {
		r.Get("/", searchHandler.Search)
		r.Get("/recent", searchHandler.RecentSearches)
		r.Delete("/recent", searchHandler.ClearRecentSearches)
	})
	r.Route("/api/community", func(r chi.Router) {
		r.Get("/", searchHandler.ListCommunityPosts)
		r.Get("/{postId}", searchHandler.GetCommunityPost)
	})
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestListListingsReturnsSeeds(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/listings", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	listings, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, listings, 6)
}

func TestCreateListingOfflineNotice(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/listings", models.CreateListingRequest{
		Title:       "abcde",
		Description: strings.Repeat("한", 50),
		Price:       1000,
		Image:       models.ImageTag{Color: "#4338CA", Icon: "📱"},
		Location:    "서울 강남구",
		TradeMethod: models.TradeMethodDirect,
	})

	// The backend is down, so the write lands in the local cache and the
	// response carries the offline notice.
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Notice)

	rec, resp = doJSON(t, router, http.MethodGet, "/api/listings", nil)
	require.True(t, resp.Success)
	listings := resp.Data.([]interface{})
	require.Len(t, listings, 7)

	head := listings[0].(map[string]interface{})
	assert.Equal(t, "abcde", head["title"])
	assert.Equal(t, false, head["from_remote"])
}

func TestCreateListingTotalFailure(t *testing.T) {
	dir := t.TempDir()
	// With the backend dead and the listings temp path blocked, no store
	// retains the record; the write is a hard failure.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "products.json.tmp"), 0755))
	router := newTestRouterAt(t, dir)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/listings", models.CreateListingRequest{
		Title:       "abcde",
		Description: strings.Repeat("한", 50),
		Price:       1000,
		Image:       models.ImageTag{Color: "#4338CA", Icon: "📱"},
		Location:    "서울 강남구",
		TradeMethod: models.TradeMethodDirect,
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestCreateListingValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/listings", models.CreateListingRequest{
		Title:       "abcd",
		Description: "짧음",
		Price:       0,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Errors)

	fields := resp.Errors.(map[string]interface{})
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "price")

	// Nothing was written.
	rec, resp = doJSON(t, router, http.MethodGet, "/api/listings", nil)
	assert.Len(t, resp.Data.([]interface{}), 6)
}

func TestGetListingDetail(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/listings/-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	detail := resp.Data.(map[string]interface{})
	assert.Contains(t, detail, "listing")
	assert.Contains(t, detail, "seller")
	assert.Contains(t, detail, "details")
}

func TestGetListingNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/listings/424242", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/listings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/listings/-1/comments",
		map[string]string{"text": "네고 가능한가요?"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, resp.Success)

	comment := resp.Data.(map[string]interface{})
	assert.Equal(t, "네고 가능한가요?", comment["text"])
	assert.Contains(t, comment["author"], "사용자")

	rec, resp = doJSON(t, router, http.MethodGet, "/api/listings/-1/comments", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data.([]interface{}), 1)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/listings/-1/comments",
		map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/search?q=아이폰", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	result := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, result["products"])

	// The query is now in the recent history.
	rec, resp = doJSON(t, router, http.MethodGet, "/api/search/recent", nil)
	require.True(t, resp.Success)
	recent := resp.Data.([]interface{})
	require.Len(t, recent, 1)
	assert.Equal(t, "아이폰", recent[0])

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/search/recent", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, resp = doJSON(t, router, http.MethodGet, "/api/search/recent", nil)
	assert.Empty(t, resp.Data)
}

func TestCommunityEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/community", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	posts := resp.Data.([]interface{})
	require.Len(t, posts, 3)

	rec, resp = doJSON(t, router, http.MethodGet, "/api/community/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	post := resp.Data.(map[string]interface{})
	assert.Equal(t, "2030 동네친구 구해요", post["title"])

	rec, _ = doJSON(t, router, http.MethodGet, "/api/community/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
