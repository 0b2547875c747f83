package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/services"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	result := h.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}

func (h *SearchHandler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	searches := h.searchService.RecentSearches()
	if searches == nil {
		searches = []string{}
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(searches))
}

func (h *SearchHandler) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	h.searchService.ClearRecentSearches()
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *SearchHandler) ListCommunityPosts(w http.ResponseWriter, r *http.Request) {
	posts := h.searchService.CommunityPosts(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *SearchHandler) GetCommunityPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid post ID"))
		return
	}

	post, ok := h.searchService.CommunityPost(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}
