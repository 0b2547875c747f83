package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunshinej01/second-hand/internal/middleware"
	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/services"
)

type ListingHandler struct {
	listingService *services.ListingService
	commentService *services.CommentService
}

func NewListingHandler(listingService *services.ListingService, commentService *services.CommentService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		commentService: commentService,
	}
}

func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings := h.listingService.List(r.Context())
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(listings))
}

func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "listingId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid listing ID"))
		return
	}

	detail, err := h.listingService.Get(r.Context(), id)
	if err != nil {
		if err == services.ErrListingNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Listing not found"))
			return
		}
		log.Printf("[GetListing] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get listing"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(detail))
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CreateListing] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	result, err := h.listingService.Create(r.Context(), userID, &req)
	if err != nil {
		// Neither the backend nor the local cache retained the record.
		log.Printf("[CreateListing] Service error: %v", err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to create listing"))
		return
	}

	if !result.Remote {
		writeJSON(w, http.StatusAccepted,
			models.NewNoticeResponse(result.Listing, "오프라인 모드로 저장되었습니다."))
		return
	}

	log.Printf("[CreateListing] Listing created: %d", result.Listing.ID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(result.Listing))
}

func (h *ListingHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "listingId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid listing ID"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.commentService.List(id)))
}

func (h *ListingHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "listingId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid listing ID"))
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	comment, err := h.commentService.Add(id, req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadRequest,
			models.NewValidationErrorResponse(map[string]string{"text": "댓글 내용을 입력해주세요."}))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(comment))
}
