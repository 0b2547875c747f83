package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunshinej01/second-hand/internal/middleware"
	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/remote"
	"github.com/sunshinej01/second-hand/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	token := middleware.GetAccessToken(r.Context())

	rooms, err := h.chatService.Rooms(r.Context(), token, userID)
	if err != nil {
		log.Printf("[ListRooms] Service error: %v", err)
		writeJSON(w, remoteStatus(err), models.NewErrorResponse("Failed to list chat rooms"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(rooms))
}

func (h *ChatHandler) OpenRoom(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	token := middleware.GetAccessToken(r.Context())

	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	room, err := h.chatService.OpenRoom(r.Context(), token, userID, req.ProductID)
	if err != nil {
		log.Printf("[OpenRoom] Service error: %v", err)
		writeJSON(w, remoteStatus(err), models.NewErrorResponse("Failed to open chat room"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(room))
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetAccessToken(r.Context())

	roomID, err := strconv.ParseInt(chi.URLParam(r, "roomId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid room ID"))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.chatService.Messages(r.Context(), token, roomID, limit, offset)
	if err != nil {
		log.Printf("[ListMessages] Service error: %v", err)
		writeJSON(w, remoteStatus(err), models.NewErrorResponse("Failed to list messages"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(messages))
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	token := middleware.GetAccessToken(r.Context())

	roomID, err := strconv.ParseInt(chi.URLParam(r, "roomId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid room ID"))
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	message, err := h.chatService.Send(r.Context(), token, roomID, userID, &req)
	if err != nil {
		if err == services.ErrChatRoomNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Chat room not found"))
			return
		}
		log.Printf("[SendMessage] Service error: %v", err)
		writeJSON(w, remoteStatus(err), models.NewErrorResponse("Failed to send message"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(message))
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	token := middleware.GetAccessToken(r.Context())

	roomID, err := strconv.ParseInt(chi.URLParam(r, "roomId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid room ID"))
		return
	}

	if err := h.chatService.MarkRead(r.Context(), token, roomID, userID); err != nil {
		log.Printf("[MarkRead] Service error: %v", err)
		writeJSON(w, remoteStatus(err), models.NewErrorResponse("Failed to mark messages read"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

// remoteStatus maps a backend failure to the status the client sees. Auth
// failures pass through; everything else is a gateway problem.
func remoteStatus(err error) int {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			return apiErr.Status
		}
	}
	return http.StatusBadGateway
}
