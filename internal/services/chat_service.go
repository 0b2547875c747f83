package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/remote"
)

var ErrChatRoomNotFound = errors.New("chat room not found")

// ChatService projects the backend chat tables for one side of a
// conversation. Chat has no local cache; it needs a signed-in user and a
// reachable backend.
type ChatService struct {
	remote       *remote.Client
	pollInterval time.Duration
}

func NewChatService(rc *remote.Client, pollInterval time.Duration) *ChatService {
	return &ChatService{remote: rc, pollInterval: pollInterval}
}

// Rooms lists the user's active rooms, each from the viewer's perspective.
func (s *ChatService) Rooms(ctx context.Context, token, userID string) ([]models.ChatRoomView, error) {
	rows, err := s.remote.GetChatRooms(ctx, token)
	if err != nil {
		return nil, err
	}

	views := make([]models.ChatRoomView, 0, len(rows))
	for i := range rows {
		if rows[i].BuyerID != userID && rows[i].SellerID != userID {
			continue
		}
		views = append(views, rows[i].ViewFor(userID))
	}
	return views, nil
}

// Messages returns a page of one room's history, oldest first.
func (s *ChatService) Messages(ctx context.Context, token string, roomID int64, limit, offset int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.remote.GetMessages(ctx, token, roomID, limit, offset)
}

// OpenRoom finds the buyer's room for a listing, creating it on first
// contact, and returns it from the buyer's perspective.
func (s *ChatService) OpenRoom(ctx context.Context, token, buyerID string, productID int64) (*models.ChatRoomView, error) {
	row, err := s.remote.GetOrCreateChatRoom(ctx, token, productID, buyerID)
	if err != nil {
		return nil, err
	}
	view := row.ViewFor(buyerID)
	return &view, nil
}

// Send posts a message into a room. The receiver is the room party that is
// not the sender.
func (s *ChatService) Send(ctx context.Context, token string, roomID int64, senderID string, req *models.SendMessageRequest) (*models.ChatMessage, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.New("message is required")
	}

	room, err := s.remote.GetChatRoom(ctx, token, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrChatRoomNotFound
	}

	receiverID := room.BuyerID
	if senderID == room.BuyerID {
		receiverID = room.SellerID
	}

	return s.remote.SendMessage(ctx, token, room.ProductID, senderID, receiverID, message, req.MessageType)
}

// MarkRead clears the unread state of messages addressed to the reader.
func (s *ChatService) MarkRead(ctx context.Context, token string, roomID int64, readerID string) error {
	return s.remote.MarkMessagesRead(ctx, token, roomID, readerID)
}

// WatchRoom starts a change feed delivering the room's new messages.
func (s *ChatService) WatchRoom(ctx context.Context, token string, roomID int64, onMessage func(models.ChatMessage)) *remote.Subscription {
	return s.remote.SubscribeRoom(ctx, token, roomID, s.pollInterval, onMessage)
}

// WatchRooms starts a change feed firing for each of the user's rooms that
// receives activity.
func (s *ChatService) WatchRooms(ctx context.Context, token, userID string, onUpdate func(models.ChatRoomRow)) *remote.Subscription {
	return s.remote.SubscribeRoomList(ctx, token, userID, s.pollInterval, onUpdate)
}
