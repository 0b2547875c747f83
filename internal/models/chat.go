package models

import (
	"strings"
	"time"
)

// ChatUser is the embedded profile projection the backend attaches to chat
// rows.
type ChatUser struct {
	Nickname          string  `json:"nickname"`
	AvatarURL         string  `json:"avatar_url"`
	MannerTemperature float64 `json:"manner_temperature"`
}

// ChatRoomRow is the chat_rooms table row, including the joined product and
// party projections.
type ChatRoomRow struct {
	ID                int64       `json:"id"`
	ProductID         int64       `json:"product_id"`
	BuyerID           string      `json:"buyer_id"`
	SellerID          string      `json:"seller_id"`
	LastMessage       string      `json:"last_message"`
	LastMessageAt     time.Time   `json:"last_message_at"`
	UnreadCountBuyer  int         `json:"unread_count_buyer"`
	UnreadCountSeller int         `json:"unread_count_seller"`
	IsActive          bool        `json:"is_active"`
	Product           *ListingRow `json:"product,omitempty"`
	Buyer             *ChatUser   `json:"buyer,omitempty"`
	Seller            *ChatUser   `json:"seller,omitempty"`
}

// ChatRoomView is the row projected for one side of the conversation: the
// other party's identity and the unread counter that belongs to the viewer.
type ChatRoomView struct {
	ID            int64       `json:"id"`
	ProductID     int64       `json:"product_id"`
	Product       *ListingRow `json:"product,omitempty"`
	OtherUser     ChatUser    `json:"other_user"`
	LastMessage   string      `json:"last_message"`
	LastMessageAt time.Time   `json:"last_message_at"`
	UnreadCount   int         `json:"unread_count"`
}

// ViewFor projects the room for the given viewer.
func (r *ChatRoomRow) ViewFor(userID string) ChatRoomView {
	view := ChatRoomView{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Product:       r.Product,
		LastMessage:   r.LastMessage,
		LastMessageAt: r.LastMessageAt,
	}

	if r.BuyerID == userID {
		view.UnreadCount = r.UnreadCountBuyer
		if r.Seller != nil {
			view.OtherUser = *r.Seller
		}
	} else {
		view.UnreadCount = r.UnreadCountSeller
		if r.Buyer != nil {
			view.OtherUser = *r.Buyer
		}
	}

	return view
}

// ChatMessage is the chats table row.
type ChatMessage struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	Message     string    `json:"message"`
	MessageType string    `json:"message_type"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	Sender      *ChatUser `json:"sender,omitempty"`
	Receiver    *ChatUser `json:"receiver,omitempty"`
}

// SendMessageRequest carries one message into an existing room. Product and
// receiver are derived from the room, never trusted from the caller.
type SendMessageRequest struct {
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
}

func (r *SendMessageRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Message) == "" {
		errors["message"] = "메시지를 입력해주세요."
	}

	return errors
}
