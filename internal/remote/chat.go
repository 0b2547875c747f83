package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sunshinej01/second-hand/internal/models"
)

const (
	chatRoomsPath = "/rest/v1/chat_rooms"
	chatsPath     = "/rest/v1/chats"
)

const roomListSelect = "*," +
	"product:products(id,title,price,image_data,status)," +
	"buyer:buyer_id(nickname,avatar_url,manner_temperature)," +
	"seller:seller_id(nickname,avatar_url,manner_temperature)"

const messageSelect = "*," +
	"sender:sender_id(nickname,avatar_url)," +
	"receiver:receiver_id(nickname,avatar_url)"

// GetChatRooms fetches the caller's active rooms, most recently messaged
// first.
func (c *Client) GetChatRooms(ctx context.Context, token string) ([]models.ChatRoomRow, error) {
	q := url.Values{}
	q.Set("select", roomListSelect)
	q.Set("is_active", "eq.true")
	q.Set("order", "last_message_at.desc")

	var rooms []models.ChatRoomRow
	if err := c.do(ctx, http.MethodGet, chatRoomsPath, q, token, "", nil, &rooms); err != nil {
		return nil, fmt.Errorf("get chat rooms: %w", err)
	}
	return rooms, nil
}

// GetChatRoom fetches one room with its joined product and party profiles.
// It returns (nil, nil) when the room does not exist.
func (c *Client) GetChatRoom(ctx context.Context, token string, roomID int64) (*models.ChatRoomRow, error) {
	q := url.Values{}
	q.Set("select", roomListSelect)
	q.Set("id", "eq."+strconv.FormatInt(roomID, 10))
	q.Set("limit", "1")

	var rooms []models.ChatRoomRow
	if err := c.do(ctx, http.MethodGet, chatRoomsPath, q, token, "", nil, &rooms); err != nil {
		return nil, fmt.Errorf("get chat room: %w", err)
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	return &rooms[0], nil
}

// roomKeys is the subset of a room needed to scope message queries.
type roomKeys struct {
	ProductID int64  `json:"product_id"`
	BuyerID   string `json:"buyer_id"`
	SellerID  string `json:"seller_id"`
}

func (c *Client) getRoomKeys(ctx context.Context, token string, roomID int64) (*roomKeys, error) {
	q := url.Values{}
	q.Set("select", "product_id,buyer_id,seller_id")
	q.Set("id", "eq."+strconv.FormatInt(roomID, 10))
	q.Set("limit", "1")

	var rooms []roomKeys
	if err := c.do(ctx, http.MethodGet, chatRoomsPath, q, token, "", nil, &rooms); err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("chat room %d not found", roomID)
	}
	return &rooms[0], nil
}

// GetMessages fetches a page of the room's conversation in send order. The
// conversation is every message between the room's two parties about the
// room's product.
func (c *Client) GetMessages(ctx context.Context, token string, roomID int64, limit, offset int) ([]models.ChatMessage, error) {
	room, err := c.getRoomKeys(ctx, token, roomID)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	q := url.Values{}
	q.Set("select", messageSelect)
	q.Set("product_id", "eq."+strconv.FormatInt(room.ProductID, 10))
	q.Set("or", fmt.Sprintf("(and(sender_id.eq.%s,receiver_id.eq.%s),and(sender_id.eq.%s,receiver_id.eq.%s))",
		room.BuyerID, room.SellerID, room.SellerID, room.BuyerID))
	q.Set("order", "created_at.asc")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var messages []models.ChatMessage
	if err := c.do(ctx, http.MethodGet, chatsPath, q, token, "", nil, &messages); err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	return messages, nil
}

// GetOrCreateChatRoom returns the buyer's room for a product, creating it if
// this is the first contact.
func (c *Client) GetOrCreateChatRoom(ctx context.Context, token string, productID int64, buyerID string) (*models.ChatRoomRow, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("product_id", "eq."+strconv.FormatInt(productID, 10))
	q.Set("buyer_id", "eq."+buyerID)
	q.Set("limit", "1")

	var rooms []models.ChatRoomRow
	if err := c.do(ctx, http.MethodGet, chatRoomsPath, q, token, "", nil, &rooms); err != nil {
		return nil, fmt.Errorf("find chat room: %w", err)
	}
	if len(rooms) > 0 {
		return &rooms[0], nil
	}

	// Seller comes from the product row.
	product, err := c.GetListing(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find chat room: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %d not found", productID)
	}

	payload := []map[string]interface{}{{
		"product_id": productID,
		"buyer_id":   buyerID,
		"seller_id":  product.UserID,
	}}

	var created []models.ChatRoomRow
	err = c.do(ctx, http.MethodPost, chatRoomsPath, nil, token, "return=representation", payload, &created)
	if err != nil {
		return nil, fmt.Errorf("create chat room: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("create chat room: empty response")
	}
	return &created[0], nil
}

// SendMessage inserts one message. An empty messageType defaults to text.
func (c *Client) SendMessage(ctx context.Context, token string, productID int64, senderID, receiverID, message, messageType string) (*models.ChatMessage, error) {
	if messageType == "" {
		messageType = "text"
	}

	q := url.Values{}
	q.Set("select", messageSelect)

	payload := []map[string]interface{}{{
		"product_id":   productID,
		"sender_id":    senderID,
		"receiver_id":  receiverID,
		"message":      message,
		"message_type": messageType,
	}}

	var sent []models.ChatMessage
	err := c.do(ctx, http.MethodPost, chatsPath, q, token, "return=representation", payload, &sent)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if len(sent) == 0 {
		return nil, fmt.Errorf("send message: empty response")
	}
	return &sent[0], nil
}

// MarkMessagesRead marks everything addressed to the user in the room as
// read and resets their unread counter on the room.
func (c *Client) MarkMessagesRead(ctx context.Context, token string, roomID int64, userID string) error {
	room, err := c.getRoomKeys(ctx, token, roomID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	q := url.Values{}
	q.Set("product_id", "eq."+strconv.FormatInt(room.ProductID, 10))
	q.Set("receiver_id", "eq."+userID)
	q.Set("is_read", "eq.false")

	patch := map[string]interface{}{"is_read": true}
	if err := c.do(ctx, http.MethodPatch, chatsPath, q, token, "", patch, nil); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	counter := "unread_count_seller"
	if room.BuyerID == userID {
		counter = "unread_count_buyer"
	}

	rq := url.Values{}
	rq.Set("id", "eq."+strconv.FormatInt(roomID, 10))
	if err := c.do(ctx, http.MethodPatch, chatRoomsPath, rq, token, "", map[string]interface{}{counter: 0}, nil); err != nil {
		return fmt.Errorf("reset unread count: %w", err)
	}
	return nil
}
