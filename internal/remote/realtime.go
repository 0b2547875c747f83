package remote

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sunshinej01/second-hand/internal/models"
)

// The web client consumed the backend's realtime change feed directly. This
// service gets the same effect by polling the tables on a short interval and
// firing the callback once per new row, in the backend's commit order within
// each poll.

// Subscription is a handle on a running change feed.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Unsubscribe stops the feed and waits for the poller to exit.
func (s *Subscription) Unsubscribe() {
	s.cancel()
	<-s.done
}

// SubscribeRoom watches a chat room and fires onMessage for every message
// inserted after the subscription started.
func (c *Client) SubscribeRoom(ctx context.Context, token string, roomID int64, interval time.Duration, onMessage func(models.ChatMessage)) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)

		var lastID int64
		primed := false

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			messages, err := c.roomMessagesAfter(ctx, token, roomID, lastID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Warning: chat room %d poll failed: %v", roomID, err)
			}
			for _, m := range messages {
				if m.ID > lastID {
					lastID = m.ID
				}
				// The first poll only primes the cursor; history is not an event.
				if primed {
					onMessage(m)
				}
			}
			primed = true

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return sub
}

func (c *Client) roomMessagesAfter(ctx context.Context, token string, roomID, afterID int64) ([]models.ChatMessage, error) {
	room, err := c.getRoomKeys(ctx, token, roomID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("select", messageSelect)
	q.Set("product_id", "eq."+strconv.FormatInt(room.ProductID, 10))
	q.Set("or", fmt.Sprintf("(and(sender_id.eq.%s,receiver_id.eq.%s),and(sender_id.eq.%s,receiver_id.eq.%s))",
		room.BuyerID, room.SellerID, room.SellerID, room.BuyerID))
	q.Set("id", "gt."+strconv.FormatInt(afterID, 10))
	q.Set("order", "id.asc")

	var messages []models.ChatMessage
	if err := c.do(ctx, http.MethodGet, chatsPath, q, token, "", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SubscribeRoomList watches every room the user participates in and fires
// onUpdate for each room whose last activity moved since the subscription
// started.
func (c *Client) SubscribeRoomList(ctx context.Context, token, userID string, interval time.Duration, onUpdate func(models.ChatRoomRow)) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)

		var cursor time.Time
		primed := false

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			rooms, err := c.roomsUpdatedAfter(ctx, token, userID, cursor)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Warning: chat room list poll failed: %v", err)
			}
			for _, r := range rooms {
				if r.LastMessageAt.After(cursor) {
					cursor = r.LastMessageAt
				}
				if primed {
					onUpdate(r)
				}
			}
			primed = true

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return sub
}

func (c *Client) roomsUpdatedAfter(ctx context.Context, token, userID string, after time.Time) ([]models.ChatRoomRow, error) {
	q := url.Values{}
	q.Set("select", roomListSelect)
	q.Set("or", fmt.Sprintf("(buyer_id.eq.%s,seller_id.eq.%s)", userID, userID))
	if !after.IsZero() {
		q.Set("last_message_at", "gt."+after.UTC().Format(time.RFC3339Nano))
	}
	q.Set("order", "last_message_at.asc")

	var rooms []models.ChatRoomRow
	if err := c.do(ctx, http.MethodGet, chatRoomsPath, q, token, "", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
