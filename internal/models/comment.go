package models

import (
	"fmt"
	"math/rand"
	"time"
)

// Comment is attached to exactly one listing and lives only in the local
// cache. The author identity is generated per submission, never tied to the
// signed-in user.
type Comment struct {
	ID           int64     `json:"id"`
	Text         string    `json:"text"`
	Author       string    `json:"author"`
	ProfileColor string    `json:"profile_color"`
	CreatedAt    time.Time `json:"created_at"`
}

var commentColors = []string{"#4338CA", "#059669", "#DC2626", "#7C3AED", "#EA580C"}

// NewComment generates a comment with a wall-clock identifier and a random
// author name and color.
func NewComment(text string) Comment {
	now := time.Now()
	return Comment{
		ID:           now.UnixMilli(),
		Text:         text,
		Author:       fmt.Sprintf("사용자%d", rand.Intn(100)),
		ProfileColor: commentColors[rand.Intn(len(commentColors))],
		CreatedAt:    now,
	}
}
