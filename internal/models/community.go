package models

import "time"

// CommunityPost is a neighborhood board entry. The board is a static data
// set; posts are searched alongside listings but never created here.
type CommunityPost struct {
	ID                int64         `json:"id"`
	Title             string        `json:"title"`
	Author            string        `json:"author"`
	MannerTemperature float64       `json:"manner_temperature"`
	Content           string        `json:"content"`
	ProfileColor      string        `json:"profile_color"`
	CreatedAt         time.Time     `json:"created_at"`
	Comments          []PostComment `json:"comments"`
}

type PostComment struct {
	ID           int64     `json:"id"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	ProfileColor string    `json:"profile_color"`
	CreatedAt    time.Time `json:"created_at"`
}
