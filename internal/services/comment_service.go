package services

import (
	"errors"
	"log"
	"strings"

	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/storage"
)

var ErrEmptyComment = errors.New("comment text is required")

// CommentService keeps per-listing comment threads in the local cache only;
// comments never touch the backend.
type CommentService struct {
	cache *storage.Cache
}

func NewCommentService(cache *storage.Cache) *CommentService {
	return &CommentService{cache: cache}
}

// List returns a listing's comments, newest first.
func (s *CommentService) List(listingID int64) []models.Comment {
	return s.cache.Comments(listingID)
}

// Add creates a comment with a generated anonymous author. A persist
// failure is logged but the comment is still returned; the thread shows it
// for the current session even if it will not survive a restart.
func (s *CommentService) Add(listingID int64, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := models.NewComment(text)
	if err := s.cache.PrependComment(listingID, comment); err != nil {
		log.Printf("Warning: could not persist comment for listing %d: %v", listingID, err)
	}
	return &comment, nil
}
