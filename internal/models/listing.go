package models

import (
	"encoding/json"
	"time"
	"unicode/utf8"
)

// ImageTag is the color/icon pair rendered in place of a real product photo.
// It is stored serialized in the backend's image_data column.
type ImageTag struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Listing is one item for sale, regardless of where it is persisted.
// FromRemote marks whether the record is known to be durably stored on the
// backend; records that only made it into the local cache carry false.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Image       ImageTag  `json:"image"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location"`
	TradeMethod string    `json:"trade_method"`
	Status      string    `json:"status,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	FromRemote  bool      `json:"from_remote"`
}

// Trade methods
const (
	TradeMethodDirect   = "direct"
	TradeMethodDelivery = "delivery"
	TradeMethodBoth     = "both"
)

// Listing status values assigned by the backend. Local writes always start
// as available; the other transitions are never made from this service.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
	StatusHidden    = "hidden"
)

// Locations offered in the submission form
var Locations = []string{
	"서울 강남구", "서울 강북구", "서울 홍대입구", "서울 잠실",
	"서울 마포구", "경기 분당구", "경기 수원시", "인천 부평구",
}

var categoryByIcon = map[string]string{
	"📱": "electronics",
	"👕": "clothing",
	"💻": "computer",
	"🎧": "audio",
	"🎮": "game",
	"📚": "book",
	"🏠": "household",
	"🚗": "automotive",
}

// CategoryForIcon maps an image icon to its category slug.
func CategoryForIcon(icon string) string {
	if c, ok := categoryByIcon[icon]; ok {
		return c
	}
	return "others"
}

type CreateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Image       ImageTag `json:"image"`
	Location    string   `json:"location"`
	TradeMethod string   `json:"trade_method"`
}

func (r *CreateListingRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if utf8.RuneCountInString(r.Title) < 5 {
		errors["title"] = "제목은 5자 이상 입력해주세요."
	}
	if utf8.RuneCountInString(r.Description) < 50 {
		errors["description"] = "설명은 50자 이상 입력해주세요."
	}
	if r.Price <= 0 {
		errors["price"] = "올바른 가격을 입력해주세요."
	}

	return errors
}

// ListingRow is the products table row exchanged with the backend.
// image_data holds the serialized ImageTag.
type ListingRow struct {
	ID          int64     `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Location    string    `json:"location"`
	TradeMethod string    `json:"trade_method"`
	ImageData   string    `json:"image_data,omitempty"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// NewListingRow builds the insert payload for a validated submission.
func NewListingRow(req *CreateListingRequest, userID string) ListingRow {
	imageData, _ := json.Marshal(req.Image)

	return ListingRow{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		TradeMethod: req.TradeMethod,
		ImageData:   string(imageData),
		Category:    CategoryForIcon(req.Image.Icon),
		Status:      StatusAvailable,
		UserID:      userID,
	}
}

// ToListing converts a backend row into the display shape. A malformed
// image_data blob degrades to an empty tag rather than failing the row.
func (r *ListingRow) ToListing() Listing {
	var image ImageTag
	if r.ImageData != "" {
		if err := json.Unmarshal([]byte(r.ImageData), &image); err != nil {
			image = ImageTag{}
		}
	}

	return Listing{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Image:       image,
		Category:    r.Category,
		Location:    r.Location,
		TradeMethod: r.TradeMethod,
		Status:      r.Status,
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		FromRemote:  true,
	}
}
