package models

import "math"

// SellerInfo is the display identity shown on a listing detail page. It is
// derived deterministically from the listing identifier, so the same listing
// always presents the same seller.
type SellerInfo struct {
	Name              string   `json:"name"`
	MannerTemperature float64  `json:"manner_temperature"`
	Location          string   `json:"location"`
	LocationVerified  bool     `json:"location_verified"`
	Profile           ImageTag `json:"profile"`
}

// ListingDetails is the structured condition block on a detail page. Seed
// listings carry curated details; everything else gets the generic fallback.
type ListingDetails struct {
	ModelName    string `json:"model_name"`
	Capacity     string `json:"capacity"`
	Color        string `json:"color"`
	PurchaseDate string `json:"purchase_date"`
	Accessories  string `json:"accessories"`
	Condition    string `json:"condition"`
}

var sellerNames = []string{
	"당근이", "감자킴", "고구마팜", "배추맘", "무지개",
	"사과동", "바나나킹", "포도주", "딸기야", "수박이",
}

var sellerColors = []string{
	"#16A34A", "#DC2626", "#7C3AED", "#EA580C",
	"#0891B2", "#DB2777", "#059669", "#4338CA",
}

var sellerIcons = []string{"👤", "🙂", "😊", "🤗", "😁", "🥰", "😎", "🤓"}

// DeriveSellerInfo builds the seller identity for a listing. Seed listings
// carry negative identifiers; the derivation uses the magnitude so seeds and
// user records index the same pools.
func DeriveSellerInfo(l Listing) SellerInfo {
	id := l.ID
	if id < 0 {
		id = -id
	}
	if id < 1 {
		id = 1
	}

	// 32.0-42.0 range, one decimal
	temp := 32.0 + math.Mod(float64(id)*3.7, 10.0)
	temp = math.Round(temp*10) / 10

	return SellerInfo{
		Name:              sellerNames[int((id-1)%int64(len(sellerNames)))],
		MannerTemperature: temp,
		Location:          l.Location,
		LocationVerified:  id%3 != 0,
		Profile: ImageTag{
			Color: sellerColors[int((id-1)%int64(len(sellerColors)))],
			Icon:  sellerIcons[int((id-1)%int64(len(sellerIcons)))],
		},
	}
}

// GenericDetails is the fallback detail block for listings without curated
// details.
func GenericDetails(l Listing) ListingDetails {
	return ListingDetails{
		ModelName:    l.Title,
		Capacity:     "용량 정보 없음",
		Color:        "색상 정보 없음",
		PurchaseDate: "구매시기 정보 없음",
		Accessories:  "구성품 정보 없음",
		Condition:    "기기 상태 정보 없음",
	}
}
