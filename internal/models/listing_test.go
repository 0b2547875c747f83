package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateListingRequest {
	return CreateListingRequest{
		Title:       "아이폰 14 프로 팝니다",
		Description: strings.Repeat("상태 좋습니다. ", 10),
		Price:       850000,
		Image:       ImageTag{Color: "#4338CA", Icon: "📱"},
		Location:    "서울 강남구",
		TradeMethod: TradeMethodDirect,
	}
}

func TestCreateListingRequestValidate(t *testing.T) {
	req := validCreateRequest()
	assert.Empty(t, req.Validate())

	t.Run("title too short", func(t *testing.T) {
		req := validCreateRequest()
		req.Title = "아이폰"
		errors := req.Validate()
		assert.Contains(t, errors, "title")
	})

	t.Run("title boundary counts runes", func(t *testing.T) {
		req := validCreateRequest()
		req.Title = "아이폰판매"
		assert.NotContains(t, req.Validate(), "title")
	})

	t.Run("description under fifty runes", func(t *testing.T) {
		req := validCreateRequest()
		req.Description = strings.Repeat("가", 49)
		assert.Contains(t, req.Validate(), "description")

		req.Description = strings.Repeat("가", 50)
		assert.NotContains(t, req.Validate(), "description")
	})

	t.Run("price must be positive", func(t *testing.T) {
		req := validCreateRequest()
		req.Price = 0
		assert.Contains(t, req.Validate(), "price")

		req.Price = -100
		assert.Contains(t, req.Validate(), "price")
	})
}

func TestCategoryForIcon(t *testing.T) {
	assert.Equal(t, "electronics", CategoryForIcon("📱"))
	assert.Equal(t, "computer", CategoryForIcon("💻"))
	assert.Equal(t, "others", CategoryForIcon("🎸"))
	assert.Equal(t, "others", CategoryForIcon(""))
}

func TestListingRowRoundTrip(t *testing.T) {
	req := validCreateRequest()
	row := NewListingRow(&req, "user-1")

	assert.Equal(t, StatusAvailable, row.Status)
	assert.Equal(t, "electronics", row.Category)
	assert.Contains(t, row.ImageData, "📱")

	row.ID = 42
	listing := row.ToListing()

	assert.Equal(t, int64(42), listing.ID)
	assert.True(t, listing.FromRemote)
	assert.Equal(t, req.Image, listing.Image)
}

func TestListingRowMalformedImageData(t *testing.T) {
	row := ListingRow{ID: 1, Title: "의자", ImageData: "{broken"}

	listing := row.ToListing()

	assert.Equal(t, ImageTag{}, listing.Image)
	assert.Equal(t, "의자", listing.Title)
}

func TestDeriveSellerInfoDeterministic(t *testing.T) {
	l := Listing{ID: 7, Location: "서울 잠실"}

	first := DeriveSellerInfo(l)
	second := DeriveSellerInfo(l)
	assert.Equal(t, first, second)

	assert.Equal(t, "서울 잠실", first.Location)
	assert.GreaterOrEqual(t, first.MannerTemperature, 32.0)
	assert.Less(t, first.MannerTemperature, 42.0)
}

func TestDeriveSellerInfoSeedMagnitude(t *testing.T) {
	// A seed listing and a user record with the same magnitude present the
	// same seller.
	seed := DeriveSellerInfo(Listing{ID: -3})
	user := DeriveSellerInfo(Listing{ID: 3})
	assert.Equal(t, seed.Name, user.Name)
	assert.Equal(t, seed.Profile, user.Profile)

	assert.False(t, DeriveSellerInfo(Listing{ID: 3}).LocationVerified)
	assert.True(t, DeriveSellerInfo(Listing{ID: 4}).LocationVerified)
}

func TestChatRoomViewFor(t *testing.T) {
	row := ChatRoomRow{
		ID:                5,
		BuyerID:           "buyer-1",
		SellerID:          "seller-1",
		UnreadCountBuyer:  2,
		UnreadCountSeller: 7,
		Buyer:             &ChatUser{Nickname: "구매자"},
		Seller:            &ChatUser{Nickname: "판매자"},
	}

	buyerView := row.ViewFor("buyer-1")
	require.Equal(t, "판매자", buyerView.OtherUser.Nickname)
	assert.Equal(t, 2, buyerView.UnreadCount)

	sellerView := row.ViewFor("seller-1")
	require.Equal(t, "구매자", sellerView.OtherUser.Nickname)
	assert.Equal(t, 7, sellerView.UnreadCount)
}

func TestSendMessageRequestValidate(t *testing.T) {
	req := SendMessageRequest{Message: "네고 되나요?"}
	assert.Empty(t, req.Validate())

	req.Message = "   "
	assert.Contains(t, req.Validate(), "message")

	req.Message = ""
	assert.Contains(t, req.Validate(), "message")
}

func TestNewCommentGeneratedAuthor(t *testing.T) {
	c := NewComment("네고 가능한가요?")

	assert.Equal(t, "네고 가능한가요?", c.Text)
	assert.True(t, strings.HasPrefix(c.Author, "사용자"))
	assert.NotEmpty(t, c.ProfileColor)
	assert.NotZero(t, c.ID)
}
