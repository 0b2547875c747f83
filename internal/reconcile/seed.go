package reconcile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sunshinej01/second-hand/internal/models"
)

// Seed listings carry negative identifiers so they can never collide with
// backend-assigned serials or wall-clock local identifiers; the merge step
// additionally dedupes by identifier.

type seedListing struct {
	ID          int64   `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Price       int64   `yaml:"price"`
	Color       string  `yaml:"color"`
	Icon        string  `yaml:"icon"`
	Location    string  `yaml:"location"`
	AgeHours    float64 `yaml:"age_hours"`
}

type seedFile struct {
	Listings []seedListing `yaml:"listings"`
}

var defaultSeeds = []seedListing{
	{ID: -1, Title: "아이폰 14 Pro 128GB", Price: 850000, Color: "#4338CA", Icon: "📱",
		Description: "직거래 선호합니다. 액정 깨끗하고 배터리 성능 좋아요",
		Location:    "서울 강남구", AgeHours: 2},
	{ID: -2, Title: "갤럭시 S23 Ultra 자급제", Price: 720000, Color: "#059669", Icon: "📱",
		Description: "케이스, 보호필름 사용해서 거의 새거같아요. 충전기 포함",
		Location:    "서울 홍대입구", AgeHours: 5},
	{ID: -3, Title: "맥북 프로 M2 13인치", Price: 1450000, Color: "#DC2626", Icon: "💻",
		Description: "2023년 구입 맥북프로입니다. 사이클 50회 미만, 거의 안쓴거 같아요",
		Location:    "경기 분당구", AgeHours: 24},
	{ID: -4, Title: "에어팟 프로 2세대", Price: 180000, Color: "#7C3AED", Icon: "🎧",
		Description: "정품 에어팟 프로 2세대 팝니다. 케이스 약간 기스 있지만 기능상 문제없어요",
		Location:    "서울 잠실", AgeHours: 72},
	{ID: -5, Title: "닌텐도 스위치 OLED", Price: 280000, Color: "#EA580C", Icon: "🎮",
		Description: "닌텐도 스위치 OLED 모델이에요. 젤다 게임 포함해서 드려요",
		Location:    "인천 부평구", AgeHours: 144},
	{ID: -6, Title: "아이패드 에어 5세대 64GB", Price: 520000, Color: "#0891B2", Icon: "📱",
		Description: "아이패드 에어 5세대 와이파이 모델입니다. 애플펜슬 호환되요",
		Location:    "서울 마포구", AgeHours: 192},
}

func (s seedListing) toListing(now time.Time) models.Listing {
	image := models.ImageTag{Color: s.Color, Icon: s.Icon}
	return models.Listing{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Price:       s.Price,
		Image:       image,
		Category:    models.CategoryForIcon(s.Icon),
		Location:    s.Location,
		TradeMethod: models.TradeMethodDirect,
		Status:      models.StatusAvailable,
		CreatedAt:   now.Add(-time.Duration(s.AgeHours * float64(time.Hour))),
	}
}

// Seeds returns the default listing set, timestamped relative to now so the
// board always looks recent.
func Seeds(now time.Time) []models.Listing {
	return buildSeeds(defaultSeeds, now)
}

// LoadSeeds returns the seed set from a YAML override file, or the built-in
// defaults when path is empty or the file does not exist.
func LoadSeeds(path string, now time.Time) ([]models.Listing, error) {
	if path == "" {
		return Seeds(now), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Seeds(now), nil
		}
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(f.Listings) == 0 {
		return Seeds(now), nil
	}

	return buildSeeds(f.Listings, now), nil
}

func buildSeeds(seeds []seedListing, now time.Time) []models.Listing {
	listings := make([]models.Listing, 0, len(seeds))
	for _, s := range seeds {
		listings = append(listings, s.toListing(now))
	}
	return listings
}

// SeedDetails returns the curated detail blocks for the default seed set,
// keyed by listing identifier.
func SeedDetails() map[int64]models.ListingDetails {
	return map[int64]models.ListingDetails{
		-1: {ModelName: "아이폰 14 Pro", Capacity: "128GB", Color: "딥 퍼플",
			PurchaseDate: "2022년 9월", Accessories: "박스, 충전케이블, 매뉴얼",
			Condition: "액정/외관 스크래치 거의 없음\n모든 기능 정상\n배터리 성능 88%"},
		-2: {ModelName: "갤럭시 S23 Ultra", Capacity: "256GB", Color: "팬텀 블랙",
			PurchaseDate: "2023년 3월", Accessories: "박스, 충전케이블, S펜, 케이스",
			Condition: "S펜 정상 작동\n카메라 렌즈 무흠\n배터리 상태 매우 좋음"},
		-3: {ModelName: "맥북 프로 M2", Capacity: "512GB SSD", Color: "스페이스 그레이",
			PurchaseDate: "2023년 1월", Accessories: "박스, 충전 어댑터, 매뉴얼",
			Condition: "키보드/트랙패드 정상\n화면 무결점\n배터리 사이클 50회 미만"},
		-4: {ModelName: "에어팟 프로 2세대", Capacity: "라이트닝 케이스", Color: "화이트",
			PurchaseDate: "2023년 5월", Accessories: "충전케이스, 이어팁 3종, 박스",
			Condition: "노이즈 캔슬링 정상\n케이스 약간 기스\n배터리 지속시간 정상"},
		-5: {ModelName: "닌텐도 스위치 OLED", Capacity: "64GB 내장 메모리", Color: "네온 블루/레드",
			PurchaseDate: "2022년 12월", Accessories: "독, 조이콘, 충전기, 젤다 게임",
			Condition: "조이콘 드리프트 없음\n화면 스크래치 없음\n모든 기능 정상"},
		-6: {ModelName: "아이패드 에어 5세대", Capacity: "64GB", Color: "스타라이트",
			PurchaseDate: "2022년 8월", Accessories: "박스, 충전케이블, 애플펜슬 호환",
			Condition: "액정 완벽\n후면 약간 기스\n배터리 성능 좋음"},
	}
}

// CommunityPosts returns the static neighborhood board, timestamped relative
// to now.
func CommunityPosts(now time.Time) []models.CommunityPost {
	return []models.CommunityPost{
		{
			ID: 1, Title: "2030 동네친구 구해요", Author: "마포보라돌이",
			MannerTemperature: 38.6, ProfileColor: "#16A34A",
			Content:   "이사온지 얼마 안돼서 동네 친구 만들고 싶어요.\n퇴근 후나 주말에 같이 맛집 탐방하실 분 구해요~",
			CreatedAt: now.Add(-3 * time.Hour),
			Comments: []models.PostComment{
				{ID: 1, Author: "당근마스터", Content: "저랑 같이 연남동 맛집 찾아다녀요!",
					ProfileColor: "#DC2626", CreatedAt: now.Add(-1 * time.Hour)},
				{ID: 2, Author: "코코", Content: "저랑도 친구해요!",
					ProfileColor: "#7C3AED", CreatedAt: now.Add(-30 * time.Minute)},
			},
		},
		{
			ID: 2, Title: "홍대 근처 좋은 카페 추천해주세요", Author: "카페러버",
			MannerTemperature: 42.3, ProfileColor: "#059669",
			Content:   "홍대입구역 근처에서 작업하기 좋은 카페 찾고 있어요.\n와이파이 잘 되고 조용한 곳 있나요?",
			CreatedAt: now.Add(-5 * time.Hour),
			Comments: []models.PostComment{
				{ID: 1, Author: "홍대토박이", Content: "스타벅스 홍대점이 넓어서 좋아요!",
					ProfileColor: "#EA580C", CreatedAt: now.Add(-2 * time.Hour)},
			},
		},
		{
			ID: 3, Title: "강남구 러닝 메이트 모집", Author: "러닝킹",
			MannerTemperature: 39.8, ProfileColor: "#0891B2",
			Content:   "매주 토요일 아침 7시 한강공원에서 러닝하실 분 모집해요.\n초보자도 환영합니다!",
			CreatedAt: now.Add(-24 * time.Hour),
			Comments:  []models.PostComment{},
		},
	}
}
