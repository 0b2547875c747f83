package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/reconcile"
	"github.com/sunshinej01/second-hand/internal/remote"
	"github.com/sunshinej01/second-hand/internal/storage"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	// ErrSaveFailed means neither the backend nor the local cache retained
	// the record, the only total-failure case in the write path.
	ErrSaveFailed = errors.New("listing could not be saved")
)

// ListingService owns the reconciled listing collection: the seed set is
// visible immediately, the local cache is merged on every read pass, and
// remote rows are merged when a full refresh reaches the backend.
type ListingService struct {
	cache   *storage.Cache
	remote  *remote.Client
	view    *reconcile.View
	seeds   []models.Listing
	details map[int64]models.ListingDetails
}

func NewListingService(cache *storage.Cache, rc *remote.Client, seeds []models.Listing) *ListingService {
	s := &ListingService{
		cache:   cache,
		remote:  rc,
		view:    &reconcile.View{},
		seeds:   seeds,
		details: reconcile.SeedDetails(),
	}

	// The collection is never empty on first read: the seed set renders
	// before any cache or remote round trip.
	s.view.Apply(s.view.Begin(), reconcile.Merge(s.seeds), 0)
	return s
}

// Refresh runs one reconciliation pass. The cache merge always applies
// first; when includeRemote is set the pass then fetches the backend and
// applies the three-way merge. A pass superseded by a newer one is
// discarded by the view.
func (s *ListingService) Refresh(ctx context.Context, includeRemote bool) {
	pass := s.view.Begin()
	local := s.cache.Listings()

	if !s.view.Apply(pass, reconcile.Merge(local, s.seeds), len(local)) {
		return
	}
	if !includeRemote {
		return
	}

	rows, err := s.remote.ListListings(ctx)
	if err != nil {
		log.Printf("Warning: remote listing fetch failed: %v", err)
		return
	}

	remoteListings := make([]models.Listing, 0, len(rows))
	for i := range rows {
		remoteListings = append(remoteListings, rows[i].ToListing())
	}

	// Local cache wins identifier conflicts; it may hold a fresher copy of
	// a record the backend also has.
	s.view.Apply(pass, reconcile.Merge(local, remoteListings, s.seeds), len(local))
}

// RefreshIfChanged re-merges only when the cached listing count differs from
// what the last pass observed. A cheap heuristic: it misses edits that keep
// the count equal, which is acceptable for a cache that is append-only here.
func (s *ListingService) RefreshIfChanged(ctx context.Context) {
	if s.cache.ListingCount() != s.view.LocalCount() {
		s.Refresh(ctx, false)
	}
}

// List returns the reconciled collection, re-merging first when the cache
// moved underneath it.
func (s *ListingService) List(ctx context.Context) []models.Listing {
	s.RefreshIfChanged(ctx)
	return s.view.Listings()
}

// ListingDetail is everything the detail page shows for one listing.
type ListingDetail struct {
	Listing models.Listing        `json:"listing"`
	Seller  models.SellerInfo     `json:"seller"`
	Details models.ListingDetails `json:"details"`
}

// Get resolves one listing from the reconciled collection, falling back to a
// direct backend fetch for rows not yet merged.
func (s *ListingService) Get(ctx context.Context, id int64) (*ListingDetail, error) {
	var found *models.Listing
	for _, l := range s.List(ctx) {
		if l.ID == id {
			listing := l
			found = &listing
			break
		}
	}

	if found == nil {
		row, err := s.remote.GetListing(ctx, id)
		if err != nil {
			log.Printf("Warning: remote listing lookup failed: %v", err)
		}
		if row == nil {
			return nil, ErrListingNotFound
		}
		listing := row.ToListing()
		found = &listing
	}

	details, ok := s.details[found.ID]
	if !ok {
		details = models.GenericDetails(*found)
	}

	return &ListingDetail{
		Listing: *found,
		Seller:  models.DeriveSellerInfo(*found),
		Details: details,
	}, nil
}

// CreateResult reports how a submission was persisted. Remote is false when
// the backend write failed and only the local cache holds the record,
// surfaced to the user as offline mode rather than an error.
type CreateResult struct {
	Listing models.Listing
	Remote  bool
}

// Create runs the write path: remote insert first, then an unconditional
// local persist so the record shows up immediately and survives backend
// outages. Only the loss of both sides is a failure.
func (s *ListingService) Create(ctx context.Context, userID string, req *models.CreateListingRequest) (*CreateResult, error) {
	row := models.NewListingRow(req, userID)

	savedRemotely := false
	var remoteID int64

	inserted, err := s.remote.CreateListing(ctx, "", row)
	if err != nil {
		log.Printf("Warning: remote create failed, keeping listing locally: %v", err)
	} else if len(inserted) > 0 {
		savedRemotely = true
		remoteID = inserted[0].ID
	}

	now := time.Now()
	listing := models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    models.CategoryForIcon(req.Image.Icon),
		Location:    req.Location,
		TradeMethod: req.TradeMethod,
		Status:      models.StatusAvailable,
		UserID:      userID,
		CreatedAt:   now,
		FromRemote:  savedRemotely,
	}
	if savedRemotely {
		listing.ID = remoteID
	} else {
		listing.ID = now.UnixMilli()
	}

	if err := s.cache.PrependListing(listing); err != nil {
		// Second attempt with a regenerated identifier.
		listing.ID = time.Now().UnixMilli()
		if err := s.cache.PrependListing(listing); err != nil && !savedRemotely {
			return nil, ErrSaveFailed
		}
	}

	s.Refresh(ctx, false)

	return &CreateResult{Listing: listing, Remote: savedRemotely}, nil
}
