package reconcile

import (
	"sync"

	"github.com/sunshinej01/second-hand/internal/models"
)

// View holds the reconciled collection readers render. Reconciliation passes
// are tagged with a sequence number at start; a completion is applied only
// while its pass is still the latest issued, so a slow fetch can never
// overwrite the result of a newer pass.
type View struct {
	mu         sync.RWMutex
	issued     uint64
	listings   []models.Listing
	localCount int
}

// Begin issues a new reconciliation pass and returns its sequence number.
func (v *View) Begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.issued++
	return v.issued
}

// Apply replaces the rendered collection with the pass result, along with
// the cached listing count the pass observed. It reports whether the result
// was accepted; results from superseded passes are discarded entirely, so a
// slow pass can neither replace the collection nor skew the recorded count.
func (v *View) Apply(pass uint64, listings []models.Listing, localCount int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if pass != v.issued {
		return false
	}
	v.listings = listings
	v.localCount = localCount
	return true
}

// Listings returns a copy of the current collection.
func (v *View) Listings() []models.Listing {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]models.Listing, len(v.listings))
	copy(out, v.listings)
	return out
}

// LocalCount returns the cached listing count observed by the last pass.
func (v *View) LocalCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.localCount
}
