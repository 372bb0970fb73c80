package productform

import (
	"slices"

	"github.com/hainweb/merchant-console/internal/domain"
)

// DirtyState is the part of a live form compared against the snapshot.
type DirtyState struct {
	Draft           domain.ProductDraft
	Specifications  []domain.SpecificationEntry
	Highlights      []string
	HasNewThumbnail bool
	NewImages       int
}

// DirtyTracker reports whether an edit form differs from the product as it
// was loaded. Custom options do not count as a change.
type DirtyTracker struct {
	snapshot domain.ProductSnapshot
}

func NewDirtyTracker(snapshot domain.ProductSnapshot) *DirtyTracker {
	snapshot.Specifications = slices.Clone(snapshot.Specifications)
	snapshot.Highlights = slices.Clone(snapshot.Highlights)
	snapshot.CustomOptions = slices.Clone(snapshot.CustomOptions)
	snapshot.Images = slices.Clone(snapshot.Images)
	return &DirtyTracker{snapshot: snapshot}
}

func (t *DirtyTracker) Snapshot() domain.ProductSnapshot {
	return t.snapshot
}

func (t *DirtyTracker) Changed(state DirtyState) bool {
	if state.Draft != t.snapshot.Draft() {
		return true
	}

	// nil and empty compare equal here
	if !slices.Equal(state.Specifications, t.snapshot.Specifications) {
		return true
	}
	if !slices.Equal(state.Highlights, t.snapshot.Highlights) {
		return true
	}

	return state.HasNewThumbnail || state.NewImages > 0
}
