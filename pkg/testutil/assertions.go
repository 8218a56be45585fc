package testutil

import (
	"testing"

	"github.com/vanderheijden86/listfold/pkg/model"
	"github.com/vanderheijden86/listfold/pkg/visibility"
)

// AssertItemCount verifies the expected number of items.
func AssertItemCount(t *testing.T, items []model.Item, expected int) {
	t.Helper()
	if len(items) != expected {
		t.Errorf("expected %d items, got %d", expected, len(items))
	}
}

// AssertAllValid verifies all items pass validation.
func AssertAllValid(t *testing.T, items []model.Item) {
	t.Helper()
	for i, it := range items {
		if err := it.Validate(); err != nil {
			t.Errorf("item %d (%s) invalid: %v", i, it.Slug, err)
		}
	}
}

// AssertNoDuplicateSlugs verifies all item slugs are unique.
func AssertNoDuplicateSlugs(t *testing.T, items []model.Item) {
	t.Helper()
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.Slug] {
			t.Errorf("duplicate slug: %s", it.Slug)
		}
		seen[it.Slug] = true
	}
}

// AssertWellFormed verifies the sequence satisfies the pre-order depth and
// hidden-flag invariants.
func AssertWellFormed(t *testing.T, seq model.Sequence) {
	t.Helper()
	if err := visibility.New(seq).Validate(); err != nil {
		t.Errorf("sequence invariant broken: %v", err)
	}
}

// AssertContainsLeaf verifies the sequence carries a leaf row for every item.
func AssertContainsLeaf(t *testing.T, seq model.Sequence, items []model.Item) {
	t.Helper()
	bySlug := make(map[string]bool, len(seq))
	for _, n := range seq {
		if !n.IsFolder {
			bySlug[n.Slug] = true
		}
	}
	for _, it := range items {
		if !bySlug[it.Slug] {
			t.Errorf("item %s missing from flattened sequence", it.Slug)
		}
	}
}
