package facet

import (
	"os"
	"path/filepath"
	"testing"

	"hotelsearch/internal/model"
)

func testListings() []model.Listing {
	return []model.Listing{
		{
			"price":         100.0,
			"averageRating": 9.2,
			"stars":         4.0,
			"propertyType":  "Hotel",
			"amenities":     []any{"wifi", "parking"},
			"categories":    []any{"Hotels | Breakfast included"},
			"distance":      0.5,
			"neighbourhood": "Montmartre",
			"brand":         "Ibis",
		},
		{
			"price":         300.0,
			"averageRating": 7.0,
			"stars":         3.0,
			"categories":    []any{"Hostels"},
			"distance":      2.0,
		},
		{
			"price":            40.0,
			"averageRating":    8.4,
			"propertyType":     "Apartment",
			"amenities":        []any{"wifi"},
			"freeCancellation": true,
			"distance":         4.2,
		},
	}
}

func findGroup(t *testing.T, groups []model.FacetGroup, key string) model.FacetGroup {
	t.Helper()
	for _, g := range groups {
		if g.Key == key {
			return g
		}
	}
	t.Fatalf("group %q not found in %v", key, groups)
	return model.FacetGroup{}
}

func findItem(t *testing.T, g model.FacetGroup, id string) model.FacetItem {
	t.Helper()
	for _, it := range g.Items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %q not found in group %q", id, g.Key)
	return model.FacetItem{}
}

func TestBuildReviewBucketsAreCumulative(t *testing.T) {
	groups := NewBuilder(nil).Build(testListings())
	review := findGroup(t, groups, GroupReview)

	// 9.2 counts for every threshold it clears; 8.4 for 8/7/6; 7.0 for 7/6.
	wants := map[string]int{
		"review_9": 1,
		"review_8": 2,
		"review_7": 3,
		"review_6": 3,
	}
	for id, want := range wants {
		if got := findItem(t, review, id).Count; got != want {
			t.Errorf("%s count = %d, want %d", id, got, want)
		}
	}
}

func TestBuildDistanceBucketsAreCumulative(t *testing.T) {
	groups := NewBuilder(nil).Build(testListings())
	dist := findGroup(t, groups, GroupDistance)

	wants := map[string]int{
		DistUnder1ID: 1,
		DistUnder3ID: 2,
		DistUnder5ID: 3,
	}
	for id, want := range wants {
		if got := findItem(t, dist, id).Count; got != want {
			t.Errorf("%s count = %d, want %d", id, got, want)
		}
	}
}

func TestBuildPropertyTypes(t *testing.T) {
	groups := NewBuilder(nil).Build(testListings())
	ptype := findGroup(t, groups, GroupPropertyType)

	if got := findItem(t, ptype, "ptype_hotel"); got.Label != "Hotels" || got.Count != 1 {
		t.Errorf("hotel item = %+v, want label Hotels count 1", got)
	}
	// Inferred from the "Hostels" category, curated label applies.
	if got := findItem(t, ptype, "ptype_hostel"); got.Label != "Hostels" || got.Count != 1 {
		t.Errorf("hostel item = %+v, want label Hostels count 1", got)
	}
}

func TestBuildPopularRederivesAtomicCounts(t *testing.T) {
	groups := NewBuilder(nil).Build(testListings())
	popular := findGroup(t, groups, GroupPopular)

	// Popular counts must equal the underlying atomic buckets.
	if got := findItem(t, popular, "pop_breakfast").Count; got != 1 {
		t.Errorf("pop_breakfast count = %d, want 1", got)
	}
	if got := findItem(t, popular, "pop_rating8").Count; got != 2 {
		t.Errorf("pop_rating8 count = %d, want 2", got)
	}
	if got := findItem(t, popular, "pop_free_cxl").Count; got != 1 {
		t.Errorf("pop_free_cxl count = %d, want 1", got)
	}
}

func TestBuildCategoriesGroupFromTokenizer(t *testing.T) {
	groups := NewBuilder(nil).Build(testListings())
	cats := findGroup(t, groups, GroupCategories)

	if got := findItem(t, cats, "cat_breakfast included"); got.Count != 1 {
		t.Errorf("breakfast included count = %d, want 1", got.Count)
	}
	if got := findItem(t, cats, "cat_hotels"); got.Label != "Hotels" {
		t.Errorf("hotels label = %q, want Hotels", got.Label)
	}
}

func TestBuildOmitsEmptyGroups(t *testing.T) {
	listings := []model.Listing{
		{"price": 50.0},
		{"price": 80.0},
	}
	groups := NewBuilder(nil).Build(listings)
	for _, g := range groups {
		if len(g.Items) == 0 {
			t.Errorf("group %q surfaced with no items", g.Key)
		}
		if g.Key == GroupMeals || g.Key == GroupBrand {
			t.Errorf("group %q should be omitted for attribute-free listings", g.Key)
		}
	}
}

func TestBuildEmptyListingSet(t *testing.T) {
	if groups := NewBuilder(nil).Build(nil); len(groups) != 0 {
		t.Errorf("expected no groups for empty listing set, got %d", len(groups))
	}
}

func TestLoadLabelsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	content := []byte("facilities:\n  sauna: Sauna\nproperty_types:\n  hotel: Hotels and more\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels() error: %v", err)
	}
	if got := labels.Facility("sauna"); got != "Sauna" {
		t.Errorf("Facility(sauna) = %q, want Sauna", got)
	}
	if got := labels.PropertyType("hotel"); got != "Hotels and more" {
		t.Errorf("PropertyType(hotel) = %q, want override", got)
	}
	// Defaults survive the overlay.
	if got := labels.Facility("wifi"); got != "Free WiFi" {
		t.Errorf("Facility(wifi) = %q, want Free WiFi", got)
	}
	if !contains(labels.FacilityOrder, "sauna") {
		t.Error("sauna missing from facility order")
	}
}

func TestTitleCaseFallback(t *testing.T) {
	labels := DefaultLabels()
	if got := labels.PropertyType("ryokan"); got != "Ryokan" {
		t.Errorf("unknown property type label = %q, want Ryokan", got)
	}
	if got := TitleCase("breakfast included"); got != "Breakfast Included" {
		t.Errorf("TitleCase = %q", got)
	}
}
