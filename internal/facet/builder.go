// Package facet derives the sidebar facet groups and their live counts from
// a raw listing set. Counts are additive: each item counts the listings that
// carry the attribute in the full set, independent of other active filters,
// so groups are rebuilt only when the listing set changes.
package facet

import (
	"fmt"
	"math"
	"sort"

	"hotelsearch/internal/model"
	"hotelsearch/internal/normalize"
)

// Stable group keys. Facet item ids are namespaced with a per-group prefix
// so ids never collide across groups.
const (
	GroupPopular       = "popular"
	GroupReview        = "review"
	GroupStars         = "stars"
	GroupPropertyType  = "ptype"
	GroupFacilities    = "facilities"
	GroupMeals         = "meals"
	GroupPayment       = "payment"
	GroupDistance      = "distance"
	GroupNeighbourhood = "hood"
	GroupBrand         = "brand"
	GroupCategories    = "categories"
)

// Fixed bucket/item ids.
const (
	MealBreakfastID = "meal_breakfast"
	MealAllID       = "meal_all"

	PayFreeCancellationID = "pay_free_cxl"
	PayNoPrepaymentID     = "pay_no_prepay"
	PayOnlineID           = "pay_online"

	DistUnder1ID = "dist_<1"
	DistUnder3ID = "dist_<3"
	DistUnder5ID = "dist_<5"
)

// ReviewThresholds are the cumulative "at least N" review score buckets; a
// listing rated 9.2 increments all four.
var ReviewThresholds = []int{9, 8, 7, 6}

var reviewLabels = map[int]string{
	9: "Superb: 9+",
	8: "Very good: 8+",
	7: "Good: 7+",
	6: "Pleasant: 6+",
}

// popularItem maps a "Popular filters" shortcut back to the atomic bucket it
// re-derives its count from. The popular group is a convenience layer over
// the same buckets, never an independent computation.
type popularItem struct {
	id     string
	label  string
	bucket string
}

var popularItems = []popularItem{
	{"pop_breakfast", "Breakfast included", MealBreakfastID},
	{"pop_free_cxl", "Free cancellation", PayFreeCancellationID},
	{"pop_parking", "Parking", "amen_parking"},
	{"pop_hotels", "Hotels", "ptype_hotel"},
	{"pop_apartments", "Apartments", "ptype_apartment"},
	{"pop_hostels", "Hostels", "ptype_hostel"},
	{"pop_rating9", "Superb: 9+", "review_9"},
	{"pop_rating8", "Very good: 8+", "review_8"},
}

// showAllThreshold: open-vocabulary groups longer than this get a
// presentational "Show all N" label.
const showAllThreshold = 5

// Builder assembles facet groups from a listing set.
type Builder struct {
	labels *Labels
}

// NewBuilder creates a facet builder with the given label dictionary.
func NewBuilder(labels *Labels) *Builder {
	if labels == nil {
		labels = DefaultLabels()
	}
	return &Builder{labels: labels}
}

// Build produces the ordered facet group list for a listing set. Items with
// a zero count are dropped, and a group with no remaining items is omitted
// entirely.
func (b *Builder) Build(listings []model.Listing) []model.FacetGroup {
	counts := make(map[string]int)
	catCounts := make(map[string]int)

	// Single pass over the listing set accumulating flat bucket counts.
	for _, l := range listings {
		rating := normalize.Rating(l)
		for _, t := range ReviewThresholds {
			if rating >= float64(t) {
				counts[fmt.Sprintf("review_%d", t)]++
			}
		}

		if s := int(math.Floor(normalize.Stars(l))); s >= 1 && s <= 5 {
			counts[fmt.Sprintf("stars_%d", s)]++
		}

		if pt := normalize.PropertyType(l); pt != "" {
			counts["ptype_"+pt]++
		}

		for a := range normalize.Amenities(l) {
			counts["amen_"+a]++
		}

		meals := normalize.Meals(l)
		if meals[normalize.MealBreakfast] {
			counts[MealBreakfastID]++
		}
		if meals[normalize.MealAllInclusive] {
			counts[MealAllID]++
		}

		if normalize.FreeCancellation(l) {
			counts[PayFreeCancellationID]++
		}
		if normalize.NoPrepayment(l) {
			counts[PayNoPrepaymentID]++
		}
		if normalize.AcceptsOnlinePayments(l) {
			counts[PayOnlineID]++
		}

		if d, ok := normalize.Distance(l); ok {
			if d < 1 {
				counts[DistUnder1ID]++
			}
			if d < 3 {
				counts[DistUnder3ID]++
			}
			if d < 5 {
				counts[DistUnder5ID]++
			}
		}

		if h := normalize.Neighbourhood(l); h != "" {
			counts["hood_"+h]++
		}
		if br := normalize.Brand(l); br != "" {
			counts["brand_"+br]++
		}

		// Categories are open-vocabulary: counted from the tokenizer
		// directly rather than through a curated bucket list.
		for token := range normalize.Categories(l) {
			catCounts[token]++
		}
	}

	groups := []model.FacetGroup{
		b.popularGroup(counts),
		b.reviewGroup(counts),
		b.starsGroup(counts),
		b.propertyTypeGroup(counts),
		b.facilitiesGroup(counts),
		b.mealsGroup(counts),
		b.paymentGroup(counts),
		b.distanceGroup(counts),
		b.prefixGroup(counts, GroupNeighbourhood, "Neighbourhood", "hood_"),
		b.prefixGroup(counts, GroupBrand, "Hotel chain", "brand_"),
		b.categoriesGroup(catCounts),
	}

	out := make([]model.FacetGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Items) > 0 {
			out = append(out, g)
		}
	}
	return out
}

func (b *Builder) popularGroup(counts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupPopular, Title: "Popular filters"}
	for _, p := range popularItems {
		if c := counts[p.bucket]; c > 0 {
			g.Items = append(g.Items, model.FacetItem{ID: p.id, Label: p.label, Count: c})
		}
	}
	return g
}

func (b *Builder) reviewGroup(counts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupReview, Title: "Review score"}
	for _, t := range ReviewThresholds {
		id := fmt.Sprintf("review_%d", t)
		if c := counts[id]; c > 0 {
			g.Items = append(g.Items, model.FacetItem{ID: id, Label: reviewLabels[t], Count: c})
		}
	}
	return g
}

func (b *Builder) starsGroup(counts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupStars, Title: "Star rating"}
	for s := 5; s >= 1; s-- {
		id := fmt.Sprintf("stars_%d", s)
		if c := counts[id]; c > 0 {
			label := fmt.Sprintf("%d stars", s)
			if s == 1 {
				label = "1 star"
			}
			g.Items = append(g.Items, model.FacetItem{ID: id, Label: label, Count: c})
		}
	}
	return g
}

func (b *Builder) propertyTypeGroup(counts map[string]int) model.FacetGroup {
	g := b.prefixGroup(counts, GroupPropertyType, "Property type", "ptype_")
	for i := range g.Items {
		g.Items[i].Label = b.labels.PropertyType(g.Items[i].ID[len("ptype_"):])
	}
	return g
}

func (b *Builder) facilitiesGroup(counts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupFacilities, Title: "Facilities"}
	for _, id := range b.labels.FacilityOrder {
		if c := counts["amen_"+id]; c > 0 {
			g.Items = append(g.Items, model.FacetItem{ID: "amen_" + id, Label: b.labels.Facility(id), Count: c})
		}
	}
	if len(g.Items) > showAllThreshold {
		g.ShowAllLabel = fmt.Sprintf("Show all %d", len(g.Items))
	}
	return g
}

func (b *Builder) mealsGroup(counts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupMeals, Title: "Meals"}
	if c := counts[MealBreakfastID]; c > 0 {
		g.Items = append(g.Items, model.FacetItem{ID: MealBreakfastID, Label: "Breakfast included", Count: c})
	}
	if c := counts[MealAllID]; c > 0 {
		g.Items = append(g.Items, model.FacetItem{ID: MealAllID, Label: "All-inclusive", Count: c})
	}
	return g
}

func (b *Builder) paymentGroup(counts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupPayment, Title: "Payment options"}
	items := []struct {
		id    string
		label string
	}{
		{PayFreeCancellationID, "Free cancellation"},
		{PayNoPrepaymentID, "No prepayment needed"},
		{PayOnlineID, "Accepts online payments"},
	}
	for _, it := range items {
		if c := counts[it.id]; c > 0 {
			g.Items = append(g.Items, model.FacetItem{ID: it.id, Label: it.label, Count: c})
		}
	}
	return g
}

func (b *Builder) distanceGroup(counts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupDistance, Title: "Distance from centre"}
	items := []struct {
		id    string
		label string
	}{
		{DistUnder1ID, "Less than 1 km"},
		{DistUnder3ID, "Less than 3 km"},
		{DistUnder5ID, "Less than 5 km"},
	}
	for _, it := range items {
		if c := counts[it.id]; c > 0 {
			g.Items = append(g.Items, model.FacetItem{ID: it.id, Label: it.label, Count: c})
		}
	}
	return g
}

// prefixGroup collects every bucket under an id prefix into a group, sorted
// by count descending then label ascending, title-casing the raw value.
func (b *Builder) prefixGroup(counts map[string]int, key, title, prefix string) model.FacetGroup {
	g := model.FacetGroup{Key: key, Title: title}
	for id, c := range counts {
		if c > 0 && len(id) > len(prefix) && id[:len(prefix)] == prefix {
			g.Items = append(g.Items, model.FacetItem{ID: id, Label: TitleCase(id[len(prefix):]), Count: c})
		}
	}
	sortItems(g.Items)
	if len(g.Items) > showAllThreshold {
		g.ShowAllLabel = fmt.Sprintf("Show all %d", len(g.Items))
	}
	return g
}

func (b *Builder) categoriesGroup(catCounts map[string]int) model.FacetGroup {
	g := model.FacetGroup{Key: GroupCategories, Title: "Categories"}
	for token, c := range catCounts {
		if c > 0 {
			g.Items = append(g.Items, model.FacetItem{ID: "cat_" + token, Label: TitleCase(token), Count: c})
		}
	}
	sortItems(g.Items)
	if len(g.Items) > showAllThreshold {
		g.ShowAllLabel = fmt.Sprintf("Show all %d", len(g.Items))
	}
	return g
}

func sortItems(items []model.FacetItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})
}
