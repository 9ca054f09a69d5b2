package filter

import (
	"math"
	"strconv"
	"strings"

	"hotelsearch/internal/facet"
	"hotelsearch/internal/model"
	"hotelsearch/internal/normalize"
)

var distanceLimits = map[string]float64{
	facet.DistUnder1ID: 1,
	facet.DistUnder3ID: 3,
	facet.DistUnder5ID: 5,
}

// Matches reports whether a listing passes every active constraint of the
// selection. It is pure and total: malformed listings are never an error,
// they simply fail the checks whose fields they are missing. A listing
// missing a field for an inactive group is never penalized. Checks
// short-circuit on the first failure; order only affects speed.
func Matches(l model.Listing, s Selection) bool {
	if !matchesPrice(l, s) {
		return false
	}
	if !matchesReview(l, s.IDs(facet.GroupReview)) {
		return false
	}
	if !matchesStars(l, s.IDs(facet.GroupStars)) {
		return false
	}
	if !matchesPropertyType(l, s.IDs(facet.GroupPropertyType)) {
		return false
	}
	if !matchesFacilities(l, s.IDs(facet.GroupFacilities)) {
		return false
	}
	if !matchesMeals(l, s.IDs(facet.GroupMeals)) {
		return false
	}
	if !matchesPayment(l, s.IDs(facet.GroupPayment)) {
		return false
	}
	if !matchesDistance(l, s.IDs(facet.GroupDistance)) {
		return false
	}
	if !matchesName(normalize.Neighbourhood(l), "hood_", s.IDs(facet.GroupNeighbourhood)) {
		return false
	}
	if !matchesName(normalize.Brand(l), "brand_", s.IDs(facet.GroupBrand)) {
		return false
	}
	if !matchesCategories(l, s.IDs(facet.GroupCategories)) {
		return false
	}
	return matchesPopular(l, s.IDs(facet.GroupPopular))
}

// Apply filters the listing set, preserving input order. The result is
// always a subset of the input.
func Apply(listings []model.Listing, s Selection) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, s) {
			out = append(out, l)
		}
	}
	return out
}

// matchesPrice applies the bounds only when the listing's price resolves; a
// listing with an unknown price is never excluded by the price filter.
func matchesPrice(l model.Listing, s Selection) bool {
	if s.PriceMin == nil && s.PriceMax == nil {
		return true
	}
	price, ok := normalize.Price(l)
	if !ok {
		return true
	}
	if s.PriceMin != nil && price < *s.PriceMin {
		return false
	}
	if s.PriceMax != nil && price > *s.PriceMax {
		return false
	}
	return true
}

// matchesReview binds only the highest selected threshold: selecting a lower
// tier does not relax a higher one.
func matchesReview(l model.Listing, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	threshold := 0
	for _, id := range ids {
		if t := reviewThreshold(id); t > threshold {
			threshold = t
		}
	}
	if threshold == 0 {
		return true
	}
	return normalize.Rating(l) >= float64(threshold)
}

// reviewThreshold pattern-matches a review item id or label for its tier.
func reviewThreshold(id string) int {
	s := strings.ToLower(id)
	switch {
	case strings.Contains(s, "9") || strings.Contains(s, "superb"):
		return 9
	case strings.Contains(s, "8") || strings.Contains(s, "very good"):
		return 8
	case strings.Contains(s, "7") || strings.Contains(s, "good"):
		return 7
	case strings.Contains(s, "6") || strings.Contains(s, "pleasant"):
		return 6
	default:
		return 0
	}
}

// matchesStars requires floor(stars) to equal one of the selected values; an
// id with a "plus" suffix relaxes its check to >=.
func matchesStars(l model.Listing, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	stars := int(math.Floor(normalize.Stars(l)))
	for _, id := range ids {
		raw := strings.TrimPrefix(id, "stars_")
		if n, ok := strings.CutSuffix(raw, "plus"); ok {
			if want, err := strconv.Atoi(n); err == nil && stars >= want {
				return true
			}
			continue
		}
		if want, err := strconv.Atoi(raw); err == nil && stars == want {
			return true
		}
	}
	return false
}

// matchesPropertyType uses substring matching to tolerate compound type
// strings; any selected token passing suffices.
func matchesPropertyType(l model.Listing, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	pt := normalize.PropertyType(l)
	if pt == "" {
		return false
	}
	for _, id := range ids {
		token := strings.ToLower(strings.TrimPrefix(id, "ptype_"))
		if token != "" && strings.Contains(pt, token) {
			return true
		}
	}
	return false
}

// matchesFacilities is conjunctive: the listing must carry every selected
// amenity, unlike the disjunctive semantics of most other groups.
func matchesFacilities(l model.Listing, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	amenities := normalize.Amenities(l)
	for _, id := range ids {
		token := strings.ToLower(strings.TrimPrefix(id, "amen_"))
		if !amenities[token] {
			return false
		}
	}
	return true
}

func matchesMeals(l model.Listing, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	meals := normalize.Meals(l)
	for _, id := range ids {
		switch id {
		case facet.MealBreakfastID:
			if !meals[normalize.MealBreakfast] {
				return false
			}
		case facet.MealAllID:
			if !meals[normalize.MealAllInclusive] {
				return false
			}
		}
	}
	return true
}

func matchesPayment(l model.Listing, ids []string) bool {
	for _, id := range ids {
		switch id {
		case facet.PayFreeCancellationID:
			if !normalize.FreeCancellation(l) {
				return false
			}
		case facet.PayNoPrepaymentID:
			if !normalize.NoPrepayment(l) {
				return false
			}
		case facet.PayOnlineID:
			if !normalize.AcceptsOnlinePayments(l) {
				return false
			}
		}
	}
	return true
}

// matchesDistance is disjunctive: satisfying any selected bucket passes.
func matchesDistance(l model.Listing, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	d, ok := normalize.Distance(l)
	if !ok {
		return false
	}
	for _, id := range ids {
		if limit, known := distanceLimits[id]; known && d < limit {
			return true
		}
	}
	return false
}

// matchesName does disjunctive substring containment against a normalized
// neighbourhood or brand name. The empty string never matches anything.
func matchesName(value, prefix string, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	for _, id := range ids {
		token := strings.ToLower(strings.TrimPrefix(id, prefix))
		if token != "" && strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// matchesCategories is conjunctive: every selected token must appear as a
// substring of at least one of the listing's category tokens.
func matchesCategories(l model.Listing, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	cats := normalize.Categories(l)
	for _, id := range ids {
		token := strings.ToLower(strings.TrimPrefix(id, "cat_"))
		found := false
		for c := range cats {
			if strings.Contains(c, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesPopular maps each selected shortcut back to its atomic check; all
// selected shortcuts are independently enforced.
func matchesPopular(l model.Listing, ids []string) bool {
	for _, id := range ids {
		switch id {
		case "pop_breakfast":
			if !normalize.Meals(l)[normalize.MealBreakfast] {
				return false
			}
		case "pop_free_cxl":
			if !normalize.FreeCancellation(l) {
				return false
			}
		case "pop_parking":
			if !normalize.Amenities(l)["parking"] {
				return false
			}
		case "pop_hotels":
			if !strings.Contains(normalize.PropertyType(l), "hotel") {
				return false
			}
		case "pop_apartments":
			if !strings.Contains(normalize.PropertyType(l), "apartment") {
				return false
			}
		case "pop_hostels":
			if !strings.Contains(normalize.PropertyType(l), "hostel") {
				return false
			}
		case "pop_rating9":
			if normalize.Rating(l) < 9 {
				return false
			}
		case "pop_rating8":
			if normalize.Rating(l) < 8 {
				return false
			}
		}
	}
	return true
}
