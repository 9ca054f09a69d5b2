// Package normalize coerces loosely-typed listing fields into canonical
// values. Every accessor is total: missing or malformed fields yield a safe
// default, never a panic. This package is the single point where upstream
// schema drift (alternate field names, boxed numbers, composite category
// strings) is absorbed.
package normalize

import (
	"strconv"
	"strings"

	"hotelsearch/internal/model"
)

// Meal plan identifiers produced by Meals.
const (
	MealBreakfast    = "breakfast"
	MealAllInclusive = "all_inclusive"
)

// propertyTypePrecedence is checked in order when a listing carries no
// explicit type field; the first category match wins.
var propertyTypePrecedence = []string{
	"hotel",
	"apartment",
	"hostel",
	"villa",
	"guest house",
	"motel",
	"bed and breakfast",
	"campsite",
}

// Number coerces a raw value into a float64. It accepts native numbers,
// numeric strings, and boxed numeric wrappers from database export formats
// ({"$numberDouble": "12.5"} and friends). Returns false if unparsable.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case map[string]any:
		for _, key := range []string{"$numberDouble", "$numberDecimal", "$numberLong", "$numberInt"} {
			if inner, ok := n[key]; ok {
				return Number(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// Price returns the listing's price, preferring the total price over the
// "price from" value. Returns false when neither resolves to a number.
func Price(l model.Listing) (float64, bool) {
	if v, ok := l.Get("totalPrice", "total_price", "price"); ok {
		if f, ok := Number(v); ok {
			return f, true
		}
	}
	if v, ok := l.Get("priceFrom", "price_from"); ok {
		if f, ok := Number(v); ok {
			return f, true
		}
	}
	return 0, false
}

// Rating returns the listing's average review score, 0 when absent.
func Rating(l model.Listing) float64 {
	if v, ok := l.Get("averageRating", "average_rating", "rating", "reviewScore", "review_score"); ok {
		if f, ok := Number(v); ok {
			return f
		}
	}
	return 0
}

// Stars returns the listing's star classification, 0 when absent.
func Stars(l model.Listing) float64 {
	if v, ok := l.Get("stars", "starRating", "star_rating"); ok {
		if f, ok := Number(v); ok {
			return f
		}
	}
	return 0
}

// PropertyType returns the lower-cased property type. When no explicit type
// field is present the type is inferred from the category tokens via a fixed
// precedence list (hotel > apartment > hostel > ...), first match wins.
func PropertyType(l model.Listing) string {
	if v, ok := l.Get("propertyType", "property_type", "type"); ok {
		if s, ok := asString(v); ok && s != "" {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	cats := Categories(l)
	for _, pt := range propertyTypePrecedence {
		for token := range cats {
			if strings.Contains(token, pt) {
				return pt
			}
		}
	}
	return ""
}

// Amenities returns the union of the explicit amenity id collection and the
// lower-cased category token set; categories double as amenity signals.
func Amenities(l model.Listing) map[string]bool {
	out := make(map[string]bool)
	if v, ok := l.Get("amenities", "facilities", "amenityIds", "amenity_ids"); ok {
		for _, s := range asStringSlice(v) {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				out[s] = true
			}
		}
	}
	for token := range Categories(l) {
		out[token] = true
	}
	return out
}

// Meals scans the explicit meals field and the category tokens for the
// breakfast / all-inclusive phrases. The result holds zero, one, or both of
// MealBreakfast and MealAllInclusive.
func Meals(l model.Listing) map[string]bool {
	out := make(map[string]bool)
	scan := func(s string) {
		s = strings.ToLower(s)
		if strings.Contains(s, "breakfast included") {
			out[MealBreakfast] = true
		}
		if strings.Contains(s, "all-inclusive") || strings.Contains(s, "all inclusive") {
			out[MealAllInclusive] = true
		}
	}
	if v, ok := l.Get("meals", "mealPlans", "meal_plans"); ok {
		for _, s := range asStringSlice(v) {
			scan(s)
		}
	}
	for token := range Categories(l) {
		scan(token)
	}
	return out
}

// FreeCancellation reports whether the listing offers free cancellation,
// from a direct flag, the payment-options object, or a category tag.
func FreeCancellation(l model.Listing) bool {
	return paymentFlag(l, []string{"freeCancellation", "free_cancellation"}, "free cancellation")
}

// NoPrepayment reports whether the listing requires no prepayment.
func NoPrepayment(l model.Listing) bool {
	return paymentFlag(l, []string{"noPrepayment", "no_prepayment"}, "no prepayment")
}

// AcceptsOnlinePayments reports whether the listing accepts online payments.
func AcceptsOnlinePayments(l model.Listing) bool {
	return paymentFlag(l, []string{"acceptsOnlinePayments", "accepts_online_payments", "onlinePayment"}, "online payment")
}

func paymentFlag(l model.Listing, fields []string, categoryPhrase string) bool {
	if v, ok := l.Get(fields...); ok && truthy(v) {
		return true
	}
	if v, ok := l.Get("paymentOptions", "payment_options"); ok {
		if opts, ok := v.(map[string]any); ok {
			for _, f := range fields {
				if inner, ok := opts[f]; ok && truthy(inner) {
					return true
				}
			}
		}
	}
	for token := range Categories(l) {
		if strings.Contains(token, categoryPhrase) {
			return true
		}
	}
	return false
}

// Distance returns the distance from the centre in kilometres; false when
// absent or unparsable.
func Distance(l model.Listing) (float64, bool) {
	if v, ok := l.Get("distanceFromCenter", "distance_from_center", "distanceKm", "distance_km", "distance"); ok {
		return Number(v)
	}
	return 0, false
}

// Neighbourhood returns the lower-cased neighbourhood name, "" when absent.
// The empty string is a valid, always-false match target.
func Neighbourhood(l model.Listing) string {
	if v, ok := l.Get("neighbourhood", "neighborhood", "area", "district"); ok {
		if s, ok := asString(v); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

// Brand returns the lower-cased brand/chain name, "" when absent.
func Brand(l model.Listing) string {
	if v, ok := l.Get("brand", "brandName", "brand_name", "chain"); ok {
		if s, ok := asString(v); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

// Categories tokenizes the free-text category collection. Each raw entry is
// split on "|", trimmed, lower-cased, and empties are discarded; the result
// is the union across all entries.
func Categories(l model.Listing) map[string]bool {
	out := make(map[string]bool)
	v, ok := l.Get("categories", "category", "tags")
	if !ok {
		return out
	}
	for _, raw := range asStringSlice(v) {
		for _, part := range strings.Split(raw, "|") {
			token := strings.ToLower(strings.TrimSpace(part))
			if token != "" {
				out[token] = true
			}
		}
	}
	return out
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asStringSlice flattens a raw field into strings: accepts a single string,
// []string, or a JSON-decoded []any of strings.
func asStringSlice(v any) []string {
	switch s := v.(type) {
	case string:
		return []string{s}
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "yes" || s == "1"
	default:
		if f, ok := Number(v); ok {
			return f != 0
		}
		return false
	}
}
