package normalize

import (
	"testing"

	"hotelsearch/internal/model"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"float", 94.5, 94.5, true},
		{"int", 4, 4, true},
		{"numeric string", "12.5", 12.5, true},
		{"boxed double", map[string]any{"$numberDouble": "94.5"}, 94.5, true},
		{"boxed int", map[string]any{"$numberInt": "7"}, 7, true},
		{"garbage string", "cheap", 0, false},
		{"nil", nil, 0, false},
		{"empty map", map[string]any{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			if ok != tt.ok {
				t.Fatalf("Number(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Number(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		listing model.Listing
		want    float64
		ok      bool
	}{
		{"total price preferred", model.Listing{"totalPrice": 150.0, "priceFrom": 99.0}, 150, true},
		{"falls back to price from", model.Listing{"priceFrom": 99.0}, 99, true},
		{"boxed price", model.Listing{"price": map[string]any{"$numberDouble": "120"}}, 120, true},
		{"unparsable total falls through", model.Listing{"totalPrice": "n/a", "priceFrom": 80.0}, 80, true},
		{"absent", model.Listing{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Price(tt.listing)
			if ok != tt.ok {
				t.Fatalf("Price() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Price() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRatingDefaultsToZero(t *testing.T) {
	if got := Rating(model.Listing{}); got != 0 {
		t.Errorf("Rating of empty listing = %v, want 0", got)
	}
	if got := Rating(model.Listing{"averageRating": 9.2}); got != 9.2 {
		t.Errorf("Rating = %v, want 9.2", got)
	}
}

func TestPropertyType(t *testing.T) {
	tests := []struct {
		name    string
		listing model.Listing
		want    string
	}{
		{"explicit field wins", model.Listing{"propertyType": "Hotel", "categories": []any{"Hostels"}}, "hotel"},
		{"inferred from categories", model.Listing{"categories": []any{"Hostels"}}, "hostel"},
		{"precedence: hotel before hostel", model.Listing{"categories": []any{"Hostels", "Hotels"}}, "hotel"},
		{"guest house inferred", model.Listing{"categories": []any{"Guest houses"}}, "guest house"},
		{"nothing known", model.Listing{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PropertyType(tt.listing); got != tt.want {
				t.Errorf("PropertyType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoriesTokenizer(t *testing.T) {
	l := model.Listing{"categories": []any{"Hotels | Breakfast included", " Spa ", ""}}
	got := Categories(l)

	want := []string{"hotels", "breakfast included", "spa"}
	if len(got) != len(want) {
		t.Fatalf("Categories() returned %d tokens, want %d: %v", len(got), len(want), got)
	}
	for _, token := range want {
		if !got[token] {
			t.Errorf("Categories() missing token %q", token)
		}
	}
}

func TestAmenitiesUnionsCategories(t *testing.T) {
	l := model.Listing{
		"amenities":  []any{"WiFi", "Parking"},
		"categories": []any{"Hotels | Breakfast included"},
	}
	got := Amenities(l)

	for _, token := range []string{"wifi", "parking", "hotels", "breakfast included"} {
		if !got[token] {
			t.Errorf("Amenities() missing %q", token)
		}
	}
}

func TestMeals(t *testing.T) {
	tests := []struct {
		name          string
		listing       model.Listing
		wantBreakfast bool
		wantAll       bool
	}{
		{"from categories", model.Listing{"categories": []any{"Hotels | Breakfast included"}}, true, false},
		{"all inclusive hyphenated", model.Listing{"meals": []any{"All-inclusive"}}, false, true},
		{"all inclusive spaced", model.Listing{"meals": "all inclusive"}, false, true},
		{"both", model.Listing{"meals": []any{"Breakfast included", "All inclusive"}}, true, true},
		{"none", model.Listing{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Meals(tt.listing)
			if got[MealBreakfast] != tt.wantBreakfast {
				t.Errorf("breakfast = %v, want %v", got[MealBreakfast], tt.wantBreakfast)
			}
			if got[MealAllInclusive] != tt.wantAll {
				t.Errorf("all-inclusive = %v, want %v", got[MealAllInclusive], tt.wantAll)
			}
		})
	}
}

func TestPaymentFlags(t *testing.T) {
	tests := []struct {
		name    string
		listing model.Listing
		check   func(model.Listing) bool
		want    bool
	}{
		{"direct bool", model.Listing{"freeCancellation": true}, FreeCancellation, true},
		{"nested options", model.Listing{"paymentOptions": map[string]any{"noPrepayment": true}}, NoPrepayment, true},
		{"category tag", model.Listing{"categories": []any{"Free cancellation"}}, FreeCancellation, true},
		{"truthy string", model.Listing{"acceptsOnlinePayments": "yes"}, AcceptsOnlinePayments, true},
		{"absent", model.Listing{}, FreeCancellation, false},
		{"false flag", model.Listing{"noPrepayment": false}, NoPrepayment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.listing); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeighbourhoodAndBrand(t *testing.T) {
	l := model.Listing{"neighbourhood": " Montmartre ", "brand": "Ibis"}
	if got := Neighbourhood(l); got != "montmartre" {
		t.Errorf("Neighbourhood() = %q, want %q", got, "montmartre")
	}
	if got := Brand(l); got != "ibis" {
		t.Errorf("Brand() = %q, want %q", got, "ibis")
	}
	if got := Neighbourhood(model.Listing{}); got != "" {
		t.Errorf("Neighbourhood of empty listing = %q, want empty", got)
	}
}

func TestDistance(t *testing.T) {
	if _, ok := Distance(model.Listing{}); ok {
		t.Error("Distance of empty listing should be unknown")
	}
	d, ok := Distance(model.Listing{"distanceFromCenter": 2.4})
	if !ok || d != 2.4 {
		t.Errorf("Distance() = %v, %v; want 2.4, true", d, ok)
	}
}
