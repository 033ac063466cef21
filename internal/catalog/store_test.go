package catalog

import (
	"errors"
	"testing"
)

func TestEmbeddedSeedLoads(t *testing.T) {
	s := NewStore()
	restaurants := s.Restaurants()
	if len(restaurants) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(restaurants))
	}
	if restaurants[0].ID != "r1" || restaurants[0].Name != "Dapur Sihat Machang" {
		t.Fatalf("unexpected first restaurant: %#v", restaurants[0])
	}
	if len(restaurants[0].Menu) != 3 || len(restaurants[1].Menu) != 2 {
		t.Fatalf("unexpected menu sizes: %d and %d", len(restaurants[0].Menu), len(restaurants[1].Menu))
	}
}

func TestItemLookup(t *testing.T) {
	s := NewStore()
	item, owner, err := s.Item("m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Name != "Nasi Kerabu Quinoa" || item.PriceSen != 1550 {
		t.Fatalf("unexpected item: %#v", item)
	}
	if owner != "Dapur Sihat Machang" {
		t.Fatalf("unexpected owner name: %q", owner)
	}
	if _, _, err := s.Item("nope"); !errors.Is(err, ErrUnknownMenuItem) {
		t.Fatalf("expected ErrUnknownMenuItem, got %v", err)
	}
}

func TestRestaurantLookup(t *testing.T) {
	s := NewStore()
	res, err := s.Restaurant("r2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cuisine != "Local" || res.Rating != 4.5 {
		t.Fatalf("unexpected restaurant: %#v", res)
	}
	if _, err := s.Restaurant("r9"); !errors.Is(err, ErrUnknownRestaurant) {
		t.Fatalf("expected ErrUnknownRestaurant, got %v", err)
	}
}

func TestSearchFiltersByNameAndCuisine(t *testing.T) {
	s := NewStore()
	if got := s.Search("fusion"); len(got) != 2 {
		t.Fatalf("expected both restaurants for %q, got %d", "fusion", len(got))
	}
	if got := s.Search("dapur"); len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("unexpected result for name search: %#v", got)
	}
	if got := s.Search("pizza"); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
	if got := s.Search("  "); len(got) != 2 {
		t.Fatalf("blank query must return everything, got %d", len(got))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewStore()
	first := s.Restaurants()
	first[0].Name = "mutated"
	first[0].Menu[0].PriceSen = 9999

	again := s.Restaurants()
	if again[0].Name != "Dapur Sihat Machang" {
		t.Fatal("restaurant list must be copied, not aliased")
	}
	if again[0].Menu[0].PriceSen != 1550 {
		t.Fatal("menu slice must be copied, not aliased")
	}
}

func TestParseRejectsBadSeeds(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", "restaurants: []"},
		{"missing restaurant id", "restaurants:\n  - name: X"},
		{"duplicate restaurant id", "restaurants:\n  - id: a\n    name: X\n  - id: a\n    name: Y"},
		{"duplicate item id", "restaurants:\n  - id: a\n    name: X\n    menu:\n      - id: i\n        name: A\n      - id: i\n        name: B"},
		{"negative price", "restaurants:\n  - id: a\n    name: X\n    menu:\n      - id: i\n        name: A\n        price_sen: -1"},
		{"not yaml", ":- ["},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.data)); err == nil {
			t.Fatalf("%s: expected parse error", tc.name)
		}
	}
}

func TestLoadFromPathFallsBackToEmbedded(t *testing.T) {
	s, err := LoadFromPath("/does/not/exist.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Restaurants()) != 2 {
		t.Fatal("expected embedded seed fallback")
	}
}
