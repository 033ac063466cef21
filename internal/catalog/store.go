// Package catalog holds the fixed restaurant/menu catalog. The store is
// immutable after construction; every accessor returns copies so callers can
// never mutate shared state.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"nearbite/go-backend/pkg/models"
)

//go:embed seed.yaml
var defaultSeed []byte

var (
	ErrUnknownRestaurant = errors.New("unknown restaurant")
	ErrUnknownMenuItem   = errors.New("unknown menu item")
)

type seedFile struct {
	Restaurants []seedRestaurant `yaml:"restaurants"`
}

type seedRestaurant struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Cuisine     string     `yaml:"cuisine"`
	Description string     `yaml:"description"`
	Rating      float64    `yaml:"rating"`
	Menu        []seedItem `yaml:"menu"`
}

type seedItem struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	PriceSen int64  `yaml:"price_sen"`
	Calories string `yaml:"calories"`
	Healthy  bool   `yaml:"healthy"`
}

type Store struct {
	restaurants []models.Restaurant
	byID        map[string]int
	items       map[string]models.MenuItem
	itemOwner   map[string]string
}

// NewStore builds the store from the embedded seed. The seed ships with the
// binary and is validated at build time by the package tests, so a failure
// here is a programming error.
func NewStore() *Store {
	s, err := Parse(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded seed is invalid: %v", err))
	}
	return s
}

// LoadFromPath reads a catalog seed from path, falling back to the embedded
// seed when path is empty or unreadable.
func LoadFromPath(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return NewStore(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return NewStore(), nil
	}
	return Parse(data)
}

func Parse(data []byte) (*Store, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("catalog: parse seed: %w", err)
	}
	if len(seed.Restaurants) == 0 {
		return nil, errors.New("catalog: seed contains no restaurants")
	}

	s := &Store{
		byID:      make(map[string]int),
		items:     make(map[string]models.MenuItem),
		itemOwner: make(map[string]string),
	}
	for _, raw := range seed.Restaurants {
		id := strings.TrimSpace(raw.ID)
		name := strings.TrimSpace(raw.Name)
		if id == "" || name == "" {
			return nil, errors.New("catalog: restaurant id and name are required")
		}
		if _, exists := s.byID[id]; exists {
			return nil, fmt.Errorf("catalog: duplicate restaurant id %q", id)
		}
		res := models.Restaurant{
			ID:          id,
			Name:        name,
			Cuisine:     strings.TrimSpace(raw.Cuisine),
			Description: strings.TrimSpace(raw.Description),
			Rating:      raw.Rating,
		}
		for _, rawItem := range raw.Menu {
			itemID := strings.TrimSpace(rawItem.ID)
			itemName := strings.TrimSpace(rawItem.Name)
			if itemID == "" || itemName == "" {
				return nil, fmt.Errorf("catalog: menu item id and name are required in restaurant %q", id)
			}
			if _, exists := s.items[itemID]; exists {
				return nil, fmt.Errorf("catalog: duplicate menu item id %q", itemID)
			}
			if rawItem.PriceSen < 0 {
				return nil, fmt.Errorf("catalog: menu item %q has negative price", itemID)
			}
			item := models.MenuItem{
				ID:           itemID,
				RestaurantID: id,
				Name:         itemName,
				PriceSen:     rawItem.PriceSen,
				Calories:     strings.TrimSpace(rawItem.Calories),
				Healthy:      rawItem.Healthy,
			}
			res.Menu = append(res.Menu, item)
			s.items[itemID] = item
			s.itemOwner[itemID] = name
		}
		s.byID[id] = len(s.restaurants)
		s.restaurants = append(s.restaurants, res)
	}
	return s, nil
}

// Restaurants returns the full list in seed order.
func (s *Store) Restaurants() []models.Restaurant {
	return cloneRestaurants(s.restaurants)
}

func (s *Store) Restaurant(id string) (models.Restaurant, error) {
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return models.Restaurant{}, ErrUnknownRestaurant
	}
	return cloneRestaurant(s.restaurants[idx]), nil
}

// Item resolves a menu item and the display name of its owning restaurant.
func (s *Store) Item(itemID string) (models.MenuItem, string, error) {
	item, ok := s.items[strings.TrimSpace(itemID)]
	if !ok {
		return models.MenuItem{}, "", ErrUnknownMenuItem
	}
	return item, s.itemOwner[item.ID], nil
}

// Search filters restaurants by a case-insensitive substring match on name or
// cuisine. An empty query returns the full list.
func (s *Store) Search(query string) []models.Restaurant {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Restaurants()
	}
	var out []models.Restaurant
	for _, res := range s.restaurants {
		if strings.Contains(strings.ToLower(res.Name), query) || strings.Contains(strings.ToLower(res.Cuisine), query) {
			out = append(out, cloneRestaurant(res))
		}
	}
	return out
}

func cloneRestaurants(in []models.Restaurant) []models.Restaurant {
	out := make([]models.Restaurant, len(in))
	for i := range in {
		out[i] = cloneRestaurant(in[i])
	}
	return out
}

func cloneRestaurant(in models.Restaurant) models.Restaurant {
	out := in
	out.Menu = append([]models.MenuItem(nil), in.Menu...)
	return out
}
