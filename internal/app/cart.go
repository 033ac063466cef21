package app

import (
	"errors"
	"time"

	"nearbite/go-backend/pkg/models"
)

var (
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrLineIndexOutOfRange = errors.New("cart line index out of range")
)

// Cart accumulates lines in stable display order. At most one line exists per
// menu item id; repeat adds of the same item merge into that line.
type Cart struct {
	lines []models.CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem merges quantity into an existing line for the item, or appends a
// new line that snapshots the item's name, price and restaurant at add time.
func (c *Cart) AddItem(item models.MenuItem, restaurantName string, quantity int, now time.Time) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ItemID:         item.ID,
		Name:           item.Name,
		RestaurantName: restaurantName,
		PriceSen:       item.PriceSen,
		Quantity:       quantity,
		AddedAt:        now,
	})
	return nil
}

// RemoveLine deletes the line at index and returns it. An out-of-range index
// leaves the cart untouched.
func (c *Cart) RemoveLine(index int) (models.CartLine, error) {
	if index < 0 || index >= len(c.lines) {
		return models.CartLine{}, ErrLineIndexOutOfRange
	}
	removed := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return removed, nil
}

// Total recomputes the cart total on every call; it is never cached.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.PriceSen * int64(line.Quantity)
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy; callers never see the backing slice.
func (c *Cart) Lines() []models.CartLine {
	return append([]models.CartLine(nil), c.lines...)
}

func (c *Cart) Snapshot() models.CartSnapshot {
	total := c.Total()
	return models.CartSnapshot{
		Lines:    c.Lines(),
		TotalSen: total,
		Total:    models.FormatRM(total),
	}
}
