// Package cart owns the per-owner shopping cart and its merge rules.
package cart

import (
	"context"
	"errors"
)

// Line is one named entry in a cart.
type Line struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart holds the lines of a single owner in the order they were first added.
type Cart struct {
	Owner string `json:"email"`
	Lines []Line `json:"items"`
}

// Repository defines behavior for persisting carts. Save replaces the whole
// document stored for c.Owner.
type Repository interface {
	Find(ctx context.Context, owner string) (Cart, error)
	Save(ctx context.Context, c Cart) error
}

var (
	// ErrNotFound indicates no cart is stored for the owner.
	ErrNotFound = errors.New("cart not found")
	// ErrOwnerRequired is returned when the owner identifier is empty.
	ErrOwnerRequired = errors.New("cart owner required")
	// ErrInvalidLine is returned for a line without a name or with a negative price.
	ErrInvalidLine = errors.New("invalid cart line")
)

// Merge applies an incoming line to lines. A line with the same name is
// bumped by exactly one unit whatever quantity was sent; otherwise the
// incoming line is appended.
func Merge(lines []Line, in Line) []Line {
	for i := range lines {
		if lines[i].Name == in.Name {
			lines[i].Quantity++
			return lines
		}
	}
	return append(lines, in)
}

// TotalQuantity sums the quantities of lines.
func TotalQuantity(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Total sums the subtotals of lines.
func Total(lines []Line) float64 {
	var t float64
	for _, l := range lines {
		t += l.Subtotal()
	}
	return t
}

func normalize(l Line) (Line, error) {
	if l.Name == "" || l.Price < 0 {
		return Line{}, ErrInvalidLine
	}
	if l.Quantity <= 0 {
		l.Quantity = 1
	}
	return l, nil
}
