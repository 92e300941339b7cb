// Package cart holds the per-session shopping cart and the pricing rules that
// gate checkout against the user's spending quota.
package cart

import (
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/google/uuid"
)

type Cart struct {
	lines []*models.CartLine
}

func New() *Cart {
	return &Cart{}
}

// AddItem increments the existing line for the product or appends a new line with quantity 1.
func (c *Cart) AddItem(p models.Product) models.CartLine {
	for _, line := range c.lines {
		if line.Product.ID == p.ID {
			line.Quantity++
			return *line
		}
	}

	line := &models.CartLine{
		LineID:   newLineID(p.ID),
		Product:  p,
		Quantity: 1,
	}
	c.lines = append(c.lines, line)

	return *line
}

// UpdateQuantity applies delta to the line, flooring at zero. A line that reaches
// zero is removed. Unknown line ids are ignored. It returns the resulting quantity.
func (c *Cart) UpdateQuantity(lineID string, delta int) (int, bool) {
	for i, line := range c.lines {
		if line.LineID != lineID {
			continue
		}

		line.Quantity = max(0, line.Quantity+delta)
		if line.Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return 0, true
		}

		return line.Quantity, true
	}

	return 0, false
}

func (c *Cart) Remove(lineID string) bool {
	line, ok := c.Line(lineID)
	if !ok {
		return false
	}

	_, ok = c.UpdateQuantity(lineID, -line.Quantity)

	return ok
}

func (c *Cart) QuantityOf(productID string) int {
	for _, line := range c.lines {
		if line.Product.ID == productID {
			return line.Quantity
		}
	}

	return 0
}

func (c *Cart) Line(lineID string) (models.CartLine, bool) {
	for _, line := range c.lines {
		if line.LineID == lineID {
			return *line, true
		}
	}

	return models.CartLine{}, false
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}

	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) ItemCount() int {
	var n int
	for _, line := range c.lines {
		n += line.Quantity
	}

	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

func newLineID(productID string) string {
	return productID + "-" + uuid.NewString()
}
