package cart_test

import (
	"math"
	"testing"

	"github.com/aaravmahajanofficial/afos-pos/internal/cart"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64, discount int) models.Product {
	return models.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    price,
		Discount: discount,
		Category: models.CategoryFood,
		Stock:    10,
	}
}

func TestAddItem(t *testing.T) {
	t.Run("Success - New Line", func(t *testing.T) {
		// Arrange
		c := cart.New()
		rice := product("rice", 1000, 0)

		// Act
		line := c.AddItem(rice)

		// Assert
		assert.Equal(t, 1, line.Quantity)
		assert.NotEmpty(t, line.LineID)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 1, c.QuantityOf("rice"))
	})

	t.Run("Success - Same Product Increments", func(t *testing.T) {
		// Arrange
		c := cart.New()
		rice := product("rice", 1000, 0)

		// Act
		first := c.AddItem(rice)
		second := c.AddItem(rice)

		// Assert
		assert.Equal(t, 1, c.Len(), "repeated adds must not duplicate the line")
		assert.Equal(t, 2, c.QuantityOf("rice"))
		assert.Equal(t, first.LineID, second.LineID, "line id must be stable across quantity updates")
	})

	t.Run("Success - Distinct Line Ids", func(t *testing.T) {
		c := cart.New()

		a := c.AddItem(product("a", 100, 0))
		b := c.AddItem(product("b", 100, 0))

		assert.NotEqual(t, a.LineID, b.LineID)
		assert.Equal(t, 2, c.Len())
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Success - Increment", func(t *testing.T) {
		c := cart.New()
		line := c.AddItem(product("soap", 500, 0))

		qty, found := c.UpdateQuantity(line.LineID, 3)

		assert.True(t, found)
		assert.Equal(t, 4, qty)
		assert.Equal(t, 4, c.QuantityOf("soap"))
	})

	t.Run("Success - Decrement Keeps Line", func(t *testing.T) {
		c := cart.New()
		line := c.AddItem(product("soap", 500, 0))
		c.UpdateQuantity(line.LineID, 2)

		qty, found := c.UpdateQuantity(line.LineID, -1)

		assert.True(t, found)
		assert.Equal(t, 2, qty)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("Success - Negative Quantity Removes Line", func(t *testing.T) {
		c := cart.New()
		line := c.AddItem(product("soap", 500, 0))
		c.UpdateQuantity(line.LineID, 1)

		qty, found := c.UpdateQuantity(line.LineID, -2)

		assert.True(t, found)
		assert.Equal(t, 0, qty)
		assert.True(t, c.IsEmpty())
		assert.Equal(t, 0, c.QuantityOf("soap"))
		_, ok := c.Line(line.LineID)
		assert.False(t, ok)
	})

	t.Run("Success - Large Negative Delta Removes Line", func(t *testing.T) {
		c := cart.New()
		line := c.AddItem(product("soap", 500, 0))
		c.AddItem(product("oil", 2500, 0))

		_, found := c.UpdateQuantity(line.LineID, -1000)

		assert.True(t, found)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 0, c.QuantityOf("soap"))
		assert.Equal(t, 1, c.QuantityOf("oil"))
	})

	t.Run("Success - Unknown Line Is No-op", func(t *testing.T) {
		c := cart.New()
		c.AddItem(product("soap", 500, 0))

		qty, found := c.UpdateQuantity("missing", -1)

		assert.False(t, found)
		assert.Equal(t, 0, qty)
		assert.Equal(t, 1, c.QuantityOf("soap"))
	})

	t.Run("Success - Readd After Removal Creates Fresh Line", func(t *testing.T) {
		c := cart.New()
		soap := product("soap", 500, 0)
		first := c.AddItem(soap)
		require.True(t, c.Remove(first.LineID))

		second := c.AddItem(soap)

		assert.NotEqual(t, first.LineID, second.LineID)
		assert.Equal(t, 1, second.Quantity)
	})
}

func TestLinesReturnsCopy(t *testing.T) {
	c := cart.New()
	c.AddItem(product("soap", 500, 0))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.QuantityOf("soap"))
}

func TestClear(t *testing.T) {
	c := cart.New()
	c.AddItem(product("soap", 500, 0))
	c.AddItem(product("oil", 2500, 10))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, models.Totals{}, cart.ComputeTotals(c))
}

func TestItemCount(t *testing.T) {
	c := cart.New()
	soap := c.AddItem(product("soap", 500, 0))
	c.UpdateQuantity(soap.LineID, 2)
	c.AddItem(product("oil", 2500, 0))

	assert.Equal(t, 4, c.ItemCount())
	assert.Equal(t, 2, c.Len())
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount int
		expected int64
	}{
		{name: "No Discount", price: 1000, discount: 0, expected: 1000},
		{name: "Ten Percent", price: 1000, discount: 10, expected: 900},
		{name: "Full Discount", price: 1500, discount: 100, expected: 0},
		{name: "Rounds Half Away From Zero", price: 1005, discount: 10, expected: 904},
		{name: "Rounds Down Below Half", price: 1003, discount: 10, expected: 903},
		{name: "Clamped Above Hundred", price: 800, discount: 150, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cart.EffectivePrice(product("p", tc.price, tc.discount)))
		})
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("Empty Cart", func(t *testing.T) {
		assert.Equal(t, models.Totals{}, cart.ComputeTotals(cart.New()))
	})

	t.Run("Mixed Lines", func(t *testing.T) {
		// Arrange
		c := cart.New()
		plain := c.AddItem(product("plain", 1000, 0))
		c.UpdateQuantity(plain.LineID, 1)
		c.AddItem(product("promo", 2500, 20))

		// Act
		totals := cart.ComputeTotals(c)

		// Assert
		assert.Equal(t, int64(4500), totals.Subtotal)
		assert.Equal(t, int64(500), totals.TotalDiscount)
		assert.Equal(t, int64(4000), totals.Total)
	})

	t.Run("Identity Holds With Rounding", func(t *testing.T) {
		prices := []int64{1, 3, 7, 99, 1005, 1333, 24999, 150001}
		discounts := []int{0, 1, 5, 15, 33, 50, 67, 99}

		c := cart.New()
		for i, price := range prices {
			line := c.AddItem(product(string(rune('a'+i)), price, discounts[i]))
			c.UpdateQuantity(line.LineID, i)
		}

		totals := cart.ComputeTotals(c)

		var sumEffective int64
		for _, line := range c.Lines() {
			sumEffective += cart.LineTotal(line)
		}

		assert.Equal(t, totals.Total, totals.Subtotal-totals.TotalDiscount)
		assert.Equal(t, totals.Total, sumEffective)
		assert.Equal(t, totals, cart.SumLines(c.Lines()))
	})

	t.Run("Large Cart Does Not Overflow", func(t *testing.T) {
		c := cart.New()
		line := c.AddItem(product("tv", 1_500_000, 5))
		c.UpdateQuantity(line.LineID, 999)

		totals := cart.ComputeTotals(c)

		assert.Equal(t, int64(1_500_000_000), totals.Subtotal)
		assert.Equal(t, int64(75_000_000), totals.TotalDiscount)
		assert.Less(t, totals.Total, int64(math.MaxInt64))
	})
}

func TestQuota(t *testing.T) {
	t.Run("Over Quota Scenario", func(t *testing.T) {
		// cart = [{price:1000, qty:2}], balance:1500
		c := cart.New()
		line := c.AddItem(product("boots", 1000, 0))
		c.UpdateQuantity(line.LineID, 1)

		assert.Equal(t, int64(2000), cart.ComputeTotals(c).Total)
		assert.False(t, cart.CanCheckout(1500, c))
		assert.Equal(t, int64(-500), cart.RemainingQuota(1500, c))

		gate := cart.CheckoutGate(1500, c)
		assert.False(t, gate.Allowed)
		assert.Equal(t, "Cart total 2,000 Rwf exceeds your quota of 1,500 Rwf by 500 Rwf.", gate.Reason)
	})

	t.Run("Discounted Scenario", func(t *testing.T) {
		// cart = [{price:1000, discount:10, qty:1}], balance:1000
		p := product("beret", 1000, 10)
		c := cart.New()
		c.AddItem(p)

		assert.Equal(t, int64(900), cart.EffectivePrice(p))
		assert.Equal(t, int64(900), cart.ComputeTotals(c).Total)
		assert.True(t, cart.CanCheckout(1000, c))
		assert.Equal(t, int64(100), cart.RemainingQuota(1000, c))
	})

	t.Run("Boundary - Total Equals Balance", func(t *testing.T) {
		c := cart.New()
		c.AddItem(product("exact", 1500, 0))

		assert.True(t, cart.CanCheckout(1500, c))
		assert.Equal(t, int64(0), cart.RemainingQuota(1500, c))
	})

	t.Run("Empty Cart Never Checks Out", func(t *testing.T) {
		for _, balance := range []int64{0, 1, 200000, math.MaxInt32} {
			c := cart.New()
			assert.False(t, cart.CanCheckout(balance, c))

			gate := cart.CheckoutGate(balance, c)
			assert.Contains(t, gate.Reason, "Cart is empty")
		}
	})
}

func TestCanAdd(t *testing.T) {
	c := cart.New()
	line := c.AddItem(product("boots", 1000, 0))
	c.UpdateQuantity(line.LineID, 1)

	// balance 3000, cart 2000, remaining 1000
	assert.True(t, cart.CanAdd(product("cap", 1000, 0), 3000, c))
	assert.True(t, cart.CanAdd(product("belt", 1100, 10), 3000, c), "discounted price 990 fits")
	assert.False(t, cart.CanAdd(product("radio", 1001, 0), 3000, c))
}
