package models

type CartLine struct {
	LineID   string  `json:"line_id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Totals are always recomputed from the lines, never stored on the cart.
type Totals struct {
	Subtotal      int64 `json:"subtotal"`
	TotalDiscount int64 `json:"total_discount"`
	Total         int64 `json:"total"`
}

type CartLineView struct {
	LineID         string `json:"line_id"`
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	Price          int64  `json:"price"`
	Discount       int    `json:"discount,omitempty"`
	EffectivePrice int64  `json:"effective_price"`
	Quantity       int    `json:"quantity"`
	LineTotal      int64  `json:"line_total"`
}

type CartView struct {
	Lines          []CartLineView `json:"lines"`
	ItemCount      int            `json:"item_count"`
	Totals         Totals         `json:"totals"`
	Balance        int64          `json:"balance"`
	RemainingQuota int64          `json:"remaining_quota"`
	CanCheckout    bool           `json:"can_checkout"`
	Message        string         `json:"message,omitempty"`
	Locked         bool           `json:"locked"`
	Display        CartDisplay    `json:"display"`
}

// CartDisplay carries the formatted currency strings shown in the cart sidebar.
type CartDisplay struct {
	Subtotal       string `json:"subtotal"`
	TotalDiscount  string `json:"total_discount"`
	Total          string `json:"total"`
	RemainingQuota string `json:"remaining_quota"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateQuantityRequest carries a signed delta. Zero is a no-op and any
// negative delta that drops the quantity to zero removes the line.
type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

type ScanRequest struct {
	Code string `json:"code,omitempty" validate:"omitempty,max=64"`
}

type ScanResponse struct {
	Product ProductView `json:"product"`
	Cart    *CartView   `json:"cart"`
}
