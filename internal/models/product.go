package models

type Category string

const (
	CategoryAll       Category = "All"
	CategoryFood      Category = "Food & Groceries"
	CategoryCooking   Category = "Cooking & Gas"
	CategoryHygiene   Category = "Hygiene & Care"
	CategoryKitchen   Category = "Kitchen Items"
	CategoryAppliance Category = "Appliances"
	CategoryHousehold Category = "Household"
)

// AllCategories lists the browsable categories in display order. CategoryAll is a filter, not a product category.
var AllCategories = []Category{
	CategoryAll,
	CategoryFood,
	CategoryCooking,
	CategoryHygiene,
	CategoryKitchen,
	CategoryAppliance,
	CategoryHousehold,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known && c != CategoryAll {
			return true
		}
	}

	return false
}

type Product struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Price       int64    `json:"price" yaml:"price" validate:"required,gt=0"`
	Discount    int      `json:"discount,omitempty" yaml:"discount" validate:"gte=0,lte=100"`
	Category    Category `json:"category" yaml:"category" validate:"required"`
	Stock       int      `json:"stock" yaml:"stock" validate:"gte=0"`
	Image       string   `json:"image" yaml:"image"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

func (p *Product) HasDiscount() bool {
	return p.Discount > 0
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

type ProductView struct {
	Product
	EffectivePrice int64 `json:"effective_price"`
	InCart         int   `json:"in_cart"`
	Addable        bool  `json:"addable"`
	OverQuota      bool  `json:"over_quota"`
}

type ProductListResponse struct {
	Products       []ProductView `json:"products"`
	Total          int           `json:"total"`
	Category       Category      `json:"category"`
	Query          string        `json:"query,omitempty"`
	RemainingQuota int64         `json:"remaining_quota"`
}

type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

type DiscountsResponse struct {
	Products    []ProductView `json:"products"`
	MaxDiscount int           `json:"max_discount"`
}
