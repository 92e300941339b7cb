// Package catalog is the read-only product list the storefront browses. It is
// loaded once at start-up and never mutated afterwards.
package catalog

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Catalog struct {
	products []models.Product
	byID     map[string]int
}

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

// Default returns the built-in seed catalog.
func Default() *Catalog {
	c, err := New(seedProducts)
	if err != nil {
		panic(fmt.Sprintf("invalid seed catalog: %v", err))
	}

	return c
}

func New(products []models.Product) (*Catalog, error) {
	validate := validator.New()

	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for _, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ID, err)
		}

		if !p.Category.Valid() {
			return nil, fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
		}

		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}

		p.Tags = slices.Clone(p.Tags)
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	if len(c.products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}

	return c, nil
}

// LoadFile reads a YAML catalog of the form `products: [...]`.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(file.Products)
}

func (c *Catalog) All() []models.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Get(id string) (models.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}

	return c.products[idx], true
}

// Filter matches the category (CategoryAll or empty matches every product) and a
// case-insensitive substring of the name or description.
func (c *Catalog) Filter(category models.Category, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.Product
	for _, p := range c.products {
		if category != "" && category != models.CategoryAll && p.Category != category {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}

		out = append(out, p)
	}

	return out
}

// Discounted returns the products on promotion and the largest discount among them.
func (c *Catalog) Discounted() ([]models.Product, int) {
	var (
		out         []models.Product
		maxDiscount int
	)

	for _, p := range c.products {
		if !p.HasDiscount() {
			continue
		}

		out = append(out, p)
		maxDiscount = max(maxDiscount, p.Discount)
	}

	return out, maxDiscount
}

func (c *Catalog) CategoryCounts() []models.CategoryCount {
	counts := make([]models.CategoryCount, 0, len(models.AllCategories))

	for _, category := range models.AllCategories {
		n := len(c.products)
		if category != models.CategoryAll {
			n = 0
			for _, p := range c.products {
				if p.Category == category {
					n++
				}
			}
		}

		counts = append(counts, models.CategoryCount{Category: category, Count: n})
	}

	return counts
}

// Random picks any product; it stands in for barcode decoding in the scanner.
func (c *Catalog) Random(r *rand.Rand) models.Product {
	return c.products[r.IntN(len(c.products))]
}

// Describe lists the inventory one product per line for the assistant's system prompt.
func (c *Catalog) Describe() string {
	var b strings.Builder

	for i, p := range c.products {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%d Rwf): %s [Stock: %d]", p.Name, p.Price, p.Description, p.Stock)
	}

	return b.String()
}
