package service

import (
	"context"
	"strings"

	"github.com/aaravmahajanofficial/afos-pos/internal/cart"
	"github.com/aaravmahajanofficial/afos-pos/internal/catalog"
	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
)

const maxQueryLength = 100

type CatalogService interface {
	ListProducts(ctx context.Context, s *session.Session, category models.Category, query string) (*models.ProductListResponse, error)
	GetProduct(ctx context.Context, s *session.Session, id string) (*models.ProductView, error)
	Discounts(ctx context.Context, s *session.Session) (*models.DiscountsResponse, error)
	Categories(ctx context.Context) []models.CategoryCount
}

type catalogService struct {
	catalog *catalog.Catalog
}

func NewCatalogService(c *catalog.Catalog) CatalogService {
	return &catalogService{catalog: c}
}

func (c *catalogService) ListProducts(_ context.Context, s *session.Session, category models.Category, query string) (*models.ProductListResponse, error) {
	if category == "" {
		category = models.CategoryAll
	}

	if category != models.CategoryAll && !category.Valid() {
		return nil, errors.ValidationError("Unknown category").WithDetail(string(category))
	}

	query = strings.TrimSpace(query)
	if len(query) > maxQueryLength {
		return nil, errors.ValidationError("Search query is too long")
	}

	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	products := c.catalog.Filter(category, query)

	return &models.ProductListResponse{
		Products:       productViews(products, s),
		Total:          len(products),
		Category:       category,
		Query:          query,
		RemainingQuota: cart.RemainingQuota(s.User.Balance, s.Cart()),
	}, nil
}

func (c *catalogService) GetProduct(_ context.Context, s *session.Session, id string) (*models.ProductView, error) {
	p, ok := c.catalog.Get(id)
	if !ok {
		return nil, errors.NotFoundError("Product not found")
	}

	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	view := productView(p, s)

	return &view, nil
}

func (c *catalogService) Discounts(_ context.Context, s *session.Session) (*models.DiscountsResponse, error) {
	products, maxDiscount := c.catalog.Discounted()

	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	return &models.DiscountsResponse{
		Products:    productViews(products, s),
		MaxDiscount: maxDiscount,
	}, nil
}

func (c *catalogService) Categories(_ context.Context) []models.CategoryCount {
	return c.catalog.CategoryCounts()
}

// productView gates p against the quota the current cart leaves. The caller
// holds the session lock.
func productView(p models.Product, s *session.Session) models.ProductView {
	overQuota := !cart.CanAdd(p, s.User.Balance, s.Cart())

	return models.ProductView{
		Product:        p,
		EffectivePrice: cart.EffectivePrice(p),
		InCart:         s.Cart().QuantityOf(p.ID),
		OverQuota:      overQuota,
		Addable:        p.InStock() && !overQuota,
	}
}

func productViews(products []models.Product, s *session.Session) []models.ProductView {
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p, s))
	}

	return views
}
