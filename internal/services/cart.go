package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/cart"
	"github.com/aaravmahajanofficial/afos-pos/internal/catalog"
	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/money"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
)

const msgCartLocked = "Cart is locked while a payment is in progress"

type CartService interface {
	View(ctx context.Context, s *session.Session) (*models.CartView, error)
	AddItem(ctx context.Context, s *session.Session, req *models.AddItemRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, s *session.Session, lineID string, req *models.UpdateQuantityRequest) (*models.CartView, error)
	RemoveLine(ctx context.Context, s *session.Session, lineID string) (*models.CartView, error)
}

type cartService struct {
	catalog *catalog.Catalog
}

func NewCartService(c *catalog.Catalog) CartService {
	return &cartService{catalog: c}
}

func (c *cartService) View(_ context.Context, s *session.Session) (*models.CartView, error) {
	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	return cartView(s), nil
}

// AddItem never refuses a known product: stock and quota only shape the
// browsing view, and the quota is enforced when checkout starts.
func (c *cartService) AddItem(ctx context.Context, s *session.Session, req *models.AddItemRequest) (*models.CartView, error) {
	p, ok := c.catalog.Get(req.ProductID)
	if !ok {
		return nil, errors.NotFoundError("Product not found")
	}

	if err := lockMutable(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	line := s.Cart().AddItem(p)

	middleware.LoggerFromContext(ctx).Info("Item added to cart",
		slog.String("productId", p.ID),
		slog.String("lineId", line.LineID),
		slog.Int("quantity", line.Quantity))

	return cartView(s), nil
}

// UpdateQuantity ignores unknown lines and clamps at zero, which removes the line.
func (c *cartService) UpdateQuantity(ctx context.Context, s *session.Session, lineID string, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	if err := lockMutable(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	if qty, found := s.Cart().UpdateQuantity(lineID, req.Delta); found {
		middleware.LoggerFromContext(ctx).Info("Cart line updated",
			slog.String("lineId", lineID),
			slog.Int("delta", req.Delta),
			slog.Int("quantity", qty))
	}

	return cartView(s), nil
}

func (c *cartService) RemoveLine(ctx context.Context, s *session.Session, lineID string) (*models.CartView, error) {
	if err := lockMutable(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	if s.Cart().Remove(lineID) {
		middleware.LoggerFromContext(ctx).Info("Cart line removed", slog.String("lineId", lineID))
	}

	return cartView(s), nil
}

// lockMutable is lockLive that also refuses while a payment attempt holds the cart.
func lockMutable(s *session.Session) error {
	if err := lockLive(s); err != nil {
		return err
	}

	if s.CheckoutActive() {
		s.Unlock()
		return errors.ConflictError(msgCartLocked)
	}

	return nil
}

// cartView recomputes every derived value from the lines. The caller holds
// the session lock.
func cartView(s *session.Session) *models.CartView {
	c := s.Cart()
	balance := s.User.Balance

	lines := c.Lines()
	views := make([]models.CartLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, models.CartLineView{
			LineID:         line.LineID,
			ProductID:      line.Product.ID,
			Name:           line.Product.Name,
			Image:          line.Product.Image,
			Price:          line.Product.Price,
			Discount:       line.Product.Discount,
			EffectivePrice: cart.EffectivePrice(line.Product),
			Quantity:       line.Quantity,
			LineTotal:      cart.LineTotal(line),
		})
	}

	totals := cart.ComputeTotals(c)
	remaining := balance - totals.Total
	gate := cart.CheckoutGate(balance, c)

	view := &models.CartView{
		Lines:          views,
		ItemCount:      c.ItemCount(),
		Totals:         totals,
		Balance:        balance,
		RemainingQuota: remaining,
		CanCheckout:    gate.Allowed,
		Locked:         s.CheckoutActive(),
		Display: models.CartDisplay{
			Subtotal:       money.Format(totals.Subtotal),
			TotalDiscount:  money.Format(totals.TotalDiscount),
			Total:          money.Format(totals.Total),
			RemainingQuota: money.Format(remaining),
		},
	}

	if !gate.Allowed {
		view.Message = gate.Reason
	}

	return view
}
