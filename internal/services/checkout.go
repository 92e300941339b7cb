package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/cache"
	"github.com/aaravmahajanofficial/afos-pos/internal/cart"
	"github.com/aaravmahajanofficial/afos-pos/internal/checkout"
	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/metrics"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	repository "github.com/aaravmahajanofficial/afos-pos/internal/repositories"
	"github.com/aaravmahajanofficial/afos-pos/internal/receipt"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
)

type CheckoutService interface {
	Start(ctx context.Context, s *session.Session, req *models.StartCheckoutRequest) (*models.AttemptView, error)
	Current(ctx context.Context, s *session.Session) (*models.AttemptView, error)
	Cancel(ctx context.Context, s *session.Session) (*models.AttemptView, error)
	Finalize(ctx context.Context, s *session.Session) (*models.FinalizeResponse, error)
	Receipt(ctx context.Context, id string) (*models.ReceiptDocument, error)
}

// CheckoutDependencies wires the checkout service. Cache and Archive are
// optional: a nil Cache never hits and a nil Archive disables reprints of
// receipts that have left the cache.
type CheckoutDependencies struct {
	Machine    *checkout.Machine
	Printer    receipt.Printer
	Cache      cache.Cache
	Archive    repository.ReceiptRepository
	Sessions   session.Store
	Store      receipt.StoreInfo
	ReceiptTTL time.Duration
	Now        func() time.Time
}

type checkoutService struct {
	machine    *checkout.Machine
	printer    receipt.Printer
	cache      cache.Cache
	archive    repository.ReceiptRepository
	sessions   session.Store
	store      receipt.StoreInfo
	receiptTTL time.Duration
	now        func() time.Time
}

func NewCheckoutService(deps CheckoutDependencies) CheckoutService {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}

	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &checkoutService{
		machine:    deps.Machine,
		printer:    deps.Printer,
		cache:      deps.Cache,
		archive:    deps.Archive,
		sessions:   deps.Sessions,
		store:      deps.Store,
		receiptTTL: deps.ReceiptTTL,
		now:        deps.Now,
	}
}

func (c *checkoutService) Start(ctx context.Context, s *session.Session, req *models.StartCheckoutRequest) (*models.AttemptView, error) {
	logger := middleware.LoggerFromContext(ctx)

	if !req.PaymentMethod.Valid() {
		return nil, errors.ValidationError("Unknown payment method").WithDetail(string(req.PaymentMethod))
	}

	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	if s.CheckoutActive() {
		return nil, errors.ConflictError("A payment is already in progress")
	}

	gate := cart.CheckoutGate(s.User.Balance, s.Cart())
	if !gate.Allowed {
		metrics.CheckoutBlocked()
		logger.Info("Checkout blocked", slog.String("reason", gate.Reason))

		return nil, errors.CheckoutBlockedError(gate.Reason)
	}

	attempt := c.machine.Start(checkout.StartParams{
		Total:  cart.ComputeTotals(s.Cart()).Total,
		Method: req.PaymentMethod,
		Lines:  s.Cart().Lines(),
	})
	s.SetAttempt(attempt)

	snap := attempt.Snapshot()
	metrics.ObserveCheckout(metrics.OutcomeStarted)
	logger.Info("Checkout started",
		slog.String("transactionId", snap.TransactionID),
		slog.String("receiptId", snap.ReceiptID),
		slog.Int64("total", snap.Total),
		slog.String("method", string(snap.Method)))

	return attemptView(snap, nil), nil
}

// Current reports the attempt in flight. Once it reaches Receipt the view
// carries a preview of the document finalize will print.
func (c *checkoutService) Current(_ context.Context, s *session.Session) (*models.AttemptView, error) {
	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	attempt := s.Attempt()
	if attempt == nil {
		return nil, errors.NotFoundError("No payment in progress")
	}

	snap := attempt.Snapshot()

	var preview *models.ReceiptDocument
	if snap.State == models.CheckoutStateReceipt {
		preview = receipt.Build(snap, s.User, c.store, c.now())
	}

	return attemptView(snap, preview), nil
}

// Cancel abandons a Processing attempt. The cart is untouched and the attempt,
// along with its transaction id, is discarded.
func (c *checkoutService) Cancel(ctx context.Context, s *session.Session) (*models.AttemptView, error) {
	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	attempt := s.Attempt()
	if attempt == nil {
		return nil, errors.NotFoundError("No payment in progress")
	}

	if err := attempt.Cancel(); err != nil {
		return nil, transitionError(err, "Only a processing payment can be cancelled")
	}

	s.SetAttempt(nil)

	metrics.ObserveCheckout(metrics.OutcomeCancelled)
	middleware.LoggerFromContext(ctx).Info("Checkout cancelled")

	return attemptView(attempt.Snapshot(), nil), nil
}

// Finalize prints the receipt and then, under the session lock, clears the
// cart and ends the session. If any printer fails nothing changes and the
// operator may retry.
func (c *checkoutService) Finalize(ctx context.Context, s *session.Session) (*models.FinalizeResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	if err := lockLive(s); err != nil {
		return nil, err
	}
	defer s.Unlock()

	attempt := s.Attempt()
	if attempt == nil {
		return nil, errors.NotFoundError("No payment in progress")
	}

	var doc *models.ReceiptDocument
	err := attempt.Finalize(ctx, func(ctx context.Context, snap checkout.Snapshot) error {
		doc = receipt.Build(snap, s.User, c.store, c.now())
		return c.printer.Print(ctx, doc)
	})
	if err != nil {
		if isTransitionFailure(err) {
			return nil, transitionError(err, "Payment must reach the receipt step before it can be finalized")
		}

		metrics.ReceiptOutputFailed()
		logger.Error("Receipt output failed", slog.String("receiptId", doc.ReceiptID), slog.String("error", err.Error()))

		return nil, errors.ReceiptOutputError("Receipt printer unavailable. Please retry.").WithError(err)
	}

	metrics.ReceiptPrinted()
	metrics.ObserveCheckout(metrics.OutcomeFinalized)

	if err := c.cache.Set(ctx, cache.ReceiptKey(doc.ReceiptID), doc, c.receiptTTL); err != nil {
		logger.Warn("Failed to cache receipt", slog.String("receiptId", doc.ReceiptID), slog.String("error", err.Error()))
	}

	s.Cart().Clear()
	s.End()
	c.sessions.Delete(ctx, s.ID)

	logger.Info("Checkout finalized, session ended",
		slog.String("receiptId", doc.ReceiptID),
		slog.String("transactionId", doc.TransactionID))

	return &models.FinalizeResponse{
		Receipt:      doc,
		SessionEnded: true,
		Slip:         receipt.RenderText(doc),
	}, nil
}

// Receipt looks a printed receipt up for reprinting, first in the cache and
// then in the archive.
func (c *checkoutService) Receipt(ctx context.Context, id string) (*models.ReceiptDocument, error) {
	logger := middleware.LoggerFromContext(ctx)

	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return nil, errors.BadRequestError("Receipt ID is required")
	}

	doc := &models.ReceiptDocument{}
	hit, err := c.cache.Get(ctx, cache.ReceiptKey(id), doc)
	if err != nil {
		logger.Warn("Receipt cache lookup failed", slog.String("receiptId", id), slog.String("error", err.Error()))
	}

	if hit {
		return doc, nil
	}

	if c.archive == nil {
		return nil, errors.NotFoundError("Receipt not found")
	}

	doc, err = c.archive.GetReceiptByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrReceiptNotFound) {
			return nil, errors.NotFoundError("Receipt not found")
		}

		return nil, errors.DatabaseError("Failed to load receipt").WithError(err)
	}

	if err := c.cache.Set(ctx, cache.ReceiptKey(id), doc, c.receiptTTL); err != nil {
		logger.Warn("Failed to cache receipt", slog.String("receiptId", id), slog.String("error", err.Error()))
	}

	return doc, nil
}

func isTransitionFailure(err error) bool {
	return stdErrors.Is(err, checkout.ErrIllegalTransition) || stdErrors.Is(err, checkout.ErrAttemptClosed)
}

func transitionError(err error, message string) *errors.AppError {
	if stdErrors.Is(err, checkout.ErrAttemptClosed) {
		return errors.ConflictError("Payment attempt is no longer active").WithError(err)
	}

	return errors.ConflictError(message).WithError(err)
}

func attemptView(snap checkout.Snapshot, preview *models.ReceiptDocument) *models.AttemptView {
	return &models.AttemptView{
		State:         snap.State,
		Total:         snap.Total,
		PaymentMethod: snap.Method,
		PaymentLabel:  snap.Method.Name(),
		TransactionID: snap.TransactionID,
		ReceiptID:     snap.ReceiptID,
		StartedAt:     snap.StartedAt,
		Receipt:       preview,
	}
}
