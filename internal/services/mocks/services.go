// Package mocks holds testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type SessionService struct {
	mock.Mock
}

func NewSessionService(t testingT) *SessionService {
	m := &SessionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *SessionService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)

	return resp, args.Error(1)
}

func (m *SessionService) Resolve(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*session.Session)

	return s, args.Error(1)
}

func (m *SessionService) Summary(ctx context.Context, s *session.Session) (*models.SessionSummary, error) {
	args := m.Called(ctx, s)
	summary, _ := args.Get(0).(*models.SessionSummary)

	return summary, args.Error(1)
}

func (m *SessionService) Logout(ctx context.Context, s *session.Session) error {
	return m.Called(ctx, s).Error(0)
}

type CatalogService struct {
	mock.Mock
}

func NewCatalogService(t testingT) *CatalogService {
	m := &CatalogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CatalogService) ListProducts(ctx context.Context, s *session.Session, category models.Category, query string) (*models.ProductListResponse, error) {
	args := m.Called(ctx, s, category, query)
	resp, _ := args.Get(0).(*models.ProductListResponse)

	return resp, args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, s *session.Session, id string) (*models.ProductView, error) {
	args := m.Called(ctx, s, id)
	view, _ := args.Get(0).(*models.ProductView)

	return view, args.Error(1)
}

func (m *CatalogService) Discounts(ctx context.Context, s *session.Session) (*models.DiscountsResponse, error) {
	args := m.Called(ctx, s)
	resp, _ := args.Get(0).(*models.DiscountsResponse)

	return resp, args.Error(1)
}

func (m *CatalogService) Categories(ctx context.Context) []models.CategoryCount {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]models.CategoryCount)

	return counts
}

type CartService struct {
	mock.Mock
}

func NewCartService(t testingT) *CartService {
	m := &CartService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartService) View(ctx context.Context, s *session.Session) (*models.CartView, error) {
	args := m.Called(ctx, s)
	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, s *session.Session, req *models.AddItemRequest) (*models.CartView, error) {
	args := m.Called(ctx, s, req)
	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, s *session.Session, lineID string, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	args := m.Called(ctx, s, lineID, req)
	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

func (m *CartService) RemoveLine(ctx context.Context, s *session.Session, lineID string) (*models.CartView, error) {
	args := m.Called(ctx, s, lineID)
	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

type ScanService struct {
	mock.Mock
}

func NewScanService(t testingT) *ScanService {
	m := &ScanService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ScanService) Scan(ctx context.Context, s *session.Session, req *models.ScanRequest) (*models.ScanResponse, error) {
	args := m.Called(ctx, s, req)
	resp, _ := args.Get(0).(*models.ScanResponse)

	return resp, args.Error(1)
}

type CheckoutService struct {
	mock.Mock
}

func NewCheckoutService(t testingT) *CheckoutService {
	m := &CheckoutService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CheckoutService) Start(ctx context.Context, s *session.Session, req *models.StartCheckoutRequest) (*models.AttemptView, error) {
	args := m.Called(ctx, s, req)
	view, _ := args.Get(0).(*models.AttemptView)

	return view, args.Error(1)
}

func (m *CheckoutService) Current(ctx context.Context, s *session.Session) (*models.AttemptView, error) {
	args := m.Called(ctx, s)
	view, _ := args.Get(0).(*models.AttemptView)

	return view, args.Error(1)
}

func (m *CheckoutService) Cancel(ctx context.Context, s *session.Session) (*models.AttemptView, error) {
	args := m.Called(ctx, s)
	view, _ := args.Get(0).(*models.AttemptView)

	return view, args.Error(1)
}

func (m *CheckoutService) Finalize(ctx context.Context, s *session.Session) (*models.FinalizeResponse, error) {
	args := m.Called(ctx, s)
	resp, _ := args.Get(0).(*models.FinalizeResponse)

	return resp, args.Error(1)
}

func (m *CheckoutService) Receipt(ctx context.Context, id string) (*models.ReceiptDocument, error) {
	args := m.Called(ctx, id)
	doc, _ := args.Get(0).(*models.ReceiptDocument)

	return doc, args.Error(1)
}

type AssistantService struct {
	mock.Mock
}

func NewAssistantService(t testingT) *AssistantService {
	m := &AssistantService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *AssistantService) Ask(ctx context.Context, s *session.Session, req *models.AssistantRequest) (*models.AssistantResponse, error) {
	args := m.Called(ctx, s, req)
	resp, _ := args.Get(0).(*models.AssistantResponse)

	return resp, args.Error(1)
}
