// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	repository "github.com/aaravmahajanofficial/afos-pos/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type RateLimitRepository struct {
	mock.Mock
}

func NewRateLimitRepository(t testingT) *RateLimitRepository {
	m := &RateLimitRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, identity string) (repository.RateLimitResult, error) {
	args := m.Called(ctx, identity)
	result, _ := args.Get(0).(repository.RateLimitResult)

	return result, args.Error(1)
}

func (m *RateLimitRepository) ResetLoginRateLimit(ctx context.Context, identity string) error {
	return m.Called(ctx, identity).Error(0)
}

type ReceiptRepository struct {
	mock.Mock
}

func NewReceiptRepository(t testingT) *ReceiptRepository {
	m := &ReceiptRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ReceiptRepository) SaveReceipt(ctx context.Context, doc *models.ReceiptDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *ReceiptRepository) GetReceiptByID(ctx context.Context, id string) (*models.ReceiptDocument, error) {
	args := m.Called(ctx, id)
	doc, _ := args.Get(0).(*models.ReceiptDocument)

	return doc, args.Error(1)
}
