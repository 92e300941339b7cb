package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Effective prices: rice 1000, gas 17100, stove 24000 (out of stock).
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New([]models.Product{
		{ID: "rice", Name: "Rice 5kg", Description: "Long grain", Price: 1000, Category: models.CategoryFood, Stock: 10},
		{ID: "gas", Name: "Gas Refill", Description: "12kg cylinder", Price: 18000, Discount: 5, Category: models.CategoryCooking, Stock: 4},
		{ID: "stove", Name: "Gas Stove", Description: "Two burner", Price: 30000, Discount: 20, Category: models.CategoryCooking, Stock: 0},
	})
	require.NoError(t, err)

	return c
}

func newSession(balance int64) *session.Session {
	user := models.UserProfile{Name: "Wiron R", Balance: balance, ServiceNumber: "RDF-001"}

	return session.New(uuid.NewString(), user, time.Now(), time.Hour)
}

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return context.WithValue(context.Background(), middleware.LoggerKey, logger)
}

func assertAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	require.Error(t, err)

	var appErr *appErrors.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}
