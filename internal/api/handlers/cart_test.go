package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/services/mocks"
	"github.com/aaravmahajanofficial/afos-pos/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCartTest(t *testing.T) (*mocks.CartService, *handlers.CartHandler) {
	mockCartService := mocks.NewCartService(t)

	return mockCartService, handlers.NewCartHandler(mockCartService)
}

func TestGetCart(t *testing.T) {
	t.Run("Success - Retrieve Cart", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		s := testutils.NewTestSession(200000)

		mockCartService.On("View", mock.Anything, s).Return(&models.CartView{
			Balance:        200000,
			RemainingQuota: 200000,
			Message:        "Cart is empty. Add items before checking out.",
		}, nil).Once()

		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/cart", nil, s, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartView
		resp := decodeResponse(t, rr, &got)
		assert.True(t, resp.Success)
		assert.False(t, got.CanCheckout)
		assert.NotEmpty(t, got.Message)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)

		req := testutils.CreateTestRequestWithoutSession(http.MethodGet, "/api/v1/cart", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, decodeResponse(t, rr, nil).Error.Message, "Authentication required")
	})
}

func TestAddItem(t *testing.T) {
	t.Run("Success - Item Added", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		s := testutils.NewTestSession(200000)
		addReq := models.AddItemRequest{ProductID: "rice"}

		mockCartService.On("AddItem", mock.Anything, s, &addReq).Return(&models.CartView{
			Lines:     []models.CartLineView{{LineID: "line-1", ProductID: "rice", Quantity: 1, LineTotal: 1000}},
			ItemCount: 1,
		}, nil).Once()

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items", jsonBody(t, addReq), s, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartView
		decodeResponse(t, rr, &got)
		assert.Equal(t, 1, got.ItemCount)
	})

	t.Run("Failure - Missing Product ID", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)
		s := testutils.NewTestSession(200000)

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`), s, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, rr, nil).Error.Code)
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)
		s := testutils.NewTestSession(200000)

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":`), s, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeResponse(t, rr, nil).Error.Code)
	})

	t.Run("Failure - Cart Locked", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		s := testutils.NewTestSession(200000)
		addReq := models.AddItemRequest{ProductID: "rice"}

		mockCartService.On("AddItem", mock.Anything, s, &addReq).
			Return(nil, appErrors.ConflictError("Cart is locked while a payment is in progress")).Once()

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items", jsonBody(t, addReq), s, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Success - Delta Forwarded With Line ID", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		s := testutils.NewTestSession(200000)

		mockCartService.On("UpdateQuantity", mock.Anything, s, "line-1", &models.UpdateQuantityRequest{Delta: -1}).
			Return(&models.CartView{}, nil).Once()

		req := testutils.CreateTestRequestWithSession(http.MethodPatch, "/api/v1/cart/items/line-1",
			strings.NewReader(`{"delta":-1}`), s, map[string]string{"lineId": "line-1"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Empty Body", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)
		s := testutils.NewTestSession(200000)

		req := testutils.CreateTestRequestWithSession(http.MethodPatch, "/api/v1/cart/items/line-1", nil, s, map[string]string{"lineId": "line-1"})
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRemoveLine(t *testing.T) {
	mockCartService, cartHandler := setupCartTest(t)
	s := testutils.NewTestSession(200000)

	mockCartService.On("RemoveLine", mock.Anything, s, "line-1").Return(&models.CartView{}, nil).Once()

	req := testutils.CreateTestRequestWithSession(http.MethodDelete, "/api/v1/cart/items/line-1", nil, s, map[string]string{"lineId": "line-1"})
	rr := httptest.NewRecorder()

	cartHandler.RemoveLine().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
