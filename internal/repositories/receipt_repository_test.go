package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	repository "github.com/aaravmahajanofficial/afos-pos/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReceiptRepoTest(t *testing.T) (repository.ReceiptRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewReceiptRepo(db)
	require.NotNil(t, repo, "NewReceiptRepo should not return nil")

	return repo, mock
}

func testReceipt() *models.ReceiptDocument {
	return &models.ReceiptDocument{
		StoreName:     "AFOS",
		StoreTagline:  "ARMED FORCES SHOP",
		ReceiptID:     "RCPK3Z9QA",
		TransactionID: "TXN55120034",
		Customer:      "Wiron R",
		ServiceNumber: "RDF-0042",
		IssuedAt:      time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Lines:         []models.ReceiptLine{{Name: "Cooking Oil 3L", Quantity: 1, UnitPrice: 9500, LineTotal: 9500}},
		Subtotal:      9500,
		Total:         9500,
		PaymentMethod: models.PaymentMethodZigama,
		PaymentLabel:  "ZIGAMA PAY",
		Balance:       200000,
	}
}

func TestSaveReceipt(t *testing.T) {
	repo, mock := setupReceiptRepoTest(t)
	ctx := context.Background()
	doc := testReceipt()

	document, err := json.Marshal(doc)
	require.NoError(t, err)

	expectedSQL := regexp.QuoteMeta(`
		INSERT INTO receipts (id, transaction_id, customer, service_number, payment_method, total, document, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).
			WithArgs(doc.ReceiptID, doc.TransactionID, doc.Customer, doc.ServiceNumber, doc.PaymentMethod, doc.Total, document, doc.IssuedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.SaveReceipt(ctx, doc)

		// Assert
		assert.NoError(t, err, "SaveReceipt should succeed")
		assert.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})

	t.Run("Success - Duplicate Is Ignored", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(doc.ReceiptID, doc.TransactionID, doc.Customer, doc.ServiceNumber, doc.PaymentMethod, doc.Total, document, doc.IssuedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveReceipt(ctx, doc)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - DB Error", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("database connection lost")
		mock.ExpectExec(expectedSQL).
			WithArgs(doc.ReceiptID, doc.TransactionID, doc.Customer, doc.ServiceNumber, doc.PaymentMethod, doc.Total, document, doc.IssuedAt).
			WillReturnError(dbErr)

		// Act
		err := repo.SaveReceipt(ctx, doc)

		// Assert
		assert.ErrorIs(t, err, dbErr, "Error should wrap the original DB error")
		assert.Contains(t, err.Error(), "failed to insert receipt")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetReceiptByID(t *testing.T) {
	repo, mock := setupReceiptRepoTest(t)
	ctx := context.Background()
	doc := testReceipt()

	document, err := json.Marshal(doc)
	require.NoError(t, err)

	expectedSQL := regexp.QuoteMeta(`SELECT document FROM receipts WHERE id = $1`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(expectedSQL).
			WithArgs(doc.ReceiptID).
			WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(document))

		// Act
		got, err := repo.GetReceiptByID(ctx, doc.ReceiptID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, doc, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).
			WithArgs("RCPNOPE00").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetReceiptByID(ctx, "RCPNOPE00")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, repository.ErrReceiptNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Document", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).
			WithArgs(doc.ReceiptID).
			WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(`{"lines": "oops"}`)))

		got, err := repo.GetReceiptByID(ctx, doc.ReceiptID)

		assert.Nil(t, got)
		assert.ErrorContains(t, err, "failed to decode receipt")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestArchivePrinter(t *testing.T) {
	repo, mock := setupReceiptRepoTest(t)
	doc := testReceipt()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipts`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := repository.NewArchivePrinter(repo)

	assert.Equal(t, "archive", p.Name())
	require.NoError(t, p.Print(context.Background(), doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}
