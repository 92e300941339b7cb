package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

var ErrReceiptNotFound = errors.New("receipt not found")

type ReceiptRepository interface {
	SaveReceipt(ctx context.Context, doc *models.ReceiptDocument) error
	GetReceiptByID(ctx context.Context, id string) (*models.ReceiptDocument, error)
}

type receiptRepository struct {
	DB *sql.DB
}

func NewReceiptRepo(db *sql.DB) ReceiptRepository {
	return &receiptRepository{DB: db}
}

// SaveReceipt is idempotent on the receipt id so a retried finalize does not
// archive the same receipt twice.
func (r *receiptRepository) SaveReceipt(ctx context.Context, doc *models.ReceiptDocument) error {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	document, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	query := `
		INSERT INTO receipts (id, transaction_id, customer, service_number, payment_method, total, document, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.DB.ExecContext(dbCtx, query, doc.ReceiptID, doc.TransactionID, doc.Customer, doc.ServiceNumber,
		doc.PaymentMethod, doc.Total, document, doc.IssuedAt)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	return nil
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (*models.ReceiptDocument, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `SELECT document FROM receipts WHERE id = $1`

	var document []byte
	if err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}

		return nil, fmt.Errorf("failed to get the receipt: %w", err)
	}

	doc := &models.ReceiptDocument{}
	if err := json.Unmarshal(document, doc); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}

	return doc, nil
}

// ArchivePrinter stores every printed receipt in the archive so it can be
// reprinted after the session has ended.
type ArchivePrinter struct {
	repo ReceiptRepository
}

func NewArchivePrinter(repo ReceiptRepository) *ArchivePrinter {
	return &ArchivePrinter{repo: repo}
}

func (p *ArchivePrinter) Name() string {
	return "archive"
}

func (p *ArchivePrinter) Print(ctx context.Context, doc *models.ReceiptDocument) error {
	return p.repo.SaveReceipt(ctx, doc)
}
