package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

// Printer is any sink a finalized receipt is emitted to.
type Printer interface {
	Name() string
	Print(ctx context.Context, doc *models.ReceiptDocument) error
}

// Dispatcher hands a receipt to each printer in order and stops at the first
// failure. Printers must tolerate being asked to print the same receipt again.
type Dispatcher struct {
	printers []Printer
}

func NewDispatcher(printers ...Printer) *Dispatcher {
	return &Dispatcher{printers: printers}
}

func (d *Dispatcher) Name() string {
	return "dispatcher"
}

func (d *Dispatcher) Print(ctx context.Context, doc *models.ReceiptDocument) error {
	for _, p := range d.printers {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := p.Print(ctx, doc); err != nil {
			return fmt.Errorf("%s printer: %w", p.Name(), err)
		}
	}

	return nil
}

// SpoolPrinter drops the text slip into a directory watched by the till printer.
type SpoolPrinter struct {
	dir string
}

func NewSpoolPrinter(dir string) *SpoolPrinter {
	return &SpoolPrinter{dir: dir}
}

func (p *SpoolPrinter) Name() string {
	return "spool"
}

func (p *SpoolPrinter) Print(_ context.Context, doc *models.ReceiptDocument) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}

	// Write then rename so the printer daemon never picks up a partial slip.
	tmp, err := os.CreateTemp(p.dir, ".receipt-*")
	if err != nil {
		return fmt.Errorf("failed to create spool file: %w", err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(RenderText(doc)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write spool file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write spool file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(p.dir, doc.ReceiptID+".txt")); err != nil {
		return fmt.Errorf("failed to publish spool file: %w", err)
	}

	return nil
}

// Mailer is satisfied by the SendGrid e-mail service.
type Mailer interface {
	Send(ctx context.Context, req *models.EmailRequest) error
}

// EmailPrinter mails a copy of every receipt to a fixed mailbox.
type EmailPrinter struct {
	mailer Mailer
	to     string
}

func NewEmailPrinter(mailer Mailer, to string) *EmailPrinter {
	return &EmailPrinter{mailer: mailer, to: to}
}

func (p *EmailPrinter) Name() string {
	return "email"
}

func (p *EmailPrinter) Print(ctx context.Context, doc *models.ReceiptDocument) error {
	html, err := RenderHTML(doc)
	if err != nil {
		return err
	}

	return p.mailer.Send(ctx, &models.EmailRequest{
		To:          p.to,
		Subject:     fmt.Sprintf("%s receipt %s", doc.StoreName, doc.ReceiptID),
		Content:     RenderText(doc),
		HTMLContent: html,
	})
}

// PrinterFunc adapts a function to the Printer interface.
type PrinterFunc func(ctx context.Context, doc *models.ReceiptDocument) error

func (f PrinterFunc) Name() string {
	return "func"
}

func (f PrinterFunc) Print(ctx context.Context, doc *models.ReceiptDocument) error {
	return f(ctx, doc)
}
