package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// Payment holds everything printed on the receipt.
type Payment struct {
	OrderID      string
	PaymentID    string
	CustomerName string
	Email        string
	PackageName  string
	Guests       int
	AmountMinor  int64
	Currency     string
	PaidAt       time.Time
}

// Render produces the PDF receipt as bytes, ready to attach to the
// confirmation email.
func Render(p *Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "Travel Booking - Payment Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(50, 8, label)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(140, 8, value)
		pdf.Ln(8)
	}

	line("Order ID:", p.OrderID)
	line("Payment ID:", p.PaymentID)
	line("Date:", p.PaidAt.Format("2006-01-02 15:04:05"))
	line("Customer:", p.CustomerName)
	line("Email:", p.Email)
	line("Package:", p.PackageName)
	line("Guests:", fmt.Sprintf("%d", p.Guests))
	line("Amount:", fmt.Sprintf("%.2f %s", float64(p.AmountMinor)/100, p.Currency))

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(190, 8, "Thank you for travelling with us.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}

	return buf.Bytes(), nil
}
