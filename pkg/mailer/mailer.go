package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"travel-booking/pkg/utils"
)

// BookingConfirmation is the data rendered into the confirmation mail.
type BookingConfirmation struct {
	CustomerName string
	PackageName  string
	StartDate    *time.Time
	EndDate      *time.Time
	Guests       int
	AmountMinor  int64
	Currency     string
	OrderID      string
	PaymentID    string
}

// Mailer sends transactional mail. Callers treat sends as best-effort.
type Mailer interface {
	SendBookingConfirmation(toEmail string, data *BookingConfirmation, receiptPDF []byte) error
}

type smtpMailer struct {
	config utils.EmailConfig
}

func NewMailer(config utils.EmailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendBookingConfirmation(toEmail string, data *BookingConfirmation, receiptPDF []byte) error {
	if m.config.Host == "" {
		return fmt.Errorf("smtp not configured")
	}

	subject := fmt.Sprintf("Booking confirmed: %s", data.PackageName)
	body := renderBody(data)

	msg, err := buildMessage(m.config.From, toEmail, subject, body, receiptPDF)
	if err != nil {
		return fmt.Errorf("build confirmation mail: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("send confirmation mail to %s: %w", toEmail, err)
	}

	return nil
}

func renderBody(data *BookingConfirmation) string {
	dates := "to be scheduled"
	if data.StartDate != nil && data.EndDate != nil {
		dates = fmt.Sprintf("%s to %s",
			data.StartDate.Format("2006-01-02"),
			data.EndDate.Format("2006-01-02"))
	}

	return fmt.Sprintf(`Dear %s,

Thank you for booking with us!

Booking details:
- Package: %s
- Dates: %s
- Guests: %d
- Amount: %.2f %s
- Order ID: %s
- Payment ID: %s

Your payment has been processed successfully.
Your receipt is attached to this email.
`,
		data.CustomerName,
		data.PackageName,
		dates,
		data.Guests,
		float64(data.AmountMinor)/100,
		data.Currency,
		data.OrderID,
		data.PaymentID,
	)
}

// buildMessage assembles a multipart MIME message with an optional PDF
// attachment.
func buildMessage(from, to, subject, body string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// Headers first, then the multipart body
	var headers bytes.Buffer
	fmt.Fprintf(&headers, "From: %s\r\n", from)
	fmt.Fprintf(&headers, "To: %s\r\n", to)
	fmt.Fprintf(&headers, "Subject: %s\r\n", subject)
	fmt.Fprintf(&headers, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&headers, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	if len(attachment) > 0 {
		pdfPart, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/pdf"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {`attachment; filename="receipt.pdf"`},
		})
		if err != nil {
			return nil, err
		}

		encoded := base64.StdEncoding.EncodeToString(attachment)
		if _, err := pdfPart.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return append(headers.Bytes(), buf.Bytes()...), nil
}
