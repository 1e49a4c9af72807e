package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusApproved   PaymentStatus = "APPROVED"
	PaymentStatusRefused    PaymentStatus = "REFUSED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodPix    PaymentMethod = "PIX"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodBoleto PaymentMethod = "BOLETO"
	PaymentMethodCash   PaymentMethod = "CASH"
)

// Payment tracks the settlement obligation for exactly one rental. It is
// created only as a side effect of request approval; AmountCents mirrors the
// rental price at creation time.
type Payment struct {
	ID          int32         `json:"id"`
	RentalID    int32         `json:"rental_id"`
	Method      PaymentMethod `json:"method"`
	AmountCents int32         `json:"amount_cents"`
	Status      PaymentStatus `json:"status"`
	DueDate     time.Time     `json:"due_date"`
	PaidDate    *time.Time    `json:"paid_date,omitempty"`

	// PIX metadata
	PixKey    string `json:"pix_key,omitempty"`
	PixQRCode string `json:"pix_qr_code,omitempty"`

	// Boleto metadata
	BoletoBarcode string `json:"boleto_barcode,omitempty"`
	BoletoLine    string `json:"boleto_line,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
