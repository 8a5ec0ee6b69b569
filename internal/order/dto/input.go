package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptInput struct {
	PaymentType string          `json:"payment_type"`
	ORNumber    string          `json:"or_number"`
	DatePaid    time.Time       `json:"date_paid"`
	ImageURL    string          `json:"image_url"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateOrderInput is a student's first submission. StudentID comes from the
// caller identity, the rest is snapshotted onto the order.
type CreateOrderInput struct {
	StudentID     string       `json:"-"`
	StudentName   string       `json:"student_name"`
	Email         string       `json:"email"`
	StudentNumber string       `json:"student_number"`
	Level         string       `json:"level"`
	Department    string       `json:"department"`
	Gender        string       `json:"gender"`
	Receipt       ReceiptInput `json:"receipt"`
}

type OrderItemInput struct {
	Level       string          `json:"level"`
	ProductType string          `json:"product_type"`
	Size        string          `json:"size"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

type MeasureInput struct {
	Items []OrderItemInput `json:"items"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
	UserID string `json:"-"`
}

type RejectInput struct {
	Reason string `json:"reason"`
}
