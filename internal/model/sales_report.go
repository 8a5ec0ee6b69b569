package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport is the immutable snapshot written when an order is claimed.
type SalesReport struct {
	ID            string            `db:"id" json:"id"`
	OrderID       string            `db:"order_id" json:"order_id"`
	OrderCode     string            `db:"order_code" json:"order_code"`
	StudentID     string            `db:"student_id" json:"student_id"`
	StudentName   string            `db:"student_name" json:"student_name"`
	Email         string            `db:"email" json:"email"`
	StudentNumber string            `db:"student_number" json:"student_number"`
	Level         string            `db:"level" json:"level"`
	Department    string            `db:"department" json:"department"`
	Gender        string            `db:"gender" json:"gender"`
	TotalAmount   decimal.Decimal   `db:"total_amount" json:"total_amount"`
	ClaimedAt     time.Time         `db:"claimed_at" json:"claimed_at"`
	Month         int               `db:"month" json:"month"`
	Year          int               `db:"year" json:"year"`
	Items         []SalesReportItem `db:"-" json:"items"`
}

type SalesReportItem struct {
	ID          string          `db:"id" json:"id"`
	ReportID    string          `db:"report_id" json:"report_id"`
	Level       string          `db:"level" json:"level"`
	ProductType string          `db:"product_type" json:"product_type"`
	Size        string          `db:"size" json:"size"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
}
