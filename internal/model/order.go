package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending         OrderStatus = "Pending"
	StatusApproved        OrderStatus = "Approved"
	StatusMeasured        OrderStatus = "Measured"
	StatusForPickup       OrderStatus = "For Pickup"
	StatusClaimed         OrderStatus = "Claimed"
	StatusRejected        OrderStatus = "Rejected"
	StatusForVerification OrderStatus = "For Verification"
	StatusPaymentVerified OrderStatus = "Payment Verified"
)

var orderStatuses = []OrderStatus{
	StatusPending,
	StatusApproved,
	StatusMeasured,
	StatusForPickup,
	StatusClaimed,
	StatusRejected,
	StatusForVerification,
	StatusPaymentVerified,
}

// ParseOrderStatus matches s against the known statuses ignoring case and
// surrounding whitespace.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range orderStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusClaimed
}

// ScheduledStatuses are the statuses whose measurement schedule occupies a slot.
var ScheduledStatuses = []OrderStatus{StatusApproved, StatusMeasured}

type MeasurementSchedule struct {
	Date     time.Time `json:"date"`
	TimeSlot string    `json:"time_slot"`
}

type Order struct {
	BaseModel
	OrderCode       string          `db:"order_code" json:"order_code"`
	StudentID       string          `db:"student_id" json:"student_id"`
	StudentName     string          `db:"student_name" json:"student_name"`
	Email           string          `db:"email" json:"email"`
	StudentNumber   string          `db:"student_number" json:"student_number"`
	Level           string          `db:"level" json:"level"`
	Department      string          `db:"department" json:"department"`
	Gender          string          `db:"gender" json:"gender"`
	Status          OrderStatus     `db:"status" json:"status"`
	TotalPrice      decimal.Decimal `db:"total_price" json:"total_price"`
	ScheduleDate    *time.Time      `db:"schedule_date" json:"schedule_date,omitempty"`
	ScheduleSlot    *string         `db:"schedule_slot" json:"schedule_slot,omitempty"`
	RejectionReason *string         `db:"rejection_reason" json:"rejection_reason"`
	Archived        bool            `db:"archived" json:"archived"`
	Receipts        []Receipt       `db:"-" json:"receipts"`
	Items           []OrderItem     `db:"-" json:"items"`
}

// Schedule returns the active measurement schedule, if any.
func (o *Order) Schedule() *MeasurementSchedule {
	if o.ScheduleDate == nil || o.ScheduleSlot == nil {
		return nil
	}
	return &MeasurementSchedule{Date: *o.ScheduleDate, TimeSlot: *o.ScheduleSlot}
}

// SetSchedule replaces any previous schedule.
func (o *Order) SetSchedule(s MeasurementSchedule) {
	date := s.Date
	slot := s.TimeSlot
	o.ScheduleDate = &date
	o.ScheduleSlot = &slot
}

func (o *Order) ClearSchedule() {
	o.ScheduleDate = nil
	o.ScheduleSlot = nil
}

// RecomputeTotal sets TotalPrice to the rounded sum of line subtotals.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.TotalPrice = total.Round(2)
}

// LatestReceipt returns the most recently added receipt.
func (o *Order) LatestReceipt() *Receipt {
	if len(o.Receipts) == 0 {
		return nil
	}
	latest := &o.Receipts[0]
	for i := range o.Receipts {
		if o.Receipts[i].CreatedAt.After(latest.CreatedAt) {
			latest = &o.Receipts[i]
		}
	}
	return latest
}

func (o *Order) FindReceipt(id string) *Receipt {
	for i := range o.Receipts {
		if o.Receipts[i].ID == id {
			return &o.Receipts[i]
		}
	}
	return nil
}

type Receipt struct {
	ID          string          `db:"id" json:"id"`
	OrderID     string          `db:"order_id" json:"order_id"`
	PaymentType string          `db:"payment_type" json:"payment_type"`
	ORNumber    string          `db:"or_number" json:"or_number"`
	DatePaid    time.Time       `db:"date_paid" json:"date_paid"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Verified    bool            `db:"verified" json:"verified"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type OrderItem struct {
	ID          string          `db:"id" json:"id"`
	OrderID     string          `db:"order_id" json:"order_id"`
	Level       string          `db:"level" json:"level"`
	ProductType string          `db:"product_type" json:"product_type"`
	Size        string          `db:"size" json:"size"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity    int             `db:"quantity" json:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
