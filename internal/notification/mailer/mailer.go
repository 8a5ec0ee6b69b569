package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

type Sender interface {
	Send(ctx context.Context, toName, to, subject, plain, html string) error
}

// OrderMailer renders the order emails and hands them to a Sender.
type OrderMailer struct {
	sender Sender
}

func NewOrderMailer(sender Sender) *OrderMailer {
	return &OrderMailer{sender: sender}
}

func (m *OrderMailer) SendScheduleEmail(ctx context.Context, o *model.Order) error {
	s := o.Schedule()
	if s == nil {
		return fmt.Errorf("order %s has no measurement schedule", o.OrderCode)
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour uniform order %s has been approved.\nPlease come for your measurement on %s at %s.\n",
		o.StudentName, o.OrderCode, s.Date.Format("Monday, January 2, 2006"), s.TimeSlot,
	)
	return m.send(ctx, o, "Measurement Schedule", body)
}

func (m *OrderMailer) SendPickupEmail(ctx context.Context, o *model.Order) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour payment for order %s has been verified.\nYour uniform is ready for pickup.\n",
		o.StudentName, o.OrderCode,
	)
	return m.send(ctx, o, "Ready for Pickup", body)
}

func (m *OrderMailer) SendPaymentReminderEmail(ctx context.Context, o *model.Order) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour uniform order %s is ready.\nPlease settle the total amount of PHP %s and upload your receipt before pickup.\n",
		o.StudentName, o.OrderCode, o.TotalPrice.StringFixed(2),
	)
	return m.send(ctx, o, "Payment Reminder", body)
}

func (m *OrderMailer) SendMeasurementDetailsEmail(ctx context.Context, o *model.Order) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour measurement for order %s has been recorded:\n\n", o.StudentName, o.OrderCode)
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s %s (%s) x%d @ PHP %s = PHP %s\n",
			item.Level, item.ProductType, item.Size, item.Quantity,
			item.UnitPrice.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: PHP %s\n", o.TotalPrice.StringFixed(2))
	return m.send(ctx, o, "Measurement Details", b.String())
}

func (m *OrderMailer) send(ctx context.Context, o *model.Order, subject, body string) error {
	htmlBody := "<pre>" + html.EscapeString(body) + "</pre>"
	return m.sender.Send(ctx, o.StudentName, o.Email, subject, body, htmlBody)
}
