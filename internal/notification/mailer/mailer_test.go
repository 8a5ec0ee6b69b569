package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	to, subject, plain, html string
}

type recordingSender struct {
	messages []sent
}

func (r *recordingSender) Send(_ context.Context, _, to, subject, plain, html string) error {
	r.messages = append(r.messages, sent{to: to, subject: subject, plain: plain, html: html})
	return nil
}

func sampleOrder() *model.Order {
	o := &model.Order{
		OrderCode:   "ORD-20261019-0001",
		StudentName: "Dana Cruz",
		Email:       "dana@example.edu",
		Items: []model.OrderItem{
			{Level: "College", ProductType: "Polo", Size: "M", UnitPrice: decimal.RequireFromString("350"), Quantity: 2},
		},
	}
	o.RecomputeTotal()
	return o
}

func TestSendScheduleEmail(t *testing.T) {
	s := &recordingSender{}
	o := sampleOrder()
	o.SetSchedule(model.MeasurementSchedule{Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), TimeSlot: "7:30 AM"})

	require.NoError(t, NewOrderMailer(s).SendScheduleEmail(context.Background(), o))
	require.Len(t, s.messages, 1)
	assert.Equal(t, "dana@example.edu", s.messages[0].to)
	assert.Contains(t, s.messages[0].plain, "Monday, October 19, 2026 at 7:30 AM")
}

func TestSendScheduleEmailWithoutSchedule(t *testing.T) {
	s := &recordingSender{}
	assert.Error(t, NewOrderMailer(s).SendScheduleEmail(context.Background(), sampleOrder()))
	assert.Empty(t, s.messages)
}

func TestSendMeasurementDetailsEmail(t *testing.T) {
	s := &recordingSender{}
	require.NoError(t, NewOrderMailer(s).SendMeasurementDetailsEmail(context.Background(), sampleOrder()))
	assert.Contains(t, s.messages[0].plain, "x2 @ PHP 350.00 = PHP 700.00")
	assert.Contains(t, s.messages[0].plain, "Total: PHP 700.00")
}

func TestSendPaymentReminderEscapesHTML(t *testing.T) {
	s := &recordingSender{}
	o := sampleOrder()
	o.StudentName = "<b>Dana</b>"

	require.NoError(t, NewOrderMailer(s).SendPaymentReminderEmail(context.Background(), o))
	assert.Contains(t, s.messages[0].plain, "PHP 700.00")
	assert.NotContains(t, s.messages[0].html, "<b>")
}

func TestLogSenderNeverFails(t *testing.T) {
	m := NewOrderMailer(NewLogSender(logger.NewNop()))
	assert.NoError(t, m.SendPickupEmail(context.Background(), sampleOrder()))
}
