package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	invusecase "github.com/fekuna/campus-uniform-service/internal/inventory/usecase"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/order/dto"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
	schedusecase "github.com/fekuna/campus-uniform-service/internal/schedule/usecase"
	"github.com/fekuna/campus-uniform-service/internal/testutil"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday morning; the first free slot is Thursday 7:30 AM.
var fixedNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	store         *testutil.Store
	tx            *testutil.Transactor
	orders        *testutil.OrderRepo
	reports       *testutil.ReportRepo
	notifier      *testutil.Notifier
	mailer        *testutil.Mailer
	locker        *testutil.Locker
	indexer       *testutil.Indexer
	announcements *testutil.Announcements
	uc            *orderUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := testutil.NewStore()
	tx := testutil.NewTransactor(store)
	orders := testutil.NewOrderRepo(store)
	announcements := &testutil.Announcements{}

	cfg := schedule.DefaultConfig()
	cfg.Location = time.UTC

	e := &testEnv{
		store:         store,
		tx:            tx,
		orders:        orders,
		reports:       testutil.NewReportRepo(store),
		notifier:      &testutil.Notifier{},
		mailer:        &testutil.Mailer{},
		locker:        testutil.NewLocker(),
		indexer:       &testutil.Indexer{},
		announcements: announcements,
	}

	uc := NewOrderUseCase(Params{
		Repo:      orders,
		Ledger:    invusecase.NewInventoryUseCase(testutil.NewInventoryRepo(store), tx, logger.NewNop()),
		Reports:   e.reports,
		Indexer:   e.indexer,
		Scheduler: schedusecase.NewScheduleUseCase(cfg, announcements, orders, logger.NewNop()),
		Locker:    e.locker,
		Tx:        tx,
		Notifier:  e.notifier,
		Mailer:    e.mailer,
		Logger:    logger.NewNop(),
	}).(*orderUseCase)
	uc.now = func() time.Time { return fixedNow }
	e.uc = uc
	return e
}

func createInput(orNumber string) *dto.CreateOrderInput {
	return &dto.CreateOrderInput{
		StudentID:     "student-1",
		StudentName:   "Dana Cruz",
		Email:         "dana@example.edu",
		StudentNumber: "2026-00001",
		Level:         "College",
		Department:    "CCS",
		Gender:        "F",
		Receipt: dto.ReceiptInput{
			PaymentType: "cash",
			ORNumber:    orNumber,
			ImageURL:    "https://files.example.edu/receipts/1.jpg",
			Amount:      decimal.RequireFromString("500"),
		},
	}
}

// seedOrder stores an order directly in the given status.
func (e *testEnv) seedOrder(status model.OrderStatus, items ...model.OrderItem) *model.Order {
	id := uuid.New().String()
	o := &model.Order{
		BaseModel:   model.BaseModel{ID: id, CreatedAt: fixedNow, UpdatedAt: fixedNow},
		OrderCode:   "ORD-" + id[:6],
		StudentID:   "student-1",
		StudentName: "Dana Cruz",
		Email:       "dana@example.edu",
		Status:      status,
		Receipts: []model.Receipt{{
			ID:        uuid.New().String(),
			OrderID:   id,
			ORNumber:  "OR-" + id[:8],
			Amount:    decimal.RequireFromString("500"),
			CreatedAt: fixedNow,
		}},
	}
	for _, item := range items {
		item.ID = uuid.New().String()
		item.OrderID = id
		o.Items = append(o.Items, item)
	}
	o.RecomputeTotal()
	e.store.PutOrder(o)
	return o
}

func (e *testEnv) seedStock(level, productType, size, qty string) model.ItemKey {
	q := decimal.RequireFromString(qty)
	item := model.InventoryItem{
		ID:          uuid.New().String(),
		Kind:        model.KindUniform,
		Level:       level,
		ProductType: productType,
		Size:        size,
		Unit:        "pcs",
		Quantity:    q,
		Status:      model.StandardStock(q, ""),
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
	e.store.PutItem(item)
	return item.Key()
}

func line(level, productType, size, price string, qty int) model.OrderItem {
	return model.OrderItem{
		Level:       level,
		ProductType: productType,
		Size:        size,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
	}
}

func TestOrderLifecycle_EndToEnd(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	stock := e.seedStock("College", "Polo", "M", "10")

	o, err := e.uc.Create(ctx, createInput("OR-001"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, o.Status)
	require.Len(t, o.Receipts, 1)
	assert.Equal(t, "New Order", e.notifier.Sent[0].Title)
	assert.Equal(t, model.StaffRoles, e.notifier.Sent[0].Roles)

	o, err = e.uc.VerifyReceipt(ctx, o.ID, o.Receipts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, o.Status)
	assert.True(t, o.Receipts[0].Verified)
	s := o.Schedule()
	require.NotNil(t, s)
	assert.Equal(t, "2026-10-15", s.Date.Format("2006-01-02"))
	assert.Equal(t, "7:30 AM", s.TimeSlot)
	assert.Contains(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}, s.Date.Weekday())
	assert.False(t, e.locker.Held(scheduleLockKey))

	o, err = e.uc.Measure(ctx, o.ID, &dto.MeasureInput{Items: []dto.OrderItemInput{
		{Level: "College", ProductType: "Polo", Size: "M", UnitPrice: decimal.RequireFromString("350.00"), Quantity: 2},
	}})
	require.NoError(t, err)
	assert.Equal(t, model.StatusMeasured, o.Status)
	assert.Equal(t, "700.00", o.TotalPrice.StringFixed(2))

	o, err = e.uc.UpdateStatus(ctx, o.ID, &dto.UpdateStatusInput{Status: "For Pickup"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusForPickup, o.Status)

	o, err = e.uc.UpdateStatus(ctx, o.ID, &dto.UpdateStatusInput{Status: "claimed", UserID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusClaimed, o.Status)
	assert.True(t, o.Archived)

	reports := e.store.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, "700.00", reports[0].TotalAmount.StringFixed(2))
	assert.Equal(t, o.ID, reports[0].OrderID)
	assert.Equal(t, []string{reports[0].ID}, e.indexer.Indexed)

	item := e.store.Item(stock)
	assert.Equal(t, "8.00", item.Quantity.StringFixed(2))
	assert.Equal(t, model.StockLow, item.Status)

	assert.Equal(t, []string{"schedule", "measurement_details", "payment_reminder"}, e.mailer.Sent)
	assert.Equal(t, []string{"New Order", "Order Approved", "Measurement Recorded", "Ready for Pickup", "Order Claimed"}, e.notifier.Titles())

	movements := e.store.Movements()
	require.Len(t, movements, 1)
	assert.Equal(t, model.RefOrderClaim, *movements[0].ReferenceType)
	assert.Equal(t, "-2.00", movements[0].QuantityChange.StringFixed(2))
}

func TestCreate_DuplicateORNumber(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.uc.Create(ctx, createInput("OR-001"))
	require.NoError(t, err)

	input := createInput(" OR-001 ")
	input.StudentID = "student-2"
	_, err = e.uc.Create(ctx, input)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	orders, total, err := e.uc.List(ctx, &dto.OrderFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, orders, 1)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateOrderInput)
	}{
		{"missing OR number", func(in *dto.CreateOrderInput) { in.Receipt.ORNumber = "  " }},
		{"missing image", func(in *dto.CreateOrderInput) { in.Receipt.ImageURL = "" }},
		{"missing student", func(in *dto.CreateOrderInput) { in.StudentID = "" }},
		{"negative amount", func(in *dto.CreateOrderInput) { in.Receipt.Amount = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			input := createInput("OR-001")
			tt.mutate(input)

			_, err := e.uc.Create(context.Background(), input)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
			assert.Empty(t, e.notifier.Sent)
		})
	}
}

func TestClaim_InsufficientStockChangesNothing(t *testing.T) {
	e := newTestEnv(t)
	keyA := e.seedStock("College", "Polo", "M", "5")
	keyB := e.seedStock("College", "Pants", "M", "0")
	o := e.seedOrder(model.StatusForPickup,
		line("College", "Polo", "M", "350", 2),
		line("College", "Pants", "M", "400", 1),
	)

	_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Claimed"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	details := apperror.DetailsOf(err)
	require.Len(t, details, 1)
	assert.Equal(t, "College/Pants/M", details[0].Item)
	assert.Equal(t, "insufficient", details[0].Reason)
	assert.Equal(t, "1.00", details[0].Shortage)

	assert.Equal(t, "5.00", e.store.Item(keyA).Quantity.StringFixed(2))
	assert.Equal(t, "0.00", e.store.Item(keyB).Quantity.StringFixed(2))
	assert.Empty(t, e.store.Reports())
	assert.Empty(t, e.store.Movements())
	assert.Equal(t, model.StatusForPickup, e.store.Order(o.ID).Status)
	assert.False(t, e.store.Order(o.ID).Archived)
}

func TestClaim_MissingInventoryRow(t *testing.T) {
	e := newTestEnv(t)
	keyA := e.seedStock("College", "Polo", "M", "5")
	o := e.seedOrder(model.StatusForPickup,
		line("College", "Polo", "M", "350", 1),
		line("College", "Necktie", "OS", "120", 1),
	)

	_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Claimed"})
	require.Error(t, err)

	details := apperror.DetailsOf(err)
	require.Len(t, details, 1)
	assert.Equal(t, "missing", details[0].Reason)
	assert.Equal(t, "5.00", e.store.Item(keyA).Quantity.StringFixed(2))
}

func TestClaim_AggregatesDuplicateLines(t *testing.T) {
	e := newTestEnv(t)
	key := e.seedStock("College", "Polo", "M", "3")
	o := e.seedOrder(model.StatusForPickup,
		line("College", "Polo", "M", "350", 2),
		line("College", "Polo", "M", "350", 2),
	)

	_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Claimed"})
	require.Error(t, err)
	details := apperror.DetailsOf(err)
	require.Len(t, details, 1)
	assert.Equal(t, "4.00", details[0].Required)
	assert.Equal(t, "3.00", e.store.Item(key).Quantity.StringFixed(2))
}

func TestClaim_ReportFailureRollsBack(t *testing.T) {
	e := newTestEnv(t)
	key := e.seedStock("College", "Polo", "M", "5")
	o := e.seedOrder(model.StatusForPickup, line("College", "Polo", "M", "350", 2))
	e.reports.Err = errors.New("disk full")

	_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Claimed"})
	require.Error(t, err)

	assert.Equal(t, "5.00", e.store.Item(key).Quantity.StringFixed(2))
	assert.Empty(t, e.store.Movements())
	assert.Equal(t, model.StatusForPickup, e.store.Order(o.ID).Status)
	assert.Equal(t, 1, e.tx.Rollbacks)
}

func TestClaim_RequiresItems(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusForPickup)

	_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Claimed"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestClaim_IndexFailureIsNotFatal(t *testing.T) {
	e := newTestEnv(t)
	e.seedStock("College", "Polo", "M", "5")
	o := e.seedOrder(model.StatusForPickup, line("College", "Polo", "M", "350", 1))
	e.indexer.Err = errors.New("cluster red")

	got, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Claimed"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusClaimed, got.Status)
	assert.Len(t, e.store.Reports(), 1)
}

func TestApprove_NoSlotLeavesOrderUntouched(t *testing.T) {
	e := newTestEnv(t)
	// Thursday is fully booked and everything after it is blacked out.
	for i := 0; i < 30; i++ {
		booked := e.seedOrder(model.StatusApproved)
		booked.SetSchedule(model.MeasurementSchedule{Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), TimeSlot: "7:30 AM"})
		e.store.PutOrder(booked)
	}
	e.announcements.Items = []model.Announcement{{
		Title:     "No Measurement - Semestral Break",
		StartDate: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}}
	o := e.seedOrder(model.StatusPending)

	_, err := e.uc.VerifyReceipt(context.Background(), o.ID, o.Receipts[0].ID)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindSchedulingFailed))

	stored := e.store.Order(o.ID)
	assert.Equal(t, model.StatusPending, stored.Status)
	assert.False(t, stored.Receipts[0].Verified)
	assert.Nil(t, stored.Schedule())
	assert.Empty(t, e.mailer.Sent)
	assert.False(t, e.locker.Held(scheduleLockKey))
}

func TestApprove_LockHeldByAnotherInstance(t *testing.T) {
	e := newTestEnv(t)
	e.locker.Hold(scheduleLockKey)
	o := e.seedOrder(model.StatusPending)

	_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Approved"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, model.StatusPending, e.store.Order(o.ID).Status)
}

func TestApprove_FillsSlotsInOrder(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	var slots []string
	for i := 0; i < 9; i++ {
		o := e.seedOrder(model.StatusPending)
		got, err := e.uc.UpdateStatus(ctx, o.ID, &dto.UpdateStatusInput{Status: "approved"})
		require.NoError(t, err)
		slots = append(slots, got.Schedule().TimeSlot)
	}

	for i := 0; i < 8; i++ {
		assert.Equal(t, "7:30 AM", slots[i], "approval %d", i+1)
	}
	assert.Equal(t, "8:30 AM", slots[8])
	assert.Equal(t, 9, e.locker.Acquired)
}

func TestApprove_VerifiesLatestReceipt(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusRejected)
	o.Receipts = append(o.Receipts, model.Receipt{
		ID:        "latest",
		OrderID:   o.ID,
		ORNumber:  "OR-LATEST",
		CreatedAt: fixedNow.Add(time.Hour),
	})
	reason := "blurry receipt"
	o.RejectionReason = &reason
	e.store.PutOrder(o)

	got, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Approved"})
	require.NoError(t, err)
	assert.False(t, got.Receipts[0].Verified)
	assert.True(t, got.FindReceipt("latest").Verified)
	assert.Nil(t, got.RejectionReason)
}

func TestApprove_AlreadyApprovedIsNoop(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusApproved)
	o.SetSchedule(model.MeasurementSchedule{Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), TimeSlot: "9:30 AM"})
	e.store.PutOrder(o)

	got, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "9:30 AM", got.Schedule().TimeSlot)
	assert.Empty(t, e.mailer.Sent)
	assert.Empty(t, e.notifier.Sent)
}

func TestAddReceipt_ResubmissionAfterRejection(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	o := e.seedOrder(model.StatusRejected)
	reason := "amount mismatch"
	o.RejectionReason = &reason
	e.store.PutOrder(o)

	got, err := e.uc.AddReceipt(ctx, o.ID, &dto.ReceiptInput{
		PaymentType: "bank",
		ORNumber:    "OR-002",
		ImageURL:    "https://files.example.edu/receipts/2.jpg",
		Amount:      decimal.RequireFromString("700"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusForVerification, got.Status)
	assert.Nil(t, got.RejectionReason)
	require.Len(t, got.Receipts, 2)
	assert.False(t, got.Receipts[1].Verified)
	assert.Equal(t, "New Receipt", e.notifier.Sent[0].Title)

	got, err = e.uc.VerifyReceipt(ctx, o.ID, got.Receipts[1].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaymentVerified, got.Status)
	assert.Equal(t, []string{"pickup"}, e.mailer.Sent)
}

func TestAddReceipt_KeepsStatusOutsideResubmission(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusMeasured)

	got, err := e.uc.AddReceipt(context.Background(), o.ID, &dto.ReceiptInput{ORNumber: "OR-009", ImageURL: "x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusMeasured, got.Status)
}

func TestAddReceipt_DuplicateOR(t *testing.T) {
	e := newTestEnv(t)
	first := e.seedOrder(model.StatusPending)
	second := e.seedOrder(model.StatusForPickup)

	_, err := e.uc.AddReceipt(context.Background(), second.ID, &dto.ReceiptInput{
		ORNumber: first.Receipts[0].ORNumber,
		ImageURL: "x.jpg",
	})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	stored := e.store.Order(second.ID)
	assert.Len(t, stored.Receipts, 1)
	assert.Equal(t, model.StatusForPickup, stored.Status)
}

func TestVerifyReceipt_ForPickupKeepsStatus(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusForPickup)

	got, err := e.uc.VerifyReceipt(context.Background(), o.ID, o.Receipts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusForPickup, got.Status)
	assert.True(t, got.Receipts[0].Verified)
	assert.Equal(t, []string{"Payment Verified"}, e.notifier.Titles())
	assert.Empty(t, e.mailer.Sent)
}

func TestVerifyReceipt_NeverTwice(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusForPickup)
	ctx := context.Background()

	_, err := e.uc.VerifyReceipt(ctx, o.ID, o.Receipts[0].ID)
	require.NoError(t, err)
	_, err = e.uc.VerifyReceipt(ctx, o.ID, o.Receipts[0].ID)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = e.uc.VerifyReceipt(ctx, o.ID, "nope")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestReject(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	o := e.seedOrder(model.StatusApproved)
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	o.SetSchedule(model.MeasurementSchedule{Date: day, TimeSlot: "7:30 AM"})
	e.store.PutOrder(o)

	_, err := e.uc.Reject(ctx, o.ID, &dto.RejectInput{Reason: "  "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	got, err := e.uc.Reject(ctx, o.ID, &dto.RejectInput{Reason: "fake receipt"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, got.Status)
	assert.Equal(t, "fake receipt", *got.RejectionReason)
	assert.Nil(t, got.Schedule())

	booked, err := e.orders.CountScheduled(ctx, day)
	require.NoError(t, err)
	assert.Zero(t, booked)

	require.Len(t, e.notifier.Sent, 1)
	assert.Equal(t, "student-1", e.notifier.Sent[0].UserID)
	assert.Contains(t, e.notifier.Sent[0].Message, "fake receipt")
}

func TestReject_ClaimedOrder(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusClaimed)

	_, err := e.uc.Reject(context.Background(), o.ID, &dto.RejectInput{Reason: "late"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestMeasure(t *testing.T) {
	t.Run("requires approved", func(t *testing.T) {
		e := newTestEnv(t)
		o := e.seedOrder(model.StatusPending)
		_, err := e.uc.Measure(context.Background(), o.ID, &dto.MeasureInput{Items: []dto.OrderItemInput{
			{Level: "College", ProductType: "Polo", Size: "M", UnitPrice: decimal.NewFromInt(350), Quantity: 1},
		}})
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("rejects empty items", func(t *testing.T) {
		e := newTestEnv(t)
		o := e.seedOrder(model.StatusApproved)
		_, err := e.uc.Measure(context.Background(), o.ID, &dto.MeasureInput{})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("replaces items and recomputes total", func(t *testing.T) {
		e := newTestEnv(t)
		o := e.seedOrder(model.StatusApproved, line("College", "Polo", "S", "1", 1))
		got, err := e.uc.Measure(context.Background(), o.ID, &dto.MeasureInput{Items: []dto.OrderItemInput{
			{Level: "College", ProductType: "Polo", Size: "M", UnitPrice: decimal.RequireFromString("350"), Quantity: 2},
			{Level: "College", ProductType: "Pants", Size: "M", UnitPrice: decimal.RequireFromString("99.995"), Quantity: 1},
		}})
		require.NoError(t, err)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "800.00", got.TotalPrice.StringFixed(2))
		assert.Equal(t, "800.00", e.store.Order(o.ID).TotalPrice.StringFixed(2))
	})

	t.Run("email failure does not abort", func(t *testing.T) {
		e := newTestEnv(t)
		e.mailer.Err = errors.New("smtp down")
		o := e.seedOrder(model.StatusApproved)
		got, err := e.uc.Measure(context.Background(), o.ID, &dto.MeasureInput{Items: []dto.OrderItemInput{
			{Level: "College", ProductType: "Polo", Size: "M", UnitPrice: decimal.NewFromInt(350), Quantity: 1},
		}})
		require.NoError(t, err)
		assert.Equal(t, model.StatusMeasured, got.Status)
	})
}

func TestUpdateStatus_RejectsIndirectTargets(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusApproved)

	for _, status := range []string{"Measured", "Rejected", "Pending", "For Verification", "Payment Verified", "shipped"} {
		t.Run(status, func(t *testing.T) {
			_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: status})
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
		})
	}
}

func TestUpdateStatus_ForPickupRequiresMeasured(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusPending)

	_, err := e.uc.UpdateStatus(context.Background(), o.ID, &dto.UpdateStatusInput{Status: "For Pickup"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Empty(t, e.mailer.Sent)
}

func TestToggleArchive(t *testing.T) {
	e := newTestEnv(t)
	o := e.seedOrder(model.StatusMeasured)

	got, err := e.uc.ToggleArchive(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)
	assert.Equal(t, model.StatusMeasured, got.Status)

	got, err = e.uc.ToggleArchive(context.Background(), o.ID)
	require.NoError(t, err)
	assert.False(t, got.Archived)
}

func TestGetAndDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	o := e.seedOrder(model.StatusPending)

	got, err := e.uc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderCode, got.OrderCode)

	require.NoError(t, e.uc.Delete(ctx, o.ID))
	_, err = e.uc.Get(ctx, o.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.True(t, apperror.Is(e.uc.Delete(ctx, o.ID), apperror.KindNotFound))
}

func TestNewOrderCode(t *testing.T) {
	code := newOrderCode(fixedNow)
	assert.Regexp(t, `^ORD-20261014-[0-9A-F]{6}$`, code)
	assert.NotEqual(t, code, newOrderCode(fixedNow), fmt.Sprintf("codes should differ: %s", code))
}
