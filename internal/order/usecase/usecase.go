package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/inventory"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/notification"
	"github.com/fekuna/campus-uniform-service/internal/order"
	"github.com/fekuna/campus-uniform-service/internal/order/dto"
	"github.com/fekuna/campus-uniform-service/internal/salesreport"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/database/postgres"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const scheduleLockKey = "lock:measurement-schedule"

// Params groups the collaborators of the order state machine.
type Params struct {
	Repo      order.Repository
	Ledger    inventory.UseCase
	Reports   salesreport.Repository
	Indexer   salesreport.Indexer // optional
	Scheduler schedule.UseCase
	Locker    order.Locker
	Tx        postgres.Transactor
	Notifier  notification.Notifier
	Mailer    notification.Mailer
	LockTTL   time.Duration
	Logger    logger.ZapLogger
}

type orderUseCase struct {
	repo      order.Repository
	ledger    inventory.UseCase
	reports   salesreport.Repository
	indexer   salesreport.Indexer
	scheduler schedule.UseCase
	locker    order.Locker
	tx        postgres.Transactor
	notifier  notification.Notifier
	mailer    notification.Mailer
	lockTTL   time.Duration
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewOrderUseCase(p Params) order.UseCase {
	ttl := p.LockTTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &orderUseCase{
		repo:      p.Repo,
		ledger:    p.Ledger,
		reports:   p.Reports,
		indexer:   p.Indexer,
		scheduler: p.Scheduler,
		locker:    p.Locker,
		tx:        p.Tx,
		notifier:  p.Notifier,
		mailer:    p.Mailer,
		lockTTL:   ttl,
		logger:    p.Logger,
		now:       time.Now,
	}
}

func (uc *orderUseCase) Create(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if strings.TrimSpace(input.StudentID) == "" {
		return nil, apperror.Validation("student id is required")
	}
	if strings.TrimSpace(input.StudentName) == "" {
		return nil, apperror.Validation("student name is required")
	}
	if err := validateReceipt(&input.Receipt); err != nil {
		return nil, err
	}

	now := uc.now()
	o := &model.Order{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderCode:     newOrderCode(now),
		StudentID:     input.StudentID,
		StudentName:   strings.TrimSpace(input.StudentName),
		Email:         strings.TrimSpace(input.Email),
		StudentNumber: input.StudentNumber,
		Level:         input.Level,
		Department:    input.Department,
		Gender:        input.Gender,
		Status:        model.StatusPending,
		TotalPrice:    decimal.Zero,
	}
	o.Receipts = []model.Receipt{newReceipt(o.ID, &input.Receipt, now)}

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.ensureUniqueOR(ctx, input.Receipt.ORNumber); err != nil {
			return err
		}
		return uc.repo.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Order created", zap.String("order_id", o.ID), zap.String("order_code", o.OrderCode))
	uc.notifier.NotifyRoles(ctx, model.StaffRoles, "New Order",
		fmt.Sprintf("%s submitted order %s.", o.StudentName, o.OrderCode))
	return o, nil
}

func (uc *orderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return uc.load(ctx, id, false)
}

func (uc *orderUseCase) List(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id, false); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	uc.logger.Info("Order deleted", zap.String("order_id", id))
	return nil
}

func (uc *orderUseCase) AddReceipt(ctx context.Context, orderID string, input *dto.ReceiptInput) (*model.Order, error) {
	if err := validateReceipt(input); err != nil {
		return nil, err
	}

	var o *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		if err := uc.ensureUniqueOR(ctx, input.ORNumber); err != nil {
			return err
		}

		now := uc.now()
		o.Receipts = append(o.Receipts, newReceipt(o.ID, input, now))
		if o.Status == model.StatusRejected || o.Status == model.StatusForPickup {
			o.Status = model.StatusForVerification
			o.RejectionReason = nil
		}
		o.UpdatedAt = now
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyRoles(ctx, model.StaffRoles, "New Receipt",
		fmt.Sprintf("%s uploaded a new receipt for order %s.", o.StudentName, o.OrderCode))
	return o, nil
}

func (uc *orderUseCase) VerifyReceipt(ctx context.Context, orderID, receiptID string) (*model.Order, error) {
	current, err := uc.load(ctx, orderID, false)
	if err != nil {
		return nil, err
	}
	if current.Status == model.StatusPending {
		return uc.approve(ctx, orderID, receiptID)
	}

	var o *model.Order
	var previous model.OrderStatus
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		previous = o.Status
		if err := markVerified(o, receiptID); err != nil {
			return err
		}
		if o.Status == model.StatusForVerification {
			o.Status = model.StatusPaymentVerified
		}
		o.UpdatedAt = uc.now()
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	switch previous {
	case model.StatusForPickup:
		uc.notifyStudent(ctx, o, "Payment Verified",
			fmt.Sprintf("Your payment for order %s has been verified.", o.OrderCode))
	case model.StatusForVerification:
		uc.notifyStudent(ctx, o, "Payment Verified",
			fmt.Sprintf("Your payment for order %s has been verified. Your uniform is ready for pickup.", o.OrderCode))
		uc.sendEmail(ctx, o, "pickup", uc.mailer.SendPickupEmail)
	}
	return o, nil
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, orderID string, input *dto.UpdateStatusInput) (*model.Order, error) {
	target, ok := model.ParseOrderStatus(input.Status)
	if !ok {
		return nil, apperror.Validation("unknown order status %q", input.Status)
	}

	switch target {
	case model.StatusApproved:
		return uc.approve(ctx, orderID, "")
	case model.StatusForPickup:
		return uc.markForPickup(ctx, orderID)
	case model.StatusClaimed:
		return uc.claim(ctx, orderID, input.UserID)
	}
	return nil, apperror.Validation("status %q cannot be set directly", target)
}

func (uc *orderUseCase) Reject(ctx context.Context, orderID string, input *dto.RejectInput) (*model.Order, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperror.Validation("rejection reason is required")
	}

	var o *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		if err := checkTransition(o.Status, model.StatusRejected); err != nil {
			return err
		}
		o.Status = model.StatusRejected
		o.RejectionReason = &reason
		o.ClearSchedule()
		o.UpdatedAt = uc.now()
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyStudent(ctx, o, "Order Rejected",
		fmt.Sprintf("Your order %s was rejected: %s", o.OrderCode, reason))
	return o, nil
}

func (uc *orderUseCase) Measure(ctx context.Context, orderID string, input *dto.MeasureInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.Validation("at least one item is required")
	}
	for i, item := range input.Items {
		if item.Level == "" || item.ProductType == "" || item.Size == "" {
			return nil, apperror.Validation("item %d: level, product type and size are required", i+1)
		}
		if item.Quantity < 1 {
			return nil, apperror.Validation("item %d: quantity must be at least 1", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return nil, apperror.Validation("item %d: unit price must not be negative", i+1)
		}
	}

	var o *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		if o.Status != model.StatusApproved {
			return apperror.Conflict(fmt.Sprintf("order must be %s to record measurements, it is %s", model.StatusApproved, o.Status))
		}

		items := make([]model.OrderItem, 0, len(input.Items))
		for _, in := range input.Items {
			items = append(items, model.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     o.ID,
				Level:       in.Level,
				ProductType: in.ProductType,
				Size:        in.Size,
				UnitPrice:   in.UnitPrice,
				Quantity:    in.Quantity,
			})
		}
		o.Items = items
		o.RecomputeTotal()
		o.Status = model.StatusMeasured
		o.UpdatedAt = uc.now()
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyStudent(ctx, o, "Measurement Recorded",
		fmt.Sprintf("Your measurement for order %s has been recorded. Total: PHP %s", o.OrderCode, o.TotalPrice.StringFixed(2)))
	uc.sendEmail(ctx, o, "measurement details", uc.mailer.SendMeasurementDetailsEmail)
	return o, nil
}

func (uc *orderUseCase) ToggleArchive(ctx context.Context, orderID string) (*model.Order, error) {
	var o *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		o.Archived = !o.Archived
		o.UpdatedAt = uc.now()
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) markForPickup(ctx context.Context, orderID string) (*model.Order, error) {
	var o *model.Order
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		if err := checkTransition(o.Status, model.StatusForPickup); err != nil {
			return err
		}
		o.Status = model.StatusForPickup
		o.UpdatedAt = uc.now()
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyStudent(ctx, o, "Ready for Pickup",
		fmt.Sprintf("Your order %s is ready. Please settle PHP %s before pickup.", o.OrderCode, o.TotalPrice.StringFixed(2)))
	uc.sendEmail(ctx, o, "payment reminder", uc.mailer.SendPaymentReminderEmail)
	return o, nil
}

func (uc *orderUseCase) load(ctx context.Context, id string, forUpdate bool) (*model.Order, error) {
	o, err := uc.repo.GetByID(ctx, id, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, apperror.NotFound("order %s not found", id)
	}
	return o, nil
}

func (uc *orderUseCase) ensureUniqueOR(ctx context.Context, orNumber string) error {
	exists, err := uc.repo.ORNumberExists(ctx, strings.TrimSpace(orNumber))
	if err != nil {
		return fmt.Errorf("check OR number: %w", err)
	}
	if exists {
		return apperror.Conflict("OR number already used", apperror.Detail{
			Item:   strings.TrimSpace(orNumber),
			Reason: "duplicate_or_number",
		})
	}
	return nil
}

func checkTransition(from, to model.OrderStatus) error {
	if !order.CanTransition(from, to) {
		return apperror.Conflict(fmt.Sprintf("cannot move order from %s to %s", from, to))
	}
	return nil
}

func validateReceipt(in *dto.ReceiptInput) error {
	if strings.TrimSpace(in.ORNumber) == "" {
		return apperror.Validation("OR number is required")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return apperror.Validation("receipt image is required")
	}
	if in.Amount.IsNegative() {
		return apperror.Validation("receipt amount must not be negative")
	}
	return nil
}

func newReceipt(orderID string, in *dto.ReceiptInput, now time.Time) model.Receipt {
	datePaid := in.DatePaid
	if datePaid.IsZero() {
		datePaid = now
	}
	return model.Receipt{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		PaymentType: in.PaymentType,
		ORNumber:    strings.TrimSpace(in.ORNumber),
		DatePaid:    datePaid,
		ImageURL:    in.ImageURL,
		Amount:      in.Amount,
		CreatedAt:   now,
	}
}

// markVerified flips a receipt to verified. Verification never reverts.
func markVerified(o *model.Order, receiptID string) error {
	r := o.FindReceipt(receiptID)
	if r == nil {
		return apperror.NotFound("receipt %s not found on order %s", receiptID, o.OrderCode)
	}
	if r.Verified {
		return apperror.Conflict("receipt already verified")
	}
	r.Verified = true
	return nil
}

func newOrderCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
