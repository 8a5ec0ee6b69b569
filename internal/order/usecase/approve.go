package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// approve allocates a measurement slot and moves the order to Approved. The
// schedule lock is held from slot computation until the order is saved, so
// two approvals cannot take the last seat of a slot. receiptID selects the
// receipt to verify; empty means the most recent one.
func (uc *orderUseCase) approve(ctx context.Context, orderID, receiptID string) (*model.Order, error) {
	token := uuid.New().String()
	acquired, err := uc.locker.AcquireLock(ctx, scheduleLockKey, token, uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire schedule lock: %w", err)
	}
	if !acquired {
		return nil, apperror.Conflict("measurement schedule is being updated, please retry")
	}
	defer func() {
		if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), scheduleLockKey, token); err != nil {
			uc.logger.Error("Failed to release schedule lock", zap.String("order_id", orderID), zap.Error(err))
		}
	}()

	var o *model.Order
	changed := false
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		if o.Status == model.StatusApproved {
			return nil
		}
		if err := checkTransition(o.Status, model.StatusApproved); err != nil {
			return err
		}

		slot, err := uc.scheduler.NextAvailableSlot(ctx, uc.now())
		if err != nil {
			return err
		}

		if receiptID != "" {
			if err := markVerified(o, receiptID); err != nil {
				return err
			}
		} else if r := o.LatestReceipt(); r != nil {
			r.Verified = true
		}

		o.Status = model.StatusApproved
		o.SetSchedule(*slot)
		o.RejectionReason = nil
		o.UpdatedAt = uc.now()
		changed = true
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	s := o.Schedule()
	uc.logger.Info("Order approved",
		zap.String("order_id", o.ID),
		zap.String("schedule_date", s.Date.Format("2006-01-02")),
		zap.String("time_slot", s.TimeSlot),
	)
	uc.notifyStudent(ctx, o, "Order Approved",
		fmt.Sprintf("Your order %s has been approved. Measurement: %s at %s.",
			o.OrderCode, s.Date.Format("Monday, January 2, 2006"), s.TimeSlot))
	uc.sendEmail(ctx, o, "schedule", uc.mailer.SendScheduleEmail)
	return o, nil
}
