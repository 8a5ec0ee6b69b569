package usecase

import (
	"context"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"go.uber.org/zap"
)

// Side effects run after the transition is committed. Their failures are
// logged and never returned.

func (uc *orderUseCase) notifyStudent(ctx context.Context, o *model.Order, title, message string) {
	if o.StudentID == "" {
		return
	}
	uc.notifier.Notify(ctx, o.StudentID, title, message)
}

func (uc *orderUseCase) sendEmail(ctx context.Context, o *model.Order, kind string, send func(context.Context, *model.Order) error) {
	if o.Email == "" {
		uc.logger.Warn("Order has no email, skipping", zap.String("order_id", o.ID), zap.String("email_kind", kind))
		return
	}
	if err := send(ctx, o); err != nil {
		uc.logger.Error("Failed to send email",
			zap.String("order_id", o.ID),
			zap.String("email_kind", kind),
			zap.Error(err),
		)
	}
}

func (uc *orderUseCase) indexReport(ctx context.Context, report *model.SalesReport) {
	if uc.indexer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := uc.indexer.IndexReport(ctx, report); err != nil {
		uc.logger.Error("Failed to index sales report",
			zap.String("report_id", report.ID),
			zap.String("order_id", report.OrderID),
			zap.Error(err),
		)
	}
}
