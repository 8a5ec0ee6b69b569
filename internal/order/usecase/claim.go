package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/campus-uniform-service/internal/inventory/dto"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/salesreport"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type stockDemand struct {
	label    string
	item     *model.InventoryItem // nil when no inventory row exists
	required int
}

// claim deducts finished goods for every line item, writes the sales report
// and archives the order, all in one transaction. Nothing is deducted unless
// every line item can be served.
func (uc *orderUseCase) claim(ctx context.Context, orderID, userID string) (*model.Order, error) {
	var o *model.Order
	var report *model.SalesReport
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if o, err = uc.load(ctx, orderID, true); err != nil {
			return err
		}
		if err := checkTransition(o.Status, model.StatusClaimed); err != nil {
			return err
		}
		if len(o.Items) == 0 {
			return apperror.Validation("order %s has no items to claim", o.OrderCode)
		}

		demands, err := uc.checkStock(ctx, o)
		if err != nil {
			return err
		}

		for _, d := range demands {
			_, err := uc.ledger.Adjust(ctx, &dto.AdjustInput{
				Key:           d.item.Key(),
				Delta:         decimal.NewFromInt(int64(-d.required)),
				Rule:          model.ClaimStock,
				ReferenceType: model.RefOrderClaim,
				ReferenceID:   o.ID,
				Reason:        "claimed by order " + o.OrderCode,
				UserID:        userID,
			})
			if err != nil {
				return err
			}
		}

		now := uc.now()
		o.RecomputeTotal()
		report = salesreport.FromOrder(o, now)
		if err := uc.reports.Create(ctx, report); err != nil {
			return fmt.Errorf("create sales report: %w", err)
		}

		o.Status = model.StatusClaimed
		o.Archived = true
		o.UpdatedAt = now
		return uc.repo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Order claimed",
		zap.String("order_id", o.ID),
		zap.String("report_id", report.ID),
		zap.String("total", report.TotalAmount.StringFixed(2)),
	)
	uc.indexReport(ctx, report)
	uc.notifyStudent(ctx, o, "Order Claimed",
		fmt.Sprintf("Your order %s has been claimed. Thank you!", o.OrderCode))
	return o, nil
}

// checkStock locks the finished-goods row of every line item and returns the
// aggregated demand per row. Any missing or short row fails the whole claim
// with one detail per offending item.
func (uc *orderUseCase) checkStock(ctx context.Context, o *model.Order) ([]*stockDemand, error) {
	var demands []*stockDemand
	byLabel := make(map[string]*stockDemand)

	for _, line := range o.Items {
		label := fmt.Sprintf("%s/%s/%s", line.Level, line.ProductType, line.Size)
		if d, ok := byLabel[label]; ok {
			d.required += line.Quantity
			continue
		}

		item, err := uc.ledger.FindFinishedGood(ctx, line.Level, line.ProductType, line.Size)
		if err != nil && !apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		d := &stockDemand{label: label, item: item, required: line.Quantity}
		byLabel[label] = d
		demands = append(demands, d)
	}

	var shortages []apperror.Detail
	for _, d := range demands {
		required := decimal.NewFromInt(int64(d.required))
		if d.item == nil {
			shortages = append(shortages, apperror.Detail{
				Item:      d.label,
				Reason:    "missing",
				Required:  required.StringFixed(2),
				Available: "0.00",
				Shortage:  required.StringFixed(2),
			})
			continue
		}
		if d.item.Quantity.LessThan(required) {
			shortages = append(shortages, apperror.Detail{
				Item:      d.label,
				Reason:    "insufficient",
				Required:  required.StringFixed(2),
				Available: d.item.Quantity.StringFixed(2),
				Shortage:  required.Sub(d.item.Quantity).StringFixed(2),
			})
		}
	}
	if len(shortages) > 0 {
		return nil, apperror.Conflict("insufficient finished goods inventory", shortages...)
	}
	return demands, nil
}
