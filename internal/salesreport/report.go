package salesreport

import (
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FromOrder snapshots a claimed order. Subtotals and the total are rounded to
// two decimals.
func FromOrder(o *model.Order, claimedAt time.Time) *model.SalesReport {
	report := &model.SalesReport{
		ID:            uuid.New().String(),
		OrderID:       o.ID,
		OrderCode:     o.OrderCode,
		StudentID:     o.StudentID,
		StudentName:   o.StudentName,
		Email:         o.Email,
		StudentNumber: o.StudentNumber,
		Level:         o.Level,
		Department:    o.Department,
		Gender:        o.Gender,
		ClaimedAt:     claimedAt,
		Month:         int(claimedAt.Month()),
		Year:          claimedAt.Year(),
	}

	total := decimal.Zero
	for _, item := range o.Items {
		subtotal := item.Subtotal().Round(2)
		total = total.Add(subtotal)
		report.Items = append(report.Items, model.SalesReportItem{
			ID:          uuid.New().String(),
			ReportID:    report.ID,
			Level:       item.Level,
			ProductType: item.ProductType,
			Size:        item.Size,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    subtotal,
		})
	}
	report.TotalAmount = total.Round(2)
	return report
}
