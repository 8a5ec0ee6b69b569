package salesreport

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

type Repository interface {
	// Create inserts the report and its items on the connection carried by ctx.
	Create(ctx context.Context, report *model.SalesReport) error
}

// Indexer makes claimed sales searchable. It runs after commit and its
// failures are only logged.
type Indexer interface {
	IndexReport(ctx context.Context, report *model.SalesReport) error
}
