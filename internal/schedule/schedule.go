package schedule

import (
	"context"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

// BlackoutLookup finds a "no measurement" announcement covering day.
// It returns nil, nil when day is free.
type BlackoutLookup interface {
	FindBlackout(ctx context.Context, day time.Time) (*model.Announcement, error)
}

// SlotCounter counts orders whose active schedule falls on day and whose
// status is one of model.ScheduledStatuses.
type SlotCounter interface {
	CountScheduled(ctx context.Context, day time.Time) (int, error)
	CountScheduledInSlot(ctx context.Context, day time.Time, slot string) (int, error)
}

type UseCase interface {
	// NextAvailableSlot returns the first free (date, slot) strictly after
	// reference's calendar day.
	NextAvailableSlot(ctx context.Context, reference time.Time) (*model.MeasurementSchedule, error)
}
