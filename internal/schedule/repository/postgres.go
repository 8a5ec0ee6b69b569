package repository

import (
	"context"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/jmoiron/sqlx"
)

// AnnouncementRepository reads announcements for the scheduler's blackout check.
type AnnouncementRepository struct {
	DB *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

// FindBlackout bounds the query by the instants of day's local midnight and the
// next one, so the session timezone never decides which date a timestamp falls on.
func (r *AnnouncementRepository) FindBlackout(ctx context.Context, day time.Time) (*model.Announcement, error) {
	from, to := model.DayWindow(day)
	query := `
        SELECT * FROM announcements
        WHERE title ~* 'no\s*measurement'
          AND start_date < $2
          AND end_date >= $1
        ORDER BY end_date DESC`

	var candidates []model.Announcement
	if err := r.DB.SelectContext(ctx, &candidates, query, from, to); err != nil {
		return nil, err
	}
	return model.FindBlackout(candidates, day), nil
}
