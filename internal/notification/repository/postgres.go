package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListActiveByRoles(ctx context.Context, roles []model.Role) ([]model.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	var users []model.User
	query := `SELECT id, name, email, role, is_active FROM users WHERE is_active AND role = ANY($1)`
	err := r.DB.SelectContext(ctx, &users, query, pq.Array(names))
	return users, err
}

func (r *PGRepository) CreateNotifications(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	query := `
        INSERT INTO notifications (id, user_id, title, message, is_read, created_at)
        VALUES (:id, :user_id, :title, :message, :is_read, :created_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, notifications); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

func (r *PGRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Notification, int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM notifications WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	var items []model.Notification
	err := r.DB.SelectContext(ctx, &items, query, userID)
	return items, count, err
}
