package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/order/dto"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, order *model.Order) error {
	conn := postgres.Conn(ctx, r.DB)

	query := `
        INSERT INTO orders (
            id, order_code, student_id, student_name, email, student_number, level,
            department, gender, status, total_price, schedule_date, schedule_slot,
            rejection_reason, archived, created_at, updated_at
        )
        VALUES (
            :id, :order_code, :student_id, :student_name, :email, :student_number, :level,
            :department, :gender, :status, :total_price, :schedule_date, :schedule_slot,
            :rejection_reason, :archived, :created_at, :updated_at
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, query, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err := r.upsertReceipts(ctx, conn, order.Receipts); err != nil {
		return err
	}
	return r.insertItems(ctx, conn, order.Items)
}

func (r *PGRepository) GetByID(ctx context.Context, id string, forUpdate bool) (*model.Order, error) {
	conn := postgres.Conn(ctx, r.DB)

	query := `SELECT * FROM orders WHERE id = $1`
	if forUpdate && postgres.InTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	var order model.Order
	if err := sqlx.GetContext(ctx, conn, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := sqlx.SelectContext(ctx, conn, &order.Receipts,
		`SELECT * FROM order_receipts WHERE order_id = $1 ORDER BY created_at`, id); err != nil {
		return nil, fmt.Errorf("load receipts: %w", err)
	}
	if err := sqlx.SelectContext(ctx, conn, &order.Items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, id); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return &order, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.StudentID != "" {
		conditions = append(conditions, "student_id = :student_id")
		args["student_id"] = f.StudentID
	}
	if f.Archived != nil {
		conditions = append(conditions, "archived = :archived")
		args["archived"] = *f.Archived
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &orders, args)
	return orders, count, err
}

func (r *PGRepository) Save(ctx context.Context, order *model.Order) error {
	conn := postgres.Conn(ctx, r.DB)

	query := `
        UPDATE orders
        SET status = :status,
            total_price = :total_price,
            schedule_date = :schedule_date,
            schedule_slot = :schedule_slot,
            rejection_reason = :rejection_reason,
            archived = :archived,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, query, order); err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	if err := r.upsertReceipts(ctx, conn, order.Receipts); err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}
	return r.insertItems(ctx, conn, order.Items)
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// receipts and items cascade
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return err
}

func (r *PGRepository) ORNumberExists(ctx context.Context, orNumber string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &exists,
		`SELECT EXISTS (SELECT 1 FROM order_receipts WHERE or_number = $1)`, orNumber)
	return exists, err
}

func (r *PGRepository) CountScheduled(ctx context.Context, day time.Time) (int, error) {
	var count int
	query := `
        SELECT count(*) FROM orders
        WHERE schedule_date = $1::date AND status = ANY($2)`
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &count, query, day.Format("2006-01-02"), scheduledStatuses())
	return count, err
}

func (r *PGRepository) CountScheduledInSlot(ctx context.Context, day time.Time, slot string) (int, error) {
	var count int
	query := `
        SELECT count(*) FROM orders
        WHERE schedule_date = $1::date AND schedule_slot = $2 AND status = ANY($3)`
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &count, query, day.Format("2006-01-02"), slot, scheduledStatuses())
	return count, err
}

func (r *PGRepository) upsertReceipts(ctx context.Context, conn sqlx.ExtContext, receipts []model.Receipt) error {
	if len(receipts) == 0 {
		return nil
	}
	query := `
        INSERT INTO order_receipts (id, order_id, payment_type, or_number, date_paid, image_url, amount, verified, created_at)
        VALUES (:id, :order_id, :payment_type, :or_number, :date_paid, :image_url, :amount, :verified, :created_at)
        ON CONFLICT (id)
        DO UPDATE SET verified = order_receipts.verified OR EXCLUDED.verified
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, query, receipts); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperror.Conflict("OR number already used", apperror.Detail{Reason: "duplicate_or_number"})
		}
		return fmt.Errorf("upsert receipts: %w", err)
	}
	return nil
}

func (r *PGRepository) insertItems(ctx context.Context, conn sqlx.ExtContext, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
        INSERT INTO order_items (id, order_id, level, product_type, size, unit_price, quantity)
        VALUES (:id, :order_id, :level, :product_type, :size, :unit_price, :quantity)
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, query, items); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

func scheduledStatuses() interface{} {
	names := make([]string, len(model.ScheduledStatuses))
	for i, s := range model.ScheduledStatuses {
		names[i] = string(s)
	}
	return pq.Array(names)
}
