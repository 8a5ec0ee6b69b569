package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, report *model.SalesReport) error {
	conn := postgres.Conn(ctx, r.DB)

	query := `
        INSERT INTO sales_reports (
            id, order_id, order_code, student_id, student_name, email, student_number,
            level, department, gender, total_amount, claimed_at, month, year
        )
        VALUES (
            :id, :order_id, :order_code, :student_id, :student_name, :email, :student_number,
            :level, :department, :gender, :total_amount, :claimed_at, :month, :year
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, query, report); err != nil {
		return fmt.Errorf("insert sales report: %w", err)
	}

	if len(report.Items) == 0 {
		return nil
	}

	itemQuery := `
        INSERT INTO sales_report_items (id, report_id, level, product_type, size, unit_price, quantity, subtotal)
        VALUES (:id, :report_id, :level, :product_type, :size, :unit_price, :quantity, :subtotal)
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, itemQuery, report.Items); err != nil {
		return fmt.Errorf("insert sales report items: %w", err)
	}
	return nil
}
