package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/production/dto"
	"github.com/fekuna/campus-uniform-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Production) error {
	conn := postgres.Conn(ctx, r.DB)

	query := `
        INSERT INTO productions (
            id, product_line, level, product_type, size, quantity, start_date, end_date, created_at, updated_at
        )
        VALUES (
            :id, :product_line, :level, :product_type, :size, :quantity, :start_date, :end_date, :created_at, :updated_at
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, query, p); err != nil {
		return fmt.Errorf("insert production: %w", err)
	}

	if len(p.Materials) == 0 {
		return nil
	}
	materialQuery := `
        INSERT INTO production_materials (id, production_id, category, material_type, quantity, unit)
        VALUES (:id, :production_id, :category, :material_type, :quantity, :unit)
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, materialQuery, p.Materials); err != nil {
		return fmt.Errorf("insert production materials: %w", err)
	}
	return nil
}

func (r *PGRepository) GetByID(ctx context.Context, id string, forUpdate bool) (*model.Production, error) {
	conn := postgres.Conn(ctx, r.DB)

	query := `SELECT * FROM productions WHERE id = $1`
	if forUpdate && postgres.InTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	var p model.Production
	if err := sqlx.GetContext(ctx, conn, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := sqlx.SelectContext(ctx, conn, &p.Materials,
		`SELECT * FROM production_materials WHERE production_id = $1 ORDER BY category, material_type`, id); err != nil {
		return nil, fmt.Errorf("load production materials: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductionFilters) ([]model.Production, int, error) {
	var items []model.Production
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Line != "" {
		conditions = append(conditions, "product_line = :product_line")
		args["product_line"] = f.Line
	}
	if f.Level != "" {
		conditions = append(conditions, "level = :level")
		args["level"] = f.Level
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM productions" + whereClause
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

	query := "SELECT * FROM productions" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Production) error {
	query := `
        UPDATE productions
        SET quantity = :quantity,
            start_date = :start_date,
            end_date = :end_date,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := sqlx.NamedExecContext(ctx, postgres.Conn(ctx, r.DB), query, p); err != nil {
		return fmt.Errorf("update production: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// materials cascade
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM productions WHERE id = $1`, id)
	return err
}
