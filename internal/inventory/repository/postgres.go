package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/campus-uniform-service/internal/inventory/dto"
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

func (r *PGRepository) GetByKey(ctx context.Context, key model.ItemKey, forUpdate bool) (*model.InventoryItem, error) {
	query := `
        SELECT * FROM inventory_items
        WHERE kind = $1 AND level = $2 AND product_type = $3 AND size = $4
          AND category = $5 AND material_type = $6`
	args := []interface{}{key.Kind, key.Level, key.ProductType, key.Size, key.Category, key.MaterialType}
	return r.getOne(ctx, query, args, forUpdate)
}

func (r *PGRepository) FindFinishedGood(ctx context.Context, level, productType, size string, forUpdate bool) (*model.InventoryItem, error) {
	query := `
        SELECT * FROM inventory_items
        WHERE kind IN ('uniform', 'gown') AND level = $1 AND product_type = $2 AND size = $3
        ORDER BY created_at
        LIMIT 1`
	return r.getOne(ctx, query, []interface{}{level, productType, size}, forUpdate)
}

func (r *PGRepository) getOne(ctx context.Context, query string, args []interface{}, forUpdate bool) (*model.InventoryItem, error) {
	if forUpdate && postgres.InTransaction(ctx) {
		query += ` FOR UPDATE`
	}

	var item model.InventoryItem
	err := sqlx.GetContext(ctx, postgres.Conn(ctx, r.DB), &item, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.InventoryItem, int, error) {
	var items []model.InventoryItem
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.LowStock {
		conditions = append(conditions, "status IN ('Low Stock', 'Out of Stock')")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_items" + whereClause
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

	query := "SELECT * FROM inventory_items" + whereClause + " ORDER BY updated_at DESC"
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

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var items []model.InventoryMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ItemID != "" {
		conditions = append(conditions, "item_id = :item_id")
		args["item_id"] = f.ItemID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.ReferenceType != "" {
		conditions = append(conditions, "reference_type = :reference_type")
		args["reference_type"] = f.ReferenceType
	}
	if f.ReferenceID != "" {
		conditions = append(conditions, "reference_id = :reference_id")
		args["reference_id"] = f.ReferenceID
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_movements" + whereClause
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

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"
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

func (r *PGRepository) AdjustStockWithMovement(ctx context.Context, item *model.InventoryItem, movement *model.InventoryMovement) error {
	conn := postgres.Conn(ctx, r.DB)

	upsertQuery := `
        INSERT INTO inventory_items (
            id, kind, level, product_type, size, category, material_type,
            unit, quantity, status, price, image_url, created_at, updated_at
        )
        VALUES (
            :id, :kind, :level, :product_type, :size, :category, :material_type,
            :unit, :quantity, :status, :price, :image_url, :created_at, :updated_at
        )
        ON CONFLICT (id)
        DO UPDATE SET
            quantity = EXCLUDED.quantity,
            status = EXCLUDED.status,
            updated_at = EXCLUDED.updated_at
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, upsertQuery, item); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	insertLogQuery := `
        INSERT INTO inventory_movements (
            id, item_id, kind, movement_type, quantity_change, quantity_before,
            quantity_after, reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :item_id, :kind, :movement_type, :quantity_change, :quantity_before,
            :quantity_after, :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, conn, insertLogQuery, movement); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}
