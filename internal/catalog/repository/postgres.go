package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) LevelExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM levels WHERE name = $1)`, name)
}

func (r *PGRepository) SizeExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM sizes WHERE name = $1)`, name)
}

func (r *PGRepository) CategoryExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name)
}

func (r *PGRepository) UnitExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM units WHERE name = $1)`, name)
}

func (r *PGRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var ok bool
	if err := r.DB.GetContext(ctx, &ok, query, arg); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PGRepository) FindMaterialType(ctx context.Context, category, name string) (*model.RawMaterialType, error) {
	query := `
        SELECT t.id, c.name AS category, t.name
        FROM raw_material_types t
        JOIN categories c ON c.id = t.category_id
        WHERE c.name = $1 AND lower(t.name) = lower($2)
        LIMIT 1`

	var t model.RawMaterialType
	err := r.DB.GetContext(ctx, &t, query, category, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
