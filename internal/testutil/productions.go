package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/fekuna/campus-uniform-service/internal/catalog"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/production"
	"github.com/fekuna/campus-uniform-service/internal/production/dto"
)

var (
	_ production.Repository = (*ProductionRepo)(nil)
	_ catalog.Repository    = (*CatalogRepo)(nil)
)

type ProductionRepo struct {
	store *Store
}

func NewProductionRepo(store *Store) *ProductionRepo {
	return &ProductionRepo{store: store}
}

func (r *ProductionRepo) Create(_ context.Context, p *model.Production) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.productions[p.ID] = copyProduction(p)
	return nil
}

func (r *ProductionRepo) GetByID(_ context.Context, id string, _ bool) (*model.Production, error) {
	return r.store.Production(id), nil
}

func (r *ProductionRepo) FindAll(_ context.Context, f *dto.ProductionFilters) ([]model.Production, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []model.Production
	for _, p := range r.store.productions {
		if f.Line != "" && p.ProductLine != f.Line {
			continue
		}
		if f.Level != "" && p.Level != f.Level {
			continue
		}
		out = append(out, *copyProduction(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	return paginate(out, f.Page, f.PageSize), total, nil
}

func (r *ProductionRepo) Update(_ context.Context, p *model.Production) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.productions[p.ID]; !ok {
		return errors.New("production not found")
	}
	r.store.productions[p.ID] = copyProduction(p)
	return nil
}

func (r *ProductionRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.productions, id)
	return nil
}

// CatalogRepo is static reference data. Material type names match case-insensitively.
type CatalogRepo struct {
	Levels     []string
	Sizes      []string
	Categories []string
	Units      []string
	Types      map[string][]string // category -> type names
}

func (r *CatalogRepo) LevelExists(_ context.Context, name string) (bool, error) {
	return contains(r.Levels, name), nil
}

func (r *CatalogRepo) SizeExists(_ context.Context, name string) (bool, error) {
	return contains(r.Sizes, name), nil
}

func (r *CatalogRepo) CategoryExists(_ context.Context, name string) (bool, error) {
	return contains(r.Categories, name), nil
}

func (r *CatalogRepo) UnitExists(_ context.Context, name string) (bool, error) {
	return contains(r.Units, name), nil
}

func (r *CatalogRepo) FindMaterialType(_ context.Context, category, name string) (*model.RawMaterialType, error) {
	for _, t := range r.Types[category] {
		if strings.EqualFold(t, name) {
			return &model.RawMaterialType{ID: category + ":" + t, Category: category, Name: t}, nil
		}
	}
	return nil, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
