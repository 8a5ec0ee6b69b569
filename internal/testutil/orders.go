package testutil

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/order"
	"github.com/fekuna/campus-uniform-service/internal/order/dto"
	"github.com/fekuna/campus-uniform-service/internal/salesreport"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
)

var (
	_ order.Repository       = (*OrderRepo)(nil)
	_ schedule.SlotCounter   = (*OrderRepo)(nil)
	_ salesreport.Repository = (*ReportRepo)(nil)
)

type OrderRepo struct {
	store *Store
}

func NewOrderRepo(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) Create(_ context.Context, o *model.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[o.ID]; ok {
		return errors.New("order exists")
	}
	r.store.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string, _ bool) (*model.Order, error) {
	return r.store.Order(id), nil
}

func (r *OrderRepo) FindAll(_ context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []model.Order
	for _, o := range r.store.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.StudentID != "" && o.StudentID != f.StudentID {
			continue
		}
		if f.Archived != nil && o.Archived != *f.Archived {
			continue
		}
		out = append(out, *copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	return paginate(out, f.Page, f.PageSize), total, nil
}

func (r *OrderRepo) Save(_ context.Context, o *model.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[o.ID]; !ok {
		return errors.New("order not found")
	}
	r.store.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.orders, id)
	return nil
}

func (r *OrderRepo) ORNumberExists(_ context.Context, orNumber string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		for _, rc := range o.Receipts {
			if rc.ORNumber == orNumber {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *OrderRepo) CountScheduled(_ context.Context, day time.Time) (int, error) {
	return r.count(day, ""), nil
}

func (r *OrderRepo) CountScheduledInSlot(_ context.Context, day time.Time, slot string) (int, error) {
	return r.count(day, slot), nil
}

func (r *OrderRepo) count(day time.Time, slot string) int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n := 0
	want := day.Format("2006-01-02")
	for _, o := range r.store.orders {
		s := o.Schedule()
		if s == nil || s.Date.Format("2006-01-02") != want || !scheduled(o.Status) {
			continue
		}
		if slot != "" && s.TimeSlot != slot {
			continue
		}
		n++
	}
	return n
}

func scheduled(status model.OrderStatus) bool {
	for _, s := range model.ScheduledStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ReportRepo fails every Create with Err when it is set.
type ReportRepo struct {
	store *Store
	Err   error
}

func NewReportRepo(store *Store) *ReportRepo {
	return &ReportRepo{store: store}
}

func (r *ReportRepo) Create(_ context.Context, report *model.SalesReport) error {
	if r.Err != nil {
		return r.Err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *report
	c.Items = append([]model.SalesReportItem(nil), report.Items...)
	r.store.reports = append(r.store.reports, c)
	return nil
}
