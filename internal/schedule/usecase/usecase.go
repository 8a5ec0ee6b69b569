package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"go.uber.org/zap"
)

type scheduleUseCase struct {
	cfg       schedule.Config
	workdays  map[time.Weekday]bool
	blackouts schedule.BlackoutLookup
	counter   schedule.SlotCounter
	logger    logger.ZapLogger
}

func NewScheduleUseCase(cfg schedule.Config, blackouts schedule.BlackoutLookup, counter schedule.SlotCounter, log logger.ZapLogger) schedule.UseCase {
	cfg = cfg.Clone()
	workdays := make(map[time.Weekday]bool, len(cfg.Weekdays))
	for _, d := range cfg.Weekdays {
		workdays[d] = true
	}
	return &scheduleUseCase{
		cfg:       cfg,
		workdays:  workdays,
		blackouts: blackouts,
		counter:   counter,
		logger:    log,
	}
}

func (uc *scheduleUseCase) NextAvailableSlot(ctx context.Context, reference time.Time) (*model.MeasurementSchedule, error) {
	candidate := startOfDay(reference.In(uc.cfg.Location)).AddDate(0, 0, 1)

	blackout, err := uc.blackouts.FindBlackout(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("find blackout: %w", err)
	}
	if blackout != nil {
		candidate = startOfDay(blackout.EndDate.In(uc.cfg.Location)).AddDate(0, 0, 1)
		for !uc.workdays[candidate.Weekday()] {
			candidate = candidate.AddDate(0, 0, 1)
		}
	}

	for i := 0; i < uc.cfg.HorizonDays; i, candidate = i+1, candidate.AddDate(0, 0, 1) {
		if !uc.workdays[candidate.Weekday()] {
			continue
		}

		blackout, err := uc.blackouts.FindBlackout(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("find blackout: %w", err)
		}
		if blackout != nil {
			continue
		}

		day := DateOnly(candidate)
		booked, err := uc.counter.CountScheduled(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("count scheduled: %w", err)
		}
		if booked >= uc.cfg.DailyCapacity {
			continue
		}

		for _, slot := range uc.cfg.Slots {
			n, err := uc.counter.CountScheduledInSlot(ctx, day, slot.Label)
			if err != nil {
				return nil, fmt.Errorf("count slot: %w", err)
			}
			if n < slot.Capacity {
				return &model.MeasurementSchedule{Date: day, TimeSlot: slot.Label}, nil
			}
		}
	}

	uc.logger.Warn("no measurement slot available", zap.Time("reference", reference), zap.Int("horizon_days", uc.cfg.HorizonDays))
	return nil, apperror.SchedulingFailed("no available measurement slots within %d days", uc.cfg.HorizonDays)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateOnly maps t's calendar date to UTC midnight, the form schedule dates are
// stored and compared in.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
