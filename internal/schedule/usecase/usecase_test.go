package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlackouts struct {
	announcements []model.Announcement
}

func (f *fakeBlackouts) FindBlackout(_ context.Context, day time.Time) (*model.Announcement, error) {
	return model.FindBlackout(f.announcements, day), nil
}

type fakeCounter struct {
	perDay  map[string]int
	perSlot map[string]int
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{perDay: map[string]int{}, perSlot: map[string]int{}}
}

func (f *fakeCounter) book(day string, slot string, n int) {
	f.perDay[day] += n
	f.perSlot[day+"|"+slot] += n
}

func (f *fakeCounter) CountScheduled(_ context.Context, day time.Time) (int, error) {
	return f.perDay[day.Format("2006-01-02")], nil
}

func (f *fakeCounter) CountScheduledInSlot(_ context.Context, day time.Time, slot string) (int, error) {
	return f.perSlot[day.Format("2006-01-02")+"|"+slot], nil
}

func utcConfig() schedule.Config {
	cfg := schedule.DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}

func newScheduler(cfg schedule.Config, b *fakeBlackouts, c *fakeCounter) schedule.UseCase {
	return NewScheduleUseCase(cfg, b, c, logger.NewNop())
}

func TestNextAvailableSlot_WeekdaysOnly(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      string
	}{
		{"wednesday goes to thursday", "2026-10-14", "2026-10-15"},
		{"thursday skips friday and weekend", "2026-10-15", "2026-10-19"},
		{"friday skips weekend", "2026-10-16", "2026-10-19"},
		{"sunday goes to monday", "2026-10-18", "2026-10-19"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScheduler(utcConfig(), &fakeBlackouts{}, newFakeCounter())
			got, err := s.NextAvailableSlot(context.Background(), date(tt.reference))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Date.Format("2006-01-02"))
			assert.Equal(t, "7:30 AM", got.TimeSlot)
		})
	}
}

func TestNextAvailableSlot_SkipsFullSlot(t *testing.T) {
	c := newFakeCounter()
	c.book("2026-10-19", "7:30 AM", 8)
	c.book("2026-10-19", "8:30 AM", 3)

	got, err := newScheduler(utcConfig(), &fakeBlackouts{}, c).NextAvailableSlot(context.Background(), date("2026-10-16"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", got.Date.Format("2006-01-02"))
	assert.Equal(t, "8:30 AM", got.TimeSlot)
}

func TestNextAvailableSlot_SkipsFullDay(t *testing.T) {
	c := newFakeCounter()
	c.book("2026-10-19", "7:30 AM", 8)
	c.book("2026-10-19", "8:30 AM", 8)
	c.book("2026-10-19", "9:30 AM", 7)
	c.book("2026-10-19", "10:30 AM", 7)

	got, err := newScheduler(utcConfig(), &fakeBlackouts{}, c).NextAvailableSlot(context.Background(), date("2026-10-16"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", got.Date.Format("2006-01-02"))
	assert.Equal(t, "7:30 AM", got.TimeSlot)
}

func TestNextAvailableSlot_DailyCapWinsOverFreeSlots(t *testing.T) {
	c := newFakeCounter()
	// Orders with a slot label outside the current table still count toward the day.
	c.book("2026-10-19", "1:00 PM", 30)

	got, err := newScheduler(utcConfig(), &fakeBlackouts{}, c).NextAvailableSlot(context.Background(), date("2026-10-16"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", got.Date.Format("2006-01-02"))
}

func TestNextAvailableSlot_BlackoutInsideWindow(t *testing.T) {
	b := &fakeBlackouts{announcements: []model.Announcement{{
		Title:     "No Measurement",
		StartDate: date("2026-10-19"),
		EndDate:   date("2026-10-21"),
	}}}

	got, err := newScheduler(utcConfig(), b, newFakeCounter()).NextAvailableSlot(context.Background(), date("2026-10-16"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-22", got.Date.Format("2006-01-02"))
}

func TestNextAvailableSlot_BlackoutEndingAtLocalMidnight(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	cfg := schedule.DefaultConfig()
	cfg.Location = manila
	b := &fakeBlackouts{announcements: []model.Announcement{{
		Title:     "No Measurement",
		StartDate: time.Date(2026, 10, 19, 0, 0, 0, 0, manila),
		EndDate:   time.Date(2026, 10, 21, 0, 0, 0, 0, manila),
	}}}

	got, err := newScheduler(cfg, b, newFakeCounter()).NextAvailableSlot(context.Background(), time.Date(2026, 10, 16, 10, 0, 0, 0, manila))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-22", got.Date.Format("2006-01-02"))
}

func TestNextAvailableSlot_BlackoutOnFirstCandidateJumpsToNextWorkday(t *testing.T) {
	b := &fakeBlackouts{announcements: []model.Announcement{{
		Title:     "no measurement week",
		StartDate: date("2026-10-19"),
		EndDate:   date("2026-10-22"),
	}}}

	got, err := newScheduler(utcConfig(), b, newFakeCounter()).NextAvailableSlot(context.Background(), date("2026-10-18"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-26", got.Date.Format("2006-01-02"))
}

func TestNextAvailableSlot_IgnoresOtherAnnouncements(t *testing.T) {
	b := &fakeBlackouts{announcements: []model.Announcement{{
		Title:     "Measurement schedule released",
		StartDate: date("2026-10-19"),
		EndDate:   date("2026-10-30"),
	}}}

	got, err := newScheduler(utcConfig(), b, newFakeCounter()).NextAvailableSlot(context.Background(), date("2026-10-16"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", got.Date.Format("2006-01-02"))
}

func TestNextAvailableSlot_NoSlotWithinHorizon(t *testing.T) {
	b := &fakeBlackouts{announcements: []model.Announcement{{
		Title:     "NO MEASUREMENT - inventory",
		StartDate: date("2026-10-19"),
		EndDate:   date("2026-12-31"),
	}}}

	_, err := newScheduler(utcConfig(), b, newFakeCounter()).NextAvailableSlot(context.Background(), date("2026-10-16"))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindSchedulingFailed))
}

func TestNextAvailableSlot_CustomCapacityTable(t *testing.T) {
	cfg := schedule.Config{
		Slots:         []schedule.Slot{{Label: "1:00 PM", Capacity: 1}},
		DailyCapacity: 1,
		Weekdays:      []time.Weekday{time.Friday},
		HorizonDays:   14,
		Location:      time.UTC,
	}
	c := newFakeCounter()
	c.book("2026-10-23", "1:00 PM", 1)

	got, err := newScheduler(cfg, &fakeBlackouts{}, c).NextAvailableSlot(context.Background(), date("2026-10-17"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-30", got.Date.Format("2006-01-02"))
	assert.Equal(t, "1:00 PM", got.TimeSlot)
}

func TestNextAvailableSlot_ConfigIsCopied(t *testing.T) {
	cfg := utcConfig()
	s := newScheduler(cfg, &fakeBlackouts{}, newFakeCounter())
	cfg.Slots[0].Label = "mutated"

	got, err := s.NextAvailableSlot(context.Background(), date("2026-10-16"))
	require.NoError(t, err)
	assert.Equal(t, "7:30 AM", got.TimeSlot)
}

func TestNextAvailableSlot_CapacityProperty(t *testing.T) {
	cfg := utcConfig()
	caps := map[string]int{}
	for _, s := range cfg.Slots {
		caps[s.Label] = s.Capacity
	}

	c := newFakeCounter()
	s := newScheduler(cfg, &fakeBlackouts{}, c)
	ref := date("2026-10-16")

	// Fill the calendar one allocation at a time, as approvals would.
	for i := 0; i < 200; i++ {
		got, err := s.NextAvailableSlot(context.Background(), ref)
		require.NoError(t, err)

		wd := got.Date.Weekday()
		assert.Contains(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}, wd)
		assert.True(t, got.Date.After(ref))

		day := got.Date.Format("2006-01-02")
		assert.Less(t, c.perSlot[day+"|"+got.TimeSlot], caps[got.TimeSlot])
		assert.Less(t, c.perDay[day], cfg.DailyCapacity)

		c.book(day, got.TimeSlot, 1)
	}
}
