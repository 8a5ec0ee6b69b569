package model

import (
	"regexp"
	"time"
)

var noMeasurementPattern = regexp.MustCompile(`(?i)no\s*measurement`)

type Announcement struct {
	BaseModel
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
}

// IsMeasurementBlackout reports whether the announcement suspends measurements.
func (a *Announcement) IsMeasurementBlackout() bool {
	return noMeasurementPattern.MatchString(a.Title)
}

// Covers reports whether day falls within [StartDate, EndDate], compared by
// calendar date in day's location.
func (a *Announcement) Covers(day time.Time) bool {
	loc := day.Location()
	d := truncateDay(day)
	return !d.Before(truncateDay(a.StartDate.In(loc))) && !d.After(truncateDay(a.EndDate.In(loc)))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayWindow returns [start, end) spanning day's calendar date in day's location.
func DayWindow(day time.Time) (time.Time, time.Time) {
	start := truncateDay(day)
	return start, start.AddDate(0, 0, 1)
}

// FindBlackout returns the first measurement blackout in announcements covering day.
func FindBlackout(announcements []Announcement, day time.Time) *Announcement {
	for i := range announcements {
		if announcements[i].IsMeasurementBlackout() && announcements[i].Covers(day) {
			return &announcements[i]
		}
	}
	return nil
}
