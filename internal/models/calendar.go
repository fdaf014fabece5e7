package models

import (
	"time"
)

// CalendarDay is one row of the daily date spine (dim_time).
// DateKey is the YYYYMMDD integer surrogate key every fact table joins on.
type CalendarDay struct {
	DateKey    int       `db:"date_key" json:"date_key"`
	Date       time.Time `db:"date" json:"date"`
	Day        int       `db:"day" json:"day"`
	Month      int       `db:"month" json:"month"`
	Quarter    int       `db:"quarter" json:"quarter"`
	Year       int       `db:"year" json:"year"`
	Weekday    int       `db:"weekday" json:"weekday"` // 0=Monday .. 6=Sunday
	IsMonthEnd bool      `db:"is_month_end" json:"is_month_end"`
}

// DateKeyOf converts a calendar date to its YYYYMMDD integer key.
func DateKeyOf(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
