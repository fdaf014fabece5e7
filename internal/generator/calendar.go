package generator

import (
	"time"

	"github.com/finsynth/finsynth/internal/models"
)

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month int
}

// Calendar is the daily date spine plus the month-level lookups the
// downstream stages need: date keys per month for transaction dating and
// the month-end posting date per month for OPEX allocation.
type Calendar struct {
	Days []models.CalendarDay

	start time.Time
	end   time.Time

	dateKeysByMonth map[MonthKey][]int
	monthEndByMonth map[MonthKey]int
}

// BuildCalendar produces one row per day in [start, end], contiguous, no
// gaps. Deterministic; consumes no randomness.
func BuildCalendar(start, end time.Time) *Calendar {
	start = truncateToDay(start)
	end = truncateToDay(end)

	cal := &Calendar{
		start:           start,
		end:             end,
		dateKeysByMonth: make(map[MonthKey][]int),
		monthEndByMonth: make(map[MonthKey]int),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := models.CalendarDay{
			DateKey:    models.DateKeyOf(d),
			Date:       d,
			Day:        d.Day(),
			Month:      int(d.Month()),
			Quarter:    (int(d.Month())-1)/3 + 1,
			Year:       d.Year(),
			Weekday:    mondayWeekday(d),
			IsMonthEnd: isLastDayOfMonth(d),
		}
		cal.Days = append(cal.Days, day)

		mk := MonthKey{Year: day.Year, Month: day.Month}
		cal.dateKeysByMonth[mk] = append(cal.dateKeysByMonth[mk], day.DateKey)
		if day.IsMonthEnd {
			cal.monthEndByMonth[mk] = day.DateKey
		}
	}

	return cal
}

// Start returns the first day of the spine
func (c *Calendar) Start() time.Time { return c.start }

// End returns the last day of the spine
func (c *Calendar) End() time.Time { return c.end }

// DateKeysInMonth returns the date keys of all spine days in the given
// month, in ascending order, or nil if the month is outside the window.
func (c *Calendar) DateKeysInMonth(mk MonthKey) []int {
	return c.dateKeysByMonth[mk]
}

// MonthEndDateKey returns the date key flagged is_month_end for the given
// month. ok is false when the spine has no month-end row for that month
// (a truncated final month).
func (c *Calendar) MonthEndDateKey(mk MonthKey) (dateKey int, ok bool) {
	dateKey, ok = c.monthEndByMonth[mk]
	return dateKey, ok
}

// ContainsMonth reports whether the spine has at least one day in the month
func (c *Calendar) ContainsMonth(mk MonthKey) bool {
	_, ok := c.dateKeysByMonth[mk]
	return ok
}

// mondayWeekday maps Go's Sunday-based weekday to the 0=Monday convention
// used by the dim_time contract.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// isLastDayOfMonth reports whether the next calendar day is in another month
func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WriteCalendarCSV writes the date spine to dim_time.csv
// (or .csv.xz if compress=true).
func WriteCalendarCSV(cal *Calendar, outputDir string, compress bool) error {
	headers := []string{
		"date_key", "date", "day", "month", "quarter", "year", "weekday", "is_month_end",
	}

	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  "dim_time",
		Headers:   headers,
		Compress:  compress,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, d := range cal.Days {
		row := []string{
			FormatInt(d.DateKey),
			FormatDate(d.Date),
			FormatInt(d.Day),
			FormatInt(d.Month),
			FormatInt(d.Quarter),
			FormatInt(d.Year),
			FormatInt(d.Weekday),
			FormatBool(d.IsMonthEnd),
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}

	return writer.Close()
}
