// Package patterns provides the time-based multipliers that shape
// transaction volume and pricing: quarterly revenue seasonality and
// per-year macro shocks.
package patterns

// SeasonalPattern combines the quarterly seasonality table with the
// per-year macro shock table. Both look up with a default of 1.0 so a
// sparse table never distorts unlisted periods.
type SeasonalPattern struct {
	quarterly map[int]float64
	macro     map[int]float64
}

// NewSeasonalPattern creates a pattern from the given tables. Nil maps are
// treated as empty (every multiplier 1.0).
func NewSeasonalPattern(quarterly, macro map[int]float64) *SeasonalPattern {
	return &SeasonalPattern{
		quarterly: quarterly,
		macro:     macro,
	}
}

// QuarterMultiplier returns the revenue seasonality multiplier for a
// quarter (1-4). Unlisted quarters return 1.0.
func (sp *SeasonalPattern) QuarterMultiplier(quarter int) float64 {
	if m, ok := sp.quarterly[quarter]; ok {
		return m
	}
	return 1.0
}

// MacroMultiplier returns the macro shock multiplier for a year.
// Unlisted years return 1.0.
func (sp *SeasonalPattern) MacroMultiplier(year int) float64 {
	if m, ok := sp.macro[year]; ok {
		return m
	}
	return 1.0
}

// Multiplier returns the combined seasonal and macro multiplier for a
// given (year, quarter).
func (sp *SeasonalPattern) Multiplier(year, quarter int) float64 {
	return sp.QuarterMultiplier(quarter) * sp.MacroMultiplier(year)
}
