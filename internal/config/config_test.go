package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

func TestWindow(t *testing.T) {
	cfg := DefaultConfig()
	start, end, err := cfg.Generate.Window()
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if !start.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected end: %v", end)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.StartDate = "not-a-date"
	cfg.Generate.NumCustomers = 0
	cfg.Generate.AnnualChurnRate = 1.5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{"start_date", "num_customers", "annual_churn_rate"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected error message to mention %s, got: %s", want, msg)
		}
	}
}

func TestValidateWindowOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.StartDate = "2024-01-01"
	cfg.Generate.EndDate = "2020-01-01"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "end_date") {
		t.Errorf("Expected end_date ordering error, got: %v", err)
	}
}

func TestValidateSeasonalityKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.Seasonality = map[int]float64{5: 1.1}

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "seasonality") {
		t.Errorf("Expected seasonality key error, got: %v", err)
	}
}

func TestValidateNegativeMultipliers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.MacroShocks = map[int]float64{2020: -0.5}

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "macro_shocks") {
		t.Errorf("Expected macro_shocks error, got: %v", err)
	}
}

func TestDistributionTablesSumToOne(t *testing.T) {
	sums := map[string][]float64{
		"SegmentProbs":   SegmentProbs,
		"RegionProbs":    RegionProbs,
		"SpendTierProbs": SpendTierProbs,
		"ChannelProbs":   ChannelProbs,
		"CategoryProbs":  CategoryProbs,
		"OpexBaseWeights": OpexBaseWeights,
	}

	for name, probs := range sums {
		var sum float64
		for _, p := range probs {
			sum += p
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("%s sums to %f, expected 1.0", name, sum)
		}
	}
}
