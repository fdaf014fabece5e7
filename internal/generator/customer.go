package generator

import (
	"time"

	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

// CustomerGenerator simulates the customer lifecycle: acquisition inside the
// fixed opening window, year-by-year churn trials, and the static segment,
// region and risk attributes.
type CustomerGenerator struct {
	rng    *utils.Random
	config CustomerGeneratorConfig
}

// CustomerGeneratorConfig holds settings for customer lifecycle simulation
type CustomerGeneratorConfig struct {
	NumCustomers int
	// Calendar bounds of the dataset window
	StartDate time.Time
	EndDate   time.Time
	// AnnualChurnRate is the per-year Bernoulli churn probability
	AnnualChurnRate float64
}

// NewCustomerGenerator creates a new customer lifecycle generator
func NewCustomerGenerator(rng *utils.Random, cfg CustomerGeneratorConfig) *CustomerGenerator {
	return &CustomerGenerator{
		rng:    rng,
		config: cfg,
	}
}

// GenerateCustomers simulates all customers with ids 1..N. Per customer it
// consumes, in order: one acquisition draw, the churn trial draws, one
// segment draw, one region draw, one risk score draw.
func (g *CustomerGenerator) GenerateCustomers() []models.Customer {
	customers := make([]models.Customer, 0, g.config.NumCustomers)

	for i := 0; i < g.config.NumCustomers; i++ {
		customers = append(customers, g.generateCustomer(int64(i+1)))
	}

	return customers
}

// generateCustomer simulates a single customer lifecycle
func (g *CustomerGenerator) generateCustomer(id int64) models.Customer {
	acquisition := g.drawAcquisitionDate()
	churn := g.simulateChurn(acquisition)

	segment := models.Segments[g.rng.WeightedChoice(config.SegmentProbs)]
	region := models.Regions[g.rng.WeightedChoice(config.RegionProbs)]
	riskScore := g.rng.ClampedNormal(
		config.RiskScoreMean, config.RiskScoreStdDev,
		config.RiskScoreMin, config.RiskScoreMax,
	)

	return models.Customer{
		ID:              id,
		Segment:         segment,
		Region:          region,
		RiskScore:       riskScore,
		AcquisitionDate: acquisition,
		ChurnDate:       churn,
		// Derived, never sampled
		IsActive: churn == nil,
	}
}

// drawAcquisitionDate picks a date uniformly within the first three years of
// the dataset span. The window stays fixed at three years regardless of the
// total span length.
func (g *CustomerGenerator) drawAcquisitionDate() time.Time {
	windowEnd := g.config.StartDate.AddDate(config.AcquisitionYears, 0, 0)
	d := g.rng.Date(g.config.StartDate, windowEnd)
	return truncateToDay(d)
}

// simulateChurn runs a bounded Bernoulli trial per candidate year from the
// acquisition year through the dataset end year. On the first success the
// churn date is a uniform month of that year, day fixed to the 1st. A
// candidate that is not strictly after the acquisition date is discarded
// without retry and the customer never churns. A candidate past the dataset
// end is cleared: the customer stays active in-window.
func (g *CustomerGenerator) simulateChurn(acquisition time.Time) *time.Time {
	for year := acquisition.Year(); year <= g.config.EndDate.Year(); year++ {
		if !g.rng.Probability(g.config.AnnualChurnRate) {
			continue
		}

		month := g.rng.IntRange(1, 12)
		candidate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

		if !candidate.After(acquisition) {
			return nil
		}
		if candidate.After(g.config.EndDate) {
			return nil
		}
		return &candidate
	}

	return nil
}

// WriteCustomersCSV writes customers to dim_customer.csv
// (or .csv.xz if compress=true)
func WriteCustomersCSV(customers []models.Customer, outputDir string, compress bool) error {
	headers := []string{
		"customer_id", "segment", "region", "risk_score",
		"acquisition_date", "churn_date", "is_active",
	}

	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  "dim_customer",
		Headers:   headers,
		Compress:  compress,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, c := range customers {
		row := []string{
			FormatInt64(c.ID),
			string(c.Segment),
			string(c.Region),
			FormatFloat64(c.RiskScore),
			FormatDate(c.AcquisitionDate),
			FormatDatePtr(c.ChurnDate),
			FormatBool(c.IsActive),
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}

	return writer.Close()
}
