// Package config contains the run parameters of the dataset generator and
// the fixed model tables. The tables below are part of the data contract:
// changing them changes the generated distributions, so they are compile-time
// values rather than configuration.
package config

// =============================================================================
// RUN PARAMETER DEFAULTS
// =============================================================================

const (
	// DefaultSeed makes runs reproducible out of the box (0 = random seed)
	DefaultSeed int64 = 42

	// Default dataset window: five fiscal years
	DefaultStartDate = "2020-01-01"
	DefaultEndDate   = "2024-12-31"

	DefaultNumCustomers   = 3000
	DefaultNumProducts    = 20
	DefaultNumCostCenters = 6

	// DefaultAnnualChurnRate is the yearly Bernoulli churn probability
	DefaultAnnualChurnRate = 0.12

	// DefaultBaseMargin is the target gross margin products are priced around
	DefaultBaseMargin = 0.45

	// DefaultOpexRatio is the monthly OPEX / revenue target
	DefaultOpexRatio = 0.25
)

// DefaultMacroShocks returns the per-year macro multipliers
// (COVID -> recovery -> inflation -> stabilization). Unlisted years are 1.0.
func DefaultMacroShocks() map[int]float64 {
	return map[int]float64{
		2020: 0.80,
		2021: 0.90,
		2022: 1.15,
		2023: 1.05,
		2024: 1.02,
	}
}

// DefaultSeasonality returns the per-quarter revenue multipliers.
// Unlisted quarters are 1.0.
func DefaultSeasonality() map[int]float64 {
	return map[int]float64{
		1: 1.00,
		2: 0.95,
		3: 1.05,
		4: 1.20,
	}
}

// =============================================================================
// CUSTOMER LIFECYCLE TABLES
// =============================================================================

const (
	// AcquisitionYears is the width of the acquisition window measured from
	// the dataset start, regardless of the full span length
	AcquisitionYears = 3

	// Risk score distribution (FICO-like)
	RiskScoreMean   = 600.0
	RiskScoreStdDev = 100.0
	RiskScoreMin    = 300.0
	RiskScoreMax    = 850.0
)

// SegmentProbs is the categorical distribution over models.Segments
// (Retail, SME, Corporate).
var SegmentProbs = []float64{0.6, 0.3, 0.1}

// RegionProbs is the categorical distribution over models.Regions.
var RegionProbs = []float64{0.2, 0.25, 0.2, 0.15, 0.15, 0.05}

// =============================================================================
// TRANSACTION SAMPLING TABLES
// =============================================================================

const (
	// MinMonthlyLambda floors the expected monthly transaction count so
	// low-rate segments never go permanently silent
	MinMonthlyLambda = 0.05

	// QuantityPoissonMean drives per-transaction quantity, floored at 1
	QuantityPoissonMean = 1.1

	// PriceNoiseSigma is the lognormal sigma on unit prices
	PriceNoiseSigma = 0.15
)

// SpendTiers and SpendTierProbs give the once-per-customer activity
// multiplier and its distribution.
var (
	SpendTiers     = []float64{0.5, 1.0, 2.0, 4.0}
	SpendTierProbs = []float64{0.25, 0.45, 0.25, 0.05}
)

// Per-segment rate and price tables, indexed like models.Segments.
var (
	// SegmentMonthlyRate is the baseline expected transactions per month
	SegmentMonthlyRate = []float64{0.4, 0.8, 1.2}

	// SegmentRevenueMultiplier scales unit prices
	SegmentRevenueMultiplier = []float64{1.0, 1.2, 1.5}

	// SegmentCostMultiplier scales direct cost ratios
	SegmentCostMultiplier = []float64{1.00, 0.95, 0.88}
)

// ChannelProbs is the categorical distribution over models.TransactionChannels.
var ChannelProbs = []float64{0.6, 0.25, 0.15}

// =============================================================================
// PRODUCT PRICING TABLES
// =============================================================================

// CategoryPricing fixes, per product category, the uniform base price range
// and the direct-cost-ratio draw: ratio = clamp(1 - base_margin +
// Normal(Offset, Sigma), RatioMin, RatioMax).
type CategoryPricing struct {
	PriceMin float64
	PriceMax float64
	Offset   float64
	Sigma    float64
	RatioMin float64
	RatioMax float64
}

// CategoryPricingTable is indexed like models.ProductCategories
// (Subscription, Service, Loan, Advisory).
var CategoryPricingTable = []CategoryPricing{
	{PriceMin: 50, PriceMax: 200, Offset: 0.00, Sigma: 0.04, RatioMin: 0.25, RatioMax: 0.70},
	{PriceMin: 100, PriceMax: 400, Offset: 0.05, Sigma: 0.05, RatioMin: 0.30, RatioMax: 0.75},
	{PriceMin: 300, PriceMax: 800, Offset: -0.05, Sigma: 0.05, RatioMin: 0.20, RatioMax: 0.65},
	{PriceMin: 150, PriceMax: 600, Offset: 0.02, Sigma: 0.05, RatioMin: 0.25, RatioMax: 0.72},
}

// CategoryProbs is the categorical distribution over models.ProductCategories.
var CategoryProbs = []float64{0.40, 0.30, 0.20, 0.10}

// =============================================================================
// COST CENTER & OPEX ALLOCATION TABLES
// =============================================================================

// BaseDepartments is the ordered department prefix for cost centers;
// counts beyond this list get generic DeptK names.
var BaseDepartments = []string{"Sales", "Marketing", "Operations", "IT", "HR", "HQ"}

// CostCenterCountry is the country every cost center is assigned to
const CostCenterCountry = "DE"

// OpexBaseWeights is the allocation weight vector for the default six cost
// centers; truncated and renormalized for smaller counts.
var OpexBaseWeights = []float64{0.2, 0.15, 0.25, 0.15, 0.1, 0.15}

const (
	// OpexWeightNoiseStdDev perturbs the allocation weights each month
	// (Normal with mean 1.0) before renormalization
	OpexWeightNoiseStdDev = 0.05

	// PostingCurrency is the currency code on every financial posting
	PostingCurrency = "EUR"
)
