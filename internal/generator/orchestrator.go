package generator

import (
	"fmt"
	"time"

	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/generator/patterns"
	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

// Orchestrator runs the full pipeline over a single RNG stream in a fixed
// stage order, so the same seed and parameters always produce the same
// dataset:
//
//	1. calendar spine     (no randomness)
//	2. products
//	3. chart of accounts  (no randomness)
//	4. cost centers       (no randomness)
//	5. customers
//	6. transactions
//	7. financial postings
type Orchestrator struct {
	rng     *utils.Random
	config  config.GenerateConfig
	verbose bool
}

// Dataset holds all generated tables of one run.
type Dataset struct {
	Calendar     *Calendar
	Products     []models.Product
	Accounts     []models.Account
	CostCenters  []models.CostCenter
	Customers    []models.Customer
	Transactions []models.Transaction
	Postings     []models.FinancialPosting
}

// GenerationResult holds statistics from the generation run
type GenerationResult struct {
	Seed             uint64
	DayCount         int
	ProductCount     int
	AccountCount     int
	CostCenterCount  int
	CustomerCount    int
	ChurnedCount     int
	TransactionCount int
	PostingCount     int
	Duration         time.Duration
}

// OrchestratorOptions holds optional settings for the orchestrator
type OrchestratorOptions struct {
	Verbose bool
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(cfg config.GenerateConfig, opts OrchestratorOptions) *Orchestrator {
	return &Orchestrator{
		rng:     utils.NewRandom(cfg.Seed),
		config:  cfg,
		verbose: opts.Verbose,
	}
}

// Seed returns the effective RNG seed of this run
func (o *Orchestrator) Seed() uint64 {
	return o.rng.Seed()
}

// GenerateDataset runs all pipeline stages in order and returns the tables
// in memory. Nothing is written to disk.
func (o *Orchestrator) GenerateDataset() (*Dataset, error) {
	start, end, err := o.config.Window()
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}

	o.log("Building calendar spine %s..%s...", o.config.StartDate, o.config.EndDate)
	ds.Calendar = BuildCalendar(start, end)

	o.log("Generating %d products...", o.config.NumProducts)
	productGen := NewProductGenerator(o.rng, ProductGeneratorConfig{
		NumProducts: o.config.NumProducts,
		BaseMargin:  o.config.BaseMargin,
	})
	ds.Products = productGen.GenerateProducts()

	ds.Accounts = BuildChartOfAccounts()
	ds.CostCenters = BuildCostCenters(o.config.NumCostCenters)

	o.log("Simulating %d customer lifecycles...", o.config.NumCustomers)
	customerGen := NewCustomerGenerator(o.rng, CustomerGeneratorConfig{
		NumCustomers:    o.config.NumCustomers,
		StartDate:       start,
		EndDate:         end,
		AnnualChurnRate: o.config.AnnualChurnRate,
	})
	ds.Customers = customerGen.GenerateCustomers()

	o.log("Sampling transactions...")
	pattern := patterns.NewSeasonalPattern(o.config.Seasonality, o.config.MacroShocks)
	sampler := NewTransactionSampler(o.rng, ds.Calendar, pattern)
	ds.Transactions = sampler.SampleTransactions(ds.Customers, ds.Products)
	o.log("  Sampled %d transactions", len(ds.Transactions))

	o.log("Deriving financial postings...")
	deriver := NewPostingDeriver(o.rng, ds.Calendar, o.config.OpexRatio)
	ds.Postings = deriver.DerivePostings(ds.Transactions, ds.Products, ds.CostCenters)
	o.log("  Derived %d postings", len(ds.Postings))

	return ds, nil
}

// GenerateAll runs the pipeline and writes every table as CSV into the
// configured output directory.
func (o *Orchestrator) GenerateAll() (*GenerationResult, error) {
	startTime := time.Now()

	ds, err := o.GenerateDataset()
	if err != nil {
		return nil, err
	}

	outDir := o.config.OutputDir
	compress := o.config.Compress

	o.log("Writing CSV files to %s...", outDir)
	writes := []struct {
		name  string
		write func() error
	}{
		{"dim_time", func() error { return WriteCalendarCSV(ds.Calendar, outDir, compress) }},
		{"dim_customer", func() error { return WriteCustomersCSV(ds.Customers, outDir, compress) }},
		{"dim_product", func() error { return WriteProductsCSV(ds.Products, outDir, compress) }},
		{"dim_account", func() error { return WriteAccountsCSV(ds.Accounts, outDir, compress) }},
		{"dim_cost_center", func() error { return WriteCostCentersCSV(ds.CostCenters, outDir, compress) }},
		{"fact_transactions", func() error { return WriteTransactionsCSV(ds.Transactions, outDir, compress) }},
		{"fact_financials", func() error { return WritePostingsCSV(ds.Postings, outDir, compress) }},
	}
	for _, w := range writes {
		if err := w.write(); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", w.name, err)
		}
	}

	churned := 0
	for i := range ds.Customers {
		if ds.Customers[i].Churned() {
			churned++
		}
	}

	return &GenerationResult{
		Seed:             o.rng.Seed(),
		DayCount:         len(ds.Calendar.Days),
		ProductCount:     len(ds.Products),
		AccountCount:     len(ds.Accounts),
		CostCenterCount:  len(ds.CostCenters),
		CustomerCount:    len(ds.Customers),
		ChurnedCount:     churned,
		TransactionCount: len(ds.Transactions),
		PostingCount:     len(ds.Postings),
		Duration:         time.Since(startTime),
	}, nil
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		fmt.Printf(format+"\n", args...)
	}
}
