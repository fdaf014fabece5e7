package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finsynth/finsynth/internal/config"
)

func testGenerateConfig(outputDir string) config.GenerateConfig {
	return config.GenerateConfig{
		Seed:            42,
		OutputDir:       outputDir,
		StartDate:       "2020-01-01",
		EndDate:         "2020-12-31",
		NumCustomers:    100,
		NumProducts:     10,
		NumCostCenters:  6,
		AnnualChurnRate: 0.12,
		BaseMargin:      0.45,
		OpexRatio:       0.25,
		MacroShocks:     map[int]float64{2020: 0.80},
		Seasonality:     map[int]float64{1: 1.00, 2: 0.95, 3: 1.05, 4: 1.20},
	}
}

func TestOrchestratorDeterminism(t *testing.T) {
	cfg := testGenerateConfig(t.TempDir())

	a, err := NewOrchestrator(cfg, OrchestratorOptions{}).GenerateDataset()
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	b, err := NewOrchestrator(cfg, OrchestratorOptions{}).GenerateDataset()
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(a.Transactions) != len(b.Transactions) {
		t.Fatalf("Transaction counts differ: %d vs %d", len(a.Transactions), len(b.Transactions))
	}
	for i := range a.Transactions {
		if a.Transactions[i] != b.Transactions[i] {
			t.Fatalf("Transaction %d differs between identical-seed runs", a.Transactions[i].ID)
		}
	}

	if len(a.Postings) != len(b.Postings) {
		t.Fatalf("Posting counts differ: %d vs %d", len(a.Postings), len(b.Postings))
	}
	for i := range a.Postings {
		if a.Postings[i] != b.Postings[i] {
			t.Fatalf("Posting %d differs between identical-seed runs", a.Postings[i].ID)
		}
	}
}

func TestOrchestratorSeedSensitivity(t *testing.T) {
	cfgA := testGenerateConfig(t.TempDir())
	cfgB := testGenerateConfig(t.TempDir())
	cfgB.Seed = 43

	a, err := NewOrchestrator(cfgA, OrchestratorOptions{}).GenerateDataset()
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	b, err := NewOrchestrator(cfgB, OrchestratorOptions{}).GenerateDataset()
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(a.Transactions) == len(b.Transactions) {
		same := true
		for i := range a.Transactions {
			if a.Transactions[i] != b.Transactions[i] {
				same = false
				break
			}
		}
		if same {
			t.Error("Different seeds produced identical transaction streams")
		}
	}
}

func TestOrchestratorGenerateAll(t *testing.T) {
	outDir := t.TempDir()
	cfg := testGenerateConfig(outDir)

	result, err := NewOrchestrator(cfg, OrchestratorOptions{}).GenerateAll()
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}

	if result.Seed != 42 {
		t.Errorf("Expected effective seed 42, got %d", result.Seed)
	}
	if result.DayCount != 366 {
		t.Errorf("Expected 366 days for leap year 2020, got %d", result.DayCount)
	}
	if result.CustomerCount != 100 {
		t.Errorf("Expected 100 customers, got %d", result.CustomerCount)
	}
	if result.ProductCount != 10 {
		t.Errorf("Expected 10 products, got %d", result.ProductCount)
	}
	if result.AccountCount != 8 {
		t.Errorf("Expected 8 accounts, got %d", result.AccountCount)
	}
	if result.CostCenterCount != 6 {
		t.Errorf("Expected 6 cost centers, got %d", result.CostCenterCount)
	}
	if result.TransactionCount == 0 {
		t.Error("Expected transactions to be generated")
	}
	if result.PostingCount == 0 {
		t.Error("Expected postings to be derived")
	}

	files := []string{
		"dim_time.csv", "dim_customer.csv", "dim_product.csv",
		"dim_account.csv", "dim_cost_center.csv",
		"fact_transactions.csv", "fact_financials.csv",
	}
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(outDir, f)); err != nil {
			t.Errorf("Expected output file %s: %v", f, err)
		}
	}
}
