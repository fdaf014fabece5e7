package generator

import (
	"testing"

	"github.com/finsynth/finsynth/internal/generator/patterns"
	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

func testPattern() *patterns.SeasonalPattern {
	return patterns.NewSeasonalPattern(
		map[int]float64{1: 1.00, 2: 0.95, 3: 1.05, 4: 1.20},
		map[int]float64{2020: 0.80, 2021: 0.90},
	)
}

// sampleFixture runs products, customers and transactions off one stream,
// the same stage order the orchestrator uses.
func sampleFixture(t *testing.T, seed int64, numCustomers int) (*Calendar, []models.Customer, []models.Transaction) {
	t.Helper()

	rng := utils.NewRandom(seed)
	cal := BuildCalendar(date(2020, 1, 1), date(2021, 12, 31))

	products := NewProductGenerator(rng, ProductGeneratorConfig{
		NumProducts: 10,
		BaseMargin:  0.45,
	}).GenerateProducts()

	customers := NewCustomerGenerator(rng, CustomerGeneratorConfig{
		NumCustomers:    numCustomers,
		StartDate:       cal.Start(),
		EndDate:         cal.End(),
		AnnualChurnRate: 0.12,
	}).GenerateCustomers()

	sampler := NewTransactionSampler(rng, cal, testPattern())
	return cal, customers, sampler.SampleTransactions(customers, products)
}

func TestSampleTransactionsInvariants(t *testing.T) {
	cal, customers, transactions := sampleFixture(t, 42, 200)

	if len(transactions) == 0 {
		t.Fatal("Expected a non-empty transaction stream for 200 customers over two years")
	}

	byID := make(map[int64]*models.Customer)
	for i := range customers {
		byID[customers[i].ID] = &customers[i]
	}

	validKeys := make(map[int]bool)
	for _, d := range cal.Days {
		validKeys[d.DateKey] = true
	}

	validChannels := map[models.TransactionChannel]bool{}
	for _, c := range models.TransactionChannels {
		validChannels[c] = true
	}

	for i, tx := range transactions {
		if tx.ID != int64(i+1) {
			t.Fatalf("Expected sequential ID %d at index %d, got %d", i+1, i, tx.ID)
		}
		if !validKeys[tx.DateKey] {
			t.Errorf("Transaction %d: date key %d not on the calendar spine", tx.ID, tx.DateKey)
		}
		if tx.Quantity < 1 {
			t.Errorf("Transaction %d: quantity %d below 1", tx.ID, tx.Quantity)
		}
		if tx.NetRevenue <= 0 {
			t.Errorf("Transaction %d: non-positive net revenue %f", tx.ID, tx.NetRevenue)
		}
		if tx.DirectCost <= 0 || tx.DirectCost >= tx.NetRevenue {
			t.Errorf("Transaction %d: direct cost %f outside (0, revenue)", tx.ID, tx.DirectCost)
		}
		if !validChannels[tx.Channel] {
			t.Errorf("Transaction %d: unknown channel %q", tx.ID, tx.Channel)
		}

		cust, ok := byID[tx.CustomerID]
		if !ok {
			t.Errorf("Transaction %d: unknown customer %d", tx.ID, tx.CustomerID)
			continue
		}

		txMonth := monthOfDateKey(tx.DateKey)
		acqMonth := MonthKey{Year: cust.AcquisitionDate.Year(), Month: int(cust.AcquisitionDate.Month())}
		if monthAfter(acqMonth, txMonth) {
			t.Errorf("Transaction %d: month %v before customer %d acquisition month %v",
				tx.ID, txMonth, cust.ID, acqMonth)
		}
		if cust.ChurnDate != nil {
			churnMonth := MonthKey{Year: cust.ChurnDate.Year(), Month: int(cust.ChurnDate.Month())}
			if monthAfter(txMonth, churnMonth) {
				t.Errorf("Transaction %d: month %v after customer %d churn month %v",
					tx.ID, txMonth, cust.ID, churnMonth)
			}
		}
	}
}

func TestSampleTransactionsEmptyInputs(t *testing.T) {
	rng := utils.NewRandom(1)
	cal := BuildCalendar(date(2020, 1, 1), date(2020, 12, 31))
	sampler := NewTransactionSampler(rng, cal, testPattern())

	products := NewProductGenerator(utils.NewRandom(1), ProductGeneratorConfig{
		NumProducts: 5,
		BaseMargin:  0.45,
	}).GenerateProducts()

	t.Run("No customers", func(t *testing.T) {
		txs := sampler.SampleTransactions(nil, products)
		if txs == nil || len(txs) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", txs)
		}
	})

	t.Run("No products", func(t *testing.T) {
		customers := []models.Customer{{
			ID:              1,
			Segment:         models.SegmentRetail,
			AcquisitionDate: date(2020, 1, 15),
			IsActive:        true,
		}}
		txs := sampler.SampleTransactions(customers, nil)
		if txs == nil || len(txs) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", txs)
		}
	})
}

func TestSampleTransactionsDeterminism(t *testing.T) {
	_, _, a := sampleFixture(t, 99, 50)
	_, _, b := sampleFixture(t, 99, 50)

	if len(a) != len(b) {
		t.Fatalf("Run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Transaction %d differs between identical-seed runs", a[i].ID)
		}
	}
}
