package generator

import (
	"math"
	"testing"

	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

func TestDerivePostingsInvariants(t *testing.T) {
	rng := utils.NewRandom(42)
	cal := BuildCalendar(date(2020, 1, 1), date(2021, 12, 31))

	products := NewProductGenerator(rng, ProductGeneratorConfig{
		NumProducts: 10,
		BaseMargin:  0.45,
	}).GenerateProducts()

	customers := NewCustomerGenerator(rng, CustomerGeneratorConfig{
		NumCustomers:    200,
		StartDate:       cal.Start(),
		EndDate:         cal.End(),
		AnnualChurnRate: 0.12,
	}).GenerateCustomers()

	transactions := NewTransactionSampler(rng, cal, testPattern()).
		SampleTransactions(customers, products)

	costCenters := BuildCostCenters(6)
	postings := NewPostingDeriver(rng, cal, 0.25).
		DerivePostings(transactions, products, costCenters)

	if len(postings) == 0 {
		t.Fatal("Expected postings for a non-empty transaction stream")
	}

	accountType := make(map[int64]models.AccountType)
	for _, a := range BuildChartOfAccounts() {
		accountType[a.ID] = a.Type
	}

	var revenueSum, cogsSum, opexSum float64
	for i, p := range postings {
		if p.ID != int64(i+1) {
			t.Fatalf("Expected sequential posting ID %d at index %d, got %d", i+1, i, p.ID)
		}
		if p.Currency != "EUR" {
			t.Errorf("Posting %d: expected currency EUR, got %q", p.ID, p.Currency)
		}

		switch accountType[p.AccountID] {
		case models.AccountTypeRevenue:
			if p.Amount <= 0 {
				t.Errorf("Posting %d: revenue amount %f not positive", p.ID, p.Amount)
			}
			if p.HasCostCenter() {
				t.Errorf("Posting %d: revenue posting carries cost center %d", p.ID, p.CostCenterID)
			}
			revenueSum += p.Amount
		case models.AccountTypeCOGS:
			if p.Amount >= 0 {
				t.Errorf("Posting %d: COGS amount %f not negative", p.ID, p.Amount)
			}
			if p.HasCostCenter() {
				t.Errorf("Posting %d: COGS posting carries cost center %d", p.ID, p.CostCenterID)
			}
			cogsSum += p.Amount
		case models.AccountTypeOPEX:
			if p.Amount >= 0 {
				t.Errorf("Posting %d: OPEX amount %f not negative", p.ID, p.Amount)
			}
			if !p.HasCostCenter() {
				t.Errorf("Posting %d: OPEX posting missing cost center", p.ID)
			}
			opexSum += p.Amount
		default:
			t.Errorf("Posting %d: unknown account %d", p.ID, p.AccountID)
		}
	}

	var txRevenue, txCost float64
	for _, tx := range transactions {
		txRevenue += tx.NetRevenue
		txCost += tx.DirectCost
	}

	// Aggregation reorders float additions, so compare relatively.
	eps := 1e-9 * txRevenue
	if math.Abs(revenueSum-txRevenue) > eps {
		t.Errorf("Revenue postings sum %f, transactions sum %f", revenueSum, txRevenue)
	}
	if math.Abs(cogsSum+txCost) > eps {
		t.Errorf("COGS postings sum %f, expected %f", cogsSum, -txCost)
	}
	if math.Abs(opexSum+txRevenue*0.25) > eps {
		t.Errorf("OPEX postings sum %f, expected %f", opexSum, -txRevenue*0.25)
	}

	t.Run("OPEX posts on month ends", func(t *testing.T) {
		monthEnds := make(map[int]bool)
		for _, d := range cal.Days {
			if d.IsMonthEnd {
				monthEnds[d.DateKey] = true
			}
		}
		for _, p := range postings {
			if accountType[p.AccountID] == models.AccountTypeOPEX && !monthEnds[p.DateKey] {
				t.Errorf("Posting %d: OPEX on non-month-end date key %d", p.ID, p.DateKey)
				return
			}
		}
	})

	t.Run("Block ordering", func(t *testing.T) {
		// Revenue block, then COGS block, then OPEX block
		phase := 0
		for _, p := range postings {
			var want int
			switch accountType[p.AccountID] {
			case models.AccountTypeRevenue:
				want = 0
			case models.AccountTypeCOGS:
				want = 1
			case models.AccountTypeOPEX:
				want = 2
			}
			if want < phase {
				t.Errorf("Posting %d: %s block out of order", p.ID, accountType[p.AccountID])
				return
			}
			phase = want
		}
	})
}

func TestDerivePostingsSingleCostCenter(t *testing.T) {
	rng := utils.NewRandom(42)
	cal := BuildCalendar(date(2020, 1, 1), date(2020, 1, 31))

	products := []models.Product{{
		ID:              1,
		Name:            "Product 1",
		Category:        models.CategorySubscription,
		BasePrice:       100,
		DirectCostRatio: 0.5,
	}}
	transactions := []models.Transaction{{
		ID:         1,
		DateKey:    20200115,
		CustomerID: 1,
		ProductID:  1,
		Quantity:   1,
		NetRevenue: 1000,
		DirectCost: 500,
		Channel:    models.ChannelOnline,
	}}

	postings := NewPostingDeriver(rng, cal, 0.25).
		DerivePostings(transactions, products, BuildCostCenters(1))

	if len(postings) != 3 {
		t.Fatalf("Expected 3 postings, got %d", len(postings))
	}

	revenue, cogs, opex := postings[0], postings[1], postings[2]

	if revenue.AccountID != models.AccountRevenueSubscription || revenue.Amount != 1000 {
		t.Errorf("Unexpected revenue posting: account %d amount %f", revenue.AccountID, revenue.Amount)
	}
	if cogs.AccountID != models.AccountCOGS || cogs.Amount != -500 {
		t.Errorf("Unexpected COGS posting: account %d amount %f", cogs.AccountID, cogs.Amount)
	}

	// With a single cost center the weight noise renormalizes away and the
	// allocation is exact.
	if opex.Amount != -250 {
		t.Errorf("Expected exact OPEX amount -250, got %f", opex.Amount)
	}
	if opex.DateKey != 20200131 {
		t.Errorf("Expected OPEX on 20200131, got %d", opex.DateKey)
	}
	if opex.CostCenterID != 1 {
		t.Errorf("Expected cost center 1, got %d", opex.CostCenterID)
	}
	if opex.AccountID != models.AccountOpexSalesMarketing {
		t.Errorf("Expected Sales dept account %d, got %d", models.AccountOpexSalesMarketing, opex.AccountID)
	}
}

func TestDerivePostingsTruncatedFinalMonth(t *testing.T) {
	rng := utils.NewRandom(7)
	// Window ends mid-February: January gets OPEX, February does not
	cal := BuildCalendar(date(2020, 1, 1), date(2020, 2, 15))

	products := []models.Product{{ID: 1, Category: models.CategoryService, BasePrice: 100, DirectCostRatio: 0.5}}
	transactions := []models.Transaction{
		{ID: 1, DateKey: 20200110, CustomerID: 1, ProductID: 1, Quantity: 1, NetRevenue: 400, DirectCost: 200, Channel: models.ChannelBranch},
		{ID: 2, DateKey: 20200210, CustomerID: 1, ProductID: 1, Quantity: 1, NetRevenue: 600, DirectCost: 300, Channel: models.ChannelBranch},
	}

	postings := NewPostingDeriver(rng, cal, 0.25).
		DerivePostings(transactions, products, BuildCostCenters(1))

	opexCount := 0
	for _, p := range postings {
		if p.HasCostCenter() {
			opexCount++
			if p.DateKey != 20200131 {
				t.Errorf("Expected OPEX only on 20200131, got %d", p.DateKey)
			}
		}
	}
	if opexCount != 1 {
		t.Errorf("Expected 1 OPEX posting, got %d", opexCount)
	}
}

func TestOpexWeights(t *testing.T) {
	for _, n := range []int{1, 3, 6, 9} {
		weights := opexWeights(n)
		if len(weights) != n {
			t.Fatalf("opexWeights(%d) returned %d weights", n, len(weights))
		}
		var sum float64
		for i, w := range weights {
			if w <= 0 {
				t.Errorf("opexWeights(%d)[%d] = %f, want positive", n, i, w)
			}
			sum += w
		}
		if sum < 0.999999 || sum > 1.000001 {
			t.Errorf("opexWeights(%d) sums to %f, want 1", n, sum)
		}
	}
}

func TestDerivePostingsEmptyStream(t *testing.T) {
	rng := utils.NewRandom(1)
	cal := BuildCalendar(date(2020, 1, 1), date(2020, 12, 31))

	postings := NewPostingDeriver(rng, cal, 0.25).
		DerivePostings(nil, nil, BuildCostCenters(6))

	if postings == nil || len(postings) != 0 {
		t.Errorf("Expected empty non-nil posting slice, got %v", postings)
	}
}
