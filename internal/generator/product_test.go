package generator

import (
	"testing"

	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

func TestGenerateProducts(t *testing.T) {
	rng := utils.NewRandom(42)
	gen := NewProductGenerator(rng, ProductGeneratorConfig{
		NumProducts: 200,
		BaseMargin:  0.45,
	})

	products := gen.GenerateProducts()

	if len(products) != 200 {
		t.Fatalf("Expected 200 products, got %d", len(products))
	}

	catIndex := make(map[models.ProductCategory]int)
	for i, c := range models.ProductCategories {
		catIndex[c] = i
	}

	for _, p := range products {
		idx, ok := catIndex[p.Category]
		if !ok {
			t.Errorf("Product %d: unknown category %q", p.ID, p.Category)
			continue
		}
		pricing := config.CategoryPricingTable[idx]

		if p.BasePrice < pricing.PriceMin || p.BasePrice > pricing.PriceMax {
			t.Errorf("Product %d (%s): base price %f outside [%f, %f]",
				p.ID, p.Category, p.BasePrice, pricing.PriceMin, pricing.PriceMax)
		}
		if p.DirectCostRatio < pricing.RatioMin || p.DirectCostRatio > pricing.RatioMax {
			t.Errorf("Product %d (%s): cost ratio %f outside [%f, %f]",
				p.ID, p.Category, p.DirectCostRatio, pricing.RatioMin, pricing.RatioMax)
		}
	}

	t.Run("Sequential IDs", func(t *testing.T) {
		for i, p := range products {
			if p.ID != int64(i+1) {
				t.Errorf("Expected ID %d at index %d, got %d", i+1, i, p.ID)
				return
			}
		}
	})
}

func TestBuildChartOfAccounts(t *testing.T) {
	accounts := BuildChartOfAccounts()

	if len(accounts) != 8 {
		t.Fatalf("Expected 8 accounts, got %d", len(accounts))
	}

	byID := make(map[int64]models.Account)
	for _, a := range accounts {
		byID[a.ID] = a
	}

	checks := []struct {
		id   int64
		typ  models.AccountType
	}{
		{models.AccountRevenueSubscription, models.AccountTypeRevenue},
		{models.AccountRevenueService, models.AccountTypeRevenue},
		{models.AccountRevenueOther, models.AccountTypeRevenue},
		{models.AccountCOGS, models.AccountTypeCOGS},
		{models.AccountOpexSalesMarketing, models.AccountTypeOPEX},
		{models.AccountOpexOperations, models.AccountTypeOPEX},
		{models.AccountOpexIT, models.AccountTypeOPEX},
		{models.AccountOpexHQAdmin, models.AccountTypeOPEX},
	}
	for _, c := range checks {
		a, ok := byID[c.id]
		if !ok {
			t.Errorf("Missing account %d", c.id)
			continue
		}
		if a.Type != c.typ {
			t.Errorf("Account %d: expected type %s, got %s", c.id, c.typ, a.Type)
		}
	}
}

func TestBuildCostCenters(t *testing.T) {
	t.Run("Default count", func(t *testing.T) {
		centers := BuildCostCenters(6)
		if len(centers) != 6 {
			t.Fatalf("Expected 6 cost centers, got %d", len(centers))
		}
		if centers[0].Department != "Sales" {
			t.Errorf("Expected first department Sales, got %s", centers[0].Department)
		}
		if centers[5].Department != "HQ" {
			t.Errorf("Expected last department HQ, got %s", centers[5].Department)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		centers := BuildCostCenters(3)
		if len(centers) != 3 {
			t.Fatalf("Expected 3 cost centers, got %d", len(centers))
		}
		if centers[2].Department != "Operations" {
			t.Errorf("Expected Operations, got %s", centers[2].Department)
		}
	})

	t.Run("Padded", func(t *testing.T) {
		centers := BuildCostCenters(8)
		if len(centers) != 8 {
			t.Fatalf("Expected 8 cost centers, got %d", len(centers))
		}
		if centers[6].Department != "Dept7" {
			t.Errorf("Expected Dept7, got %s", centers[6].Department)
		}
		if centers[7].Department != "Dept8" {
			t.Errorf("Expected Dept8, got %s", centers[7].Department)
		}
	})
}
