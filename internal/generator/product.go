package generator

import (
	"fmt"

	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

// ProductGenerator creates the product dimension with category-specific
// pricing and direct cost ratios centered on the target base margin.
type ProductGenerator struct {
	rng    *utils.Random
	config ProductGeneratorConfig
}

// ProductGeneratorConfig holds settings for product generation
type ProductGeneratorConfig struct {
	NumProducts int
	// BaseMargin is the target gross margin; direct cost ratios are drawn
	// around 1 - BaseMargin with category-specific offset and noise
	BaseMargin float64
}

// NewProductGenerator creates a new product generator
func NewProductGenerator(rng *utils.Random, cfg ProductGeneratorConfig) *ProductGenerator {
	return &ProductGenerator{
		rng:    rng,
		config: cfg,
	}
}

// GenerateProducts creates all products with ids 1..N, no gaps.
// Per product it consumes, in order: one category draw, one price draw,
// one cost-ratio draw.
func (g *ProductGenerator) GenerateProducts() []models.Product {
	products := make([]models.Product, 0, g.config.NumProducts)

	for i := 0; i < g.config.NumProducts; i++ {
		id := int64(i + 1)

		catIdx := g.rng.WeightedChoice(config.CategoryProbs)
		category := models.ProductCategories[catIdx]
		pricing := config.CategoryPricingTable[catIdx]

		basePrice := g.rng.Float64Range(pricing.PriceMin, pricing.PriceMax)
		ratio := g.rng.ClampedNormal(
			1-g.config.BaseMargin+pricing.Offset,
			pricing.Sigma,
			pricing.RatioMin,
			pricing.RatioMax,
		)

		products = append(products, models.Product{
			ID:              id,
			Name:            fmt.Sprintf("Product %d", id),
			Category:        category,
			BasePrice:       basePrice,
			DirectCostRatio: ratio,
		})
	}

	return products
}

// WriteProductsCSV writes products to dim_product.csv (or .csv.xz if compress=true)
func WriteProductsCSV(products []models.Product, outputDir string, compress bool) error {
	headers := []string{
		"product_id", "product_name", "category", "base_price", "direct_cost_ratio",
	}

	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  "dim_product",
		Headers:   headers,
		Compress:  compress,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, p := range products {
		row := []string{
			FormatInt64(p.ID),
			p.Name,
			string(p.Category),
			FormatFloat64(p.BasePrice),
			FormatFloat64(p.DirectCostRatio),
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}

	return writer.Close()
}
