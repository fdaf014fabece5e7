package generator

import (
	"fmt"

	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/models"
)

// BuildCostCenters returns count cost centers: the fixed ordered department
// prefix, truncated for small counts, padded with generic DeptK names beyond
// it. Country and manager are derived deterministically; no randomness.
func BuildCostCenters(count int) []models.CostCenter {
	departments := make([]string, 0, count)
	if count <= len(config.BaseDepartments) {
		departments = append(departments, config.BaseDepartments[:count]...)
	} else {
		departments = append(departments, config.BaseDepartments...)
		for k := len(config.BaseDepartments) + 1; k <= count; k++ {
			departments = append(departments, fmt.Sprintf("Dept%d", k))
		}
	}

	centers := make([]models.CostCenter, 0, len(departments))
	for i, dept := range departments {
		centers = append(centers, models.CostCenter{
			ID:         int64(i + 1),
			Department: dept,
			Country:    config.CostCenterCountry,
			Manager:    "Manager " + dept,
		})
	}

	return centers
}

// WriteCostCentersCSV writes cost centers to dim_cost_center.csv
// (or .csv.xz if compress=true)
func WriteCostCentersCSV(centers []models.CostCenter, outputDir string, compress bool) error {
	headers := []string{"cost_center_id", "department", "country", "manager"}

	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  "dim_cost_center",
		Headers:   headers,
		Compress:  compress,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, c := range centers {
		row := []string{
			FormatInt64(c.ID),
			c.Department,
			c.Country,
			c.Manager,
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}

	return writer.Close()
}
