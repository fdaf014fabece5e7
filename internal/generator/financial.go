package generator

import (
	"sort"

	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

// PostingDeriver turns the transaction stream into GL postings: daily
// revenue and COGS aggregates plus a monthly OPEX allocation across cost
// centers. Revenue posts positive, COGS and OPEX post negative.
type PostingDeriver struct {
	rng       *utils.Random
	cal       *Calendar
	opexRatio float64
}

// NewPostingDeriver creates a new posting deriver
func NewPostingDeriver(rng *utils.Random, cal *Calendar, opexRatio float64) *PostingDeriver {
	return &PostingDeriver{
		rng:       rng,
		cal:       cal,
		opexRatio: opexRatio,
	}
}

type revenueKey struct {
	DateKey   int
	AccountID int64
}

// DerivePostings builds fact_financials from the transaction stream.
//
// Posting ids are assigned sequentially over the output: first all revenue
// postings in ascending (date_key, account_id) order, then all COGS
// postings in ascending date_key order, then the monthly OPEX postings in
// ascending (month, cost_center_id) order.
//
// RNG consumption order: one weight-noise draw per (month, cost center),
// months ascending, cost centers in id order. Months whose last calendar
// day falls outside the dataset window get no OPEX postings.
func (d *PostingDeriver) DerivePostings(transactions []models.Transaction, products []models.Product, costCenters []models.CostCenter) []models.FinancialPosting {
	revenueByProduct := make(map[int64]int64, len(products))
	for _, p := range products {
		revenueByProduct[p.ID] = revenueAccount(p.Category)
	}

	revenue := make(map[revenueKey]float64)
	cogs := make(map[int]float64)
	monthlyRevenue := make(map[MonthKey]float64)

	for _, tx := range transactions {
		key := revenueKey{DateKey: tx.DateKey, AccountID: revenueByProduct[tx.ProductID]}
		revenue[key] += tx.NetRevenue
		cogs[tx.DateKey] += tx.DirectCost
		monthlyRevenue[monthOfDateKey(tx.DateKey)] += tx.NetRevenue
	}

	postings := make([]models.FinancialPosting, 0, len(revenue)+len(cogs))
	postings = d.appendRevenue(postings, revenue)
	postings = d.appendCOGS(postings, cogs)
	postings = d.appendOpex(postings, monthlyRevenue, costCenters)

	for i := range postings {
		postings[i].ID = int64(i + 1)
	}

	return postings
}

func (d *PostingDeriver) appendRevenue(out []models.FinancialPosting, revenue map[revenueKey]float64) []models.FinancialPosting {
	keys := make([]revenueKey, 0, len(revenue))
	for k := range revenue {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DateKey != keys[j].DateKey {
			return keys[i].DateKey < keys[j].DateKey
		}
		return keys[i].AccountID < keys[j].AccountID
	})

	for _, k := range keys {
		out = append(out, models.FinancialPosting{
			DateKey:   k.DateKey,
			AccountID: k.AccountID,
			Amount:    revenue[k],
			Currency:  config.PostingCurrency,
		})
	}
	return out
}

func (d *PostingDeriver) appendCOGS(out []models.FinancialPosting, cogs map[int]float64) []models.FinancialPosting {
	keys := make([]int, 0, len(cogs))
	for k := range cogs {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		out = append(out, models.FinancialPosting{
			DateKey:   k,
			AccountID: models.AccountCOGS,
			Amount:    -cogs[k],
			Currency:  config.PostingCurrency,
		})
	}
	return out
}

// appendOpex allocates each month's OPEX total (monthly revenue times the
// opex ratio, negated) across cost centers using the base weight vector
// perturbed by per-month noise, posted on the month-end date key.
func (d *PostingDeriver) appendOpex(out []models.FinancialPosting, monthlyRevenue map[MonthKey]float64, costCenters []models.CostCenter) []models.FinancialPosting {
	if len(costCenters) == 0 {
		return out
	}

	months := make([]MonthKey, 0, len(monthlyRevenue))
	for mk := range monthlyRevenue {
		months = append(months, mk)
	}
	sort.Slice(months, func(i, j int) bool {
		return monthAfter(months[j], months[i])
	})

	weights := opexWeights(len(costCenters))

	for _, mk := range months {
		dateKey, ok := d.cal.MonthEndDateKey(mk)
		if !ok {
			continue
		}

		opexTotal := monthlyRevenue[mk] * d.opexRatio

		// Perturb the base weights, then renormalize so the allocation
		// always sums to the monthly total.
		noisy := make([]float64, len(weights))
		var sum float64
		for i, w := range weights {
			noisy[i] = w * d.rng.NormalFloat64Range(1.0, config.OpexWeightNoiseStdDev)
			sum += noisy[i]
		}

		for i, cc := range costCenters {
			out = append(out, models.FinancialPosting{
				DateKey:      dateKey,
				AccountID:    opexAccount(cc.Department),
				CostCenterID: cc.ID,
				Amount:       -opexTotal * noisy[i] / sum,
				Currency:     config.PostingCurrency,
			})
		}
	}

	return out
}

// opexWeights returns the allocation weight vector for n cost centers,
// normalized to sum to 1. Counts beyond the base vector get a flat share
// before normalization.
func opexWeights(n int) []float64 {
	weights := make([]float64, n)
	var sum float64
	for i := range weights {
		if i < len(config.OpexBaseWeights) {
			weights[i] = config.OpexBaseWeights[i]
		} else {
			weights[i] = 0.1
		}
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// revenueAccount maps a product category to its revenue GL account
func revenueAccount(cat models.ProductCategory) int64 {
	switch cat {
	case models.CategorySubscription:
		return models.AccountRevenueSubscription
	case models.CategoryService:
		return models.AccountRevenueService
	default:
		return models.AccountRevenueOther
	}
}

// opexAccount maps a cost center department to its OPEX GL account
func opexAccount(department string) int64 {
	switch department {
	case "Sales", "Marketing":
		return models.AccountOpexSalesMarketing
	case "Operations":
		return models.AccountOpexOperations
	case "IT":
		return models.AccountOpexIT
	default:
		return models.AccountOpexHQAdmin
	}
}

// monthOfDateKey extracts the month key from a YYYYMMDD date key
func monthOfDateKey(dateKey int) MonthKey {
	return MonthKey{Year: dateKey / 10000, Month: (dateKey / 100) % 100}
}

// PostingCSVHeaders is the documented column set of fact_financials.
var PostingCSVHeaders = []string{
	"posting_id", "date_key", "account_id", "cost_center_id", "amount", "currency",
}

// WritePostingsCSV writes postings to fact_financials.csv
// (or .csv.xz if compress=true). Revenue and COGS rows leave
// cost_center_id empty.
func WritePostingsCSV(postings []models.FinancialPosting, outputDir string, compress bool) error {
	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  "fact_financials",
		Headers:   PostingCSVHeaders,
		Compress:  compress,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, p := range postings {
		ccField := ""
		if p.HasCostCenter() {
			ccField = FormatInt64(p.CostCenterID)
		}
		row := []string{
			FormatInt64(p.ID),
			FormatInt(p.DateKey),
			FormatInt64(p.AccountID),
			ccField,
			FormatFloat64(p.Amount),
			p.Currency,
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}

	return writer.Close()
}
