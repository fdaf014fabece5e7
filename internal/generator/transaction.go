package generator

import (
	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/generator/patterns"
	"github.com/finsynth/finsynth/internal/models"
	"github.com/finsynth/finsynth/internal/utils"
)

// TransactionSampler draws the monthly transaction stream for every
// customer: a Poisson count per active customer-month scaled by segment
// rate and spend tier, then per-transaction date, product, quantity, price
// and channel.
type TransactionSampler struct {
	rng     *utils.Random
	cal     *Calendar
	pattern *patterns.SeasonalPattern
}

// NewTransactionSampler creates a new transaction sampler
func NewTransactionSampler(rng *utils.Random, cal *Calendar, pattern *patterns.SeasonalPattern) *TransactionSampler {
	return &TransactionSampler{
		rng:     rng,
		cal:     cal,
		pattern: pattern,
	}
}

// SampleTransactions produces the full transaction fact table.
//
// RNG consumption order: first one spend-tier draw per customer in id
// order, then the per-customer month loop; inside a month one Poisson count
// draw, then per transaction a date, product, quantity, price-noise and
// channel draw. Transaction ids are assigned over the combined output in
// production order, after all customers are processed.
//
// A simulation that yields no transactions returns a valid empty table.
func (s *TransactionSampler) SampleTransactions(customers []models.Customer, products []models.Product) []models.Transaction {
	transactions := make([]models.Transaction, 0)
	if len(products) == 0 {
		return transactions
	}

	// Customer heterogeneity: spend tiers are drawn for the whole cohort
	// before any month is sampled.
	tiers := make([]float64, len(customers))
	for i := range customers {
		tiers[i] = config.SpendTiers[s.rng.WeightedChoice(config.SpendTierProbs)]
	}

	for i := range customers {
		cust := &customers[i]
		transactions = s.sampleCustomer(transactions, cust, tiers[i], products)
	}

	for i := range transactions {
		transactions[i].ID = int64(i + 1)
	}

	return transactions
}

// sampleCustomer walks the customer's active months, acquisition month
// through churn month (or dataset end month if never churned), inclusive.
func (s *TransactionSampler) sampleCustomer(out []models.Transaction, cust *models.Customer, tier float64, products []models.Product) []models.Transaction {
	segIdx := segmentIndex(cust.Segment)

	lastDate := s.cal.End()
	if cust.ChurnDate != nil {
		lastDate = *cust.ChurnDate
	}
	last := MonthKey{Year: lastDate.Year(), Month: int(lastDate.Month())}

	mk := MonthKey{Year: cust.AcquisitionDate.Year(), Month: int(cust.AcquisitionDate.Month())}
	for !monthAfter(mk, last) {
		if s.cal.ContainsMonth(mk) {
			out = s.sampleMonth(out, cust, segIdx, tier, mk, products)
		}
		mk = nextMonth(mk)
	}

	return out
}

// sampleMonth draws the transaction count for one active customer-month and
// the attribute set of each transaction.
func (s *TransactionSampler) sampleMonth(out []models.Transaction, cust *models.Customer, segIdx int, tier float64, mk MonthKey, products []models.Product) []models.Transaction {
	quarter := (mk.Month-1)/3 + 1
	seasonal := s.pattern.QuarterMultiplier(quarter)
	macro := s.pattern.MacroMultiplier(mk.Year)

	lambda := config.SegmentMonthlyRate[segIdx] * tier
	if lambda < config.MinMonthlyLambda {
		lambda = config.MinMonthlyLambda
	}

	count := s.rng.Poisson(lambda)
	if count == 0 {
		return out
	}

	dateKeys := s.cal.DateKeysInMonth(mk)

	for t := 0; t < count; t++ {
		dateKey := dateKeys[s.rng.IntN(len(dateKeys))]
		product := &products[s.rng.IntN(len(products))]

		quantity := s.rng.Poisson(config.QuantityPoissonMean)
		if quantity < 1 {
			quantity = 1
		}

		noise := s.rng.LogNormal(0, config.PriceNoiseSigma)
		unitPrice := product.BasePrice *
			config.SegmentRevenueMultiplier[segIdx] *
			tier * seasonal * macro * noise

		revenue := unitPrice * float64(quantity)
		cost := revenue * product.DirectCostRatio * config.SegmentCostMultiplier[segIdx]

		channel := models.TransactionChannels[s.rng.WeightedChoice(config.ChannelProbs)]

		out = append(out, models.Transaction{
			DateKey:    dateKey,
			CustomerID: cust.ID,
			ProductID:  product.ID,
			Quantity:   quantity,
			NetRevenue: revenue,
			DirectCost: cost,
			Channel:    channel,
		})
	}

	return out
}

// segmentIndex maps a segment to its position in the probability tables
func segmentIndex(seg models.CustomerSegment) int {
	for i, s := range models.Segments {
		if s == seg {
			return i
		}
	}
	return 0
}

// nextMonth advances a month key by one month
func nextMonth(mk MonthKey) MonthKey {
	if mk.Month == 12 {
		return MonthKey{Year: mk.Year + 1, Month: 1}
	}
	return MonthKey{Year: mk.Year, Month: mk.Month + 1}
}

// monthAfter reports whether a is strictly after b
func monthAfter(a, b MonthKey) bool {
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	return a.Month > b.Month
}

// TransactionCSVHeaders is the documented column set of fact_transactions.
// Downstream consumers join on these names; order is part of the contract.
var TransactionCSVHeaders = []string{
	"transaction_id", "date_key", "customer_id", "product_id",
	"quantity", "net_revenue", "direct_cost", "channel",
}

// WriteTransactionsCSV writes transactions to fact_transactions.csv
// (or .csv.xz if compress=true). A zero-row table still gets its header.
func WriteTransactionsCSV(transactions []models.Transaction, outputDir string, compress bool) error {
	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  "fact_transactions",
		Headers:   TransactionCSVHeaders,
		Compress:  compress,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, tx := range transactions {
		row := []string{
			FormatInt64(tx.ID),
			FormatInt(tx.DateKey),
			FormatInt64(tx.CustomerID),
			FormatInt64(tx.ProductID),
			FormatInt(tx.Quantity),
			FormatFloat64(tx.NetRevenue),
			FormatFloat64(tx.DirectCost),
			string(tx.Channel),
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}

	return writer.Close()
}
