package generator

import (
	"github.com/finsynth/finsynth/internal/models"
)

// BuildChartOfAccounts returns the fixed 8-row chart of accounts: three
// revenue accounts, one COGS account, four OPEX accounts. No randomness,
// no parameters.
func BuildChartOfAccounts() []models.Account {
	return []models.Account{
		{ID: models.AccountRevenueSubscription, Name: "Revenue - Subscription", Type: models.AccountTypeRevenue, Group: "Operating Revenue", ReportingLine: "Revenue"},
		{ID: models.AccountRevenueService, Name: "Revenue - Service", Type: models.AccountTypeRevenue, Group: "Operating Revenue", ReportingLine: "Revenue"},
		{ID: models.AccountRevenueOther, Name: "Revenue - Other", Type: models.AccountTypeRevenue, Group: "Operating Revenue", ReportingLine: "Revenue"},

		{ID: models.AccountCOGS, Name: "Cost of Goods Sold", Type: models.AccountTypeCOGS, Group: "Direct Costs", ReportingLine: "Gross Profit"},

		{ID: models.AccountOpexSalesMarketing, Name: "Sales & Marketing", Type: models.AccountTypeOPEX, Group: "Indirect Costs", ReportingLine: "Operating Profit"},
		{ID: models.AccountOpexOperations, Name: "Operations", Type: models.AccountTypeOPEX, Group: "Indirect Costs", ReportingLine: "Operating Profit"},
		{ID: models.AccountOpexIT, Name: "IT & Infrastructure", Type: models.AccountTypeOPEX, Group: "Indirect Costs", ReportingLine: "Operating Profit"},
		{ID: models.AccountOpexHQAdmin, Name: "HQ & Admin", Type: models.AccountTypeOPEX, Group: "Indirect Costs", ReportingLine: "Operating Profit"},
	}
}

// WriteAccountsCSV writes the chart of accounts to dim_account.csv
// (or .csv.xz if compress=true)
func WriteAccountsCSV(accounts []models.Account, outputDir string, compress bool) error {
	headers := []string{
		"account_id", "account_name", "account_type", "account_group", "reporting_line",
	}

	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: outputDir,
		Filename:  "dim_account",
		Headers:   headers,
		Compress:  compress,
	})
	if err != nil {
		return err
	}
	defer writer.Close()

	for _, a := range accounts {
		row := []string{
			FormatInt64(a.ID),
			a.Name,
			string(a.Type),
			a.Group,
			a.ReportingLine,
		}
		if err := writer.WriteRow(row); err != nil {
			return err
		}
	}

	return writer.Close()
}
