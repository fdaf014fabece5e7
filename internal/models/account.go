package models

// AccountType classifies a GL account into the P&L section it posts to
type AccountType string

const (
	AccountTypeRevenue AccountType = "Revenue"
	AccountTypeCOGS    AccountType = "COGS"
	AccountTypeOPEX    AccountType = "OPEX"
)

// Fixed GL account ids referenced by the posting derivation.
const (
	AccountRevenueSubscription int64 = 4000
	AccountRevenueService      int64 = 4001
	AccountRevenueOther        int64 = 4002
	AccountCOGS                int64 = 5000
	AccountOpexSalesMarketing  int64 = 6000
	AccountOpexOperations      int64 = 6100
	AccountOpexIT              int64 = 6200
	AccountOpexHQAdmin         int64 = 6300
)

// Account is one row of dim_account, the fixed chart of accounts.
type Account struct {
	ID            int64       `db:"account_id" json:"account_id"`
	Name          string      `db:"account_name" json:"account_name"`
	Type          AccountType `db:"account_type" json:"account_type"`
	Group         string      `db:"account_group" json:"account_group"`
	ReportingLine string      `db:"reporting_line" json:"reporting_line"`
}
