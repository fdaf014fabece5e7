package models

// FinancialPosting is one row of fact_financials.
// Revenue postings carry a positive amount and no cost center; COGS postings
// a negative amount and no cost center; OPEX postings a negative amount and
// a cost center. CostCenterID is 0 when unset.
type FinancialPosting struct {
	ID           int64   `db:"posting_id" json:"posting_id"`
	DateKey      int     `db:"date_key" json:"date_key"`
	AccountID    int64   `db:"account_id" json:"account_id"`
	CostCenterID int64   `db:"cost_center_id" json:"cost_center_id"`
	Amount       float64 `db:"amount" json:"amount"`
	Currency     string  `db:"currency" json:"currency"`
}

// HasCostCenter reports whether the posting is allocated to a cost center
func (p *FinancialPosting) HasCostCenter() bool {
	return p.CostCenterID != 0
}
