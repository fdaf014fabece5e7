package models

// CostCenter is one row of dim_cost_center. Department names beyond the
// fixed prefix are generated as "DeptK".
type CostCenter struct {
	ID         int64  `db:"cost_center_id" json:"cost_center_id"`
	Department string `db:"department" json:"department"`
	Country    string `db:"country" json:"country"`
	Manager    string `db:"manager" json:"manager"`
}
