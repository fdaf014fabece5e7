package models

// ProductCategory represents the commercial category of a product
type ProductCategory string

const (
	CategorySubscription ProductCategory = "Subscription"
	CategoryService      ProductCategory = "Service"
	CategoryLoan         ProductCategory = "Loan"
	CategoryAdvisory     ProductCategory = "Advisory"
)

// ProductCategories lists all categories in the order their probability
// tables are indexed.
var ProductCategories = []ProductCategory{
	CategorySubscription, CategoryService, CategoryLoan, CategoryAdvisory,
}

// Product is one row of dim_product. DirectCostRatio is the fraction of net
// revenue booked as direct cost, already clamped into its category bounds.
type Product struct {
	ID              int64           `db:"product_id" json:"product_id"`
	Name            string          `db:"product_name" json:"product_name"`
	Category        ProductCategory `db:"category" json:"category"`
	BasePrice       float64         `db:"base_price" json:"base_price"`
	DirectCostRatio float64         `db:"direct_cost_ratio" json:"direct_cost_ratio"`
}
