package models

// TransactionChannel represents how a transaction was initiated
type TransactionChannel string

const (
	ChannelOnline  TransactionChannel = "Online"
	ChannelBranch  TransactionChannel = "Branch"
	ChannelPartner TransactionChannel = "Partner"
)

// TransactionChannels lists all channels in the order their probability
// tables are indexed.
var TransactionChannels = []TransactionChannel{
	ChannelOnline, ChannelBranch, ChannelPartner,
}

// Transaction is one row of fact_transactions. Rows exist only for months in
// which the owning customer is active; IDs are assigned sequentially over the
// final combined output in production order.
type Transaction struct {
	ID         int64              `db:"transaction_id" json:"transaction_id"`
	DateKey    int                `db:"date_key" json:"date_key"`
	CustomerID int64              `db:"customer_id" json:"customer_id"`
	ProductID  int64              `db:"product_id" json:"product_id"`
	Quantity   int                `db:"quantity" json:"quantity"`
	NetRevenue float64            `db:"net_revenue" json:"net_revenue"`
	DirectCost float64            `db:"direct_cost" json:"direct_cost"`
	Channel    TransactionChannel `db:"channel" json:"channel"`
}
