package models

import (
	"time"
)

// CustomerSegment represents the commercial tier of a customer
type CustomerSegment string

const (
	SegmentRetail    CustomerSegment = "Retail"
	SegmentSME       CustomerSegment = "SME"
	SegmentCorporate CustomerSegment = "Corporate"
)

// Segments lists all segments in the order their probability tables are indexed.
var Segments = []CustomerSegment{SegmentRetail, SegmentSME, SegmentCorporate}

// CustomerRegion represents the sales region a customer belongs to
type CustomerRegion string

const (
	RegionNorth         CustomerRegion = "North"
	RegionSouth         CustomerRegion = "South"
	RegionWest          CustomerRegion = "West"
	RegionEast          CustomerRegion = "East"
	RegionCentral       CustomerRegion = "Central"
	RegionInternational CustomerRegion = "International"
)

// Regions lists all regions in the order their probability tables are indexed.
var Regions = []CustomerRegion{
	RegionNorth, RegionSouth, RegionWest,
	RegionEast, RegionCentral, RegionInternational,
}

// Customer is one row of dim_customer.
// ChurnDate is nil for customers that never churn inside the dataset window;
// IsActive is derived from that, never sampled independently.
type Customer struct {
	ID              int64           `db:"customer_id" json:"customer_id"`
	Segment         CustomerSegment `db:"segment" json:"segment"`
	Region          CustomerRegion  `db:"region" json:"region"`
	RiskScore       float64         `db:"risk_score" json:"risk_score"` // FICO-like, 300-850
	AcquisitionDate time.Time       `db:"acquisition_date" json:"acquisition_date"`
	ChurnDate       *time.Time      `db:"churn_date" json:"churn_date"`
	IsActive        bool            `db:"is_active" json:"is_active"`
}

// Churned returns true if the customer has a churn date inside the window
func (c *Customer) Churned() bool {
	return c.ChurnDate != nil
}
