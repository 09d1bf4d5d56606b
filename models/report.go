package models

// ReportEntry is a single cost reduced to the shape stored in a
// monthly report.
type ReportEntry struct {
	Sum         float64 `bson:"sum" json:"sum"`
	Description string  `bson:"description" json:"description"`
	Day         int     `bson:"day" json:"day"`
}

// CategoryCosts is one element of a report's costs array: a single
// category name mapped to its ordered entries.
type CategoryCosts map[string][]ReportEntry

// Report is a materialized monthly report, keyed by (userid, year,
// month). The reports collection carries a unique compound index on
// that triple.
type Report struct {
	UserID int             `bson:"userid" json:"userid"`
	Year   int             `bson:"year" json:"year"`
	Month  int             `bson:"month" json:"month"`
	Costs  []CategoryCosts `bson:"costs" json:"costs"`
}
