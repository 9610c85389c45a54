package model

// AnalyticsSummary is derived from the payments table on every request and never stored.
type AnalyticsSummary struct {
	TotalRevenue string `json:"totalRevenue"`
	PayingUsers  int    `json:"payingUsers"`
	Transactions int    `json:"transactions"`
}
