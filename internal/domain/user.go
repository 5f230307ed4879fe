package domain

type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// DashboardSummary is the reporting rollup for the landing page.
// TodayStockOut is an absolute value.
type DashboardSummary struct {
	TotalStock    int `json:"total_stock"`
	TodayStockIn  int `json:"today_stock_in"`
	TodayStockOut int `json:"today_stock_out"`
}
