package dto

import "github.com/shopspring/decimal"

type StatisticsResponse struct {
	TotalSales       decimal.Decimal `json:"totalSales"`
	SoldItemsCount   int64           `json:"soldItemsCount"`
	UnsoldItemsCount int64           `json:"unsoldItemsCount"`
}

type BarChartEntry struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// PieChartEntry keeps the "_id" key clients of the original API read the category from.
type PieChartEntry struct {
	Category string `json:"_id"`
	Count    int64  `json:"count"`
}

type CombinedResponse struct {
	Statistics *StatisticsResponse `json:"statistics"`
	BarChart   []BarChartEntry     `json:"barChart"`
	PieChart   []PieChartEntry     `json:"pieChart"`
}
