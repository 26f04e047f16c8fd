package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, matching the seed dataset.
	decimal.MarshalJSONWithoutQuotes = true
}

type Transaction struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Image       string          `json:"image" db:"image"`
	Sold        bool            `json:"sold" db:"sold"`
	DateOfSale  time.Time       `json:"dateOfSale" db:"date_of_sale"`
}

// DateRange is half-open: Start <= t < End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// PriceBand is half-open like DateRange. A nil Max means no upper bound.
type PriceBand struct {
	Label string
	Min   decimal.Decimal
	Max   *decimal.Decimal
}

func (b PriceBand) Contains(price decimal.Decimal) bool {
	if price.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || price.LessThan(*b.Max)
}

type SearchFilter struct {
	Term   string
	Price  decimal.Decimal
	Limit  int
	Offset int
}

type MonthTotals struct {
	TotalSales decimal.Decimal
	Sold       int64
	Unsold     int64
}

type CategoryCount struct {
	Category string
	Count    int64
}
