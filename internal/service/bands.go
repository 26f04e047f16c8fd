package service

import (
	"txdash/internal/models"

	"github.com/shopspring/decimal"
)

var bandLowerBounds = []int64{0, 101, 201, 301, 401, 501, 601, 701, 801, 901}

// priceBands are the ten bar-chart buckets. Each band runs up to the next
// band's lower bound, so fractional prices like 100.50 still land in 0-100.
var priceBands = buildPriceBands(bandLowerBounds)

func buildPriceBands(lowerBounds []int64) []models.PriceBand {
	bands := make([]models.PriceBand, len(lowerBounds))
	for i, lower := range lowerBounds {
		band := models.PriceBand{Min: decimal.NewFromInt(lower)}
		if i+1 < len(lowerBounds) {
			upper := decimal.NewFromInt(lowerBounds[i+1])
			band.Max = &upper
			band.Label = band.Min.String() + "-" + upper.Sub(decimal.NewFromInt(1)).String()
		} else {
			band.Label = band.Min.String() + "-above"
		}
		bands[i] = band
	}
	return bands
}
