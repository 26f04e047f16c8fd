package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)`)

// searchPrice reads the numeric prefix of a search term, e.g. "12.5kg" is 12.5.
// Terms without one compare against a price of zero.
func searchPrice(term string) decimal.Decimal {
	match := leadingNumber.FindString(term)
	if match == "" {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(strings.TrimSpace(match))
	if err != nil {
		return decimal.Zero
	}
	return price
}
