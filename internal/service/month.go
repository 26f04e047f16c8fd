package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"txdash/internal/models"
)

const monthLayout = "2006-01"

var ErrInvalidMonth = errors.New("invalid month")

// MonthRange turns a "YYYY-MM" token into the half-open UTC range covering that calendar month.
func MonthRange(month string) (models.DateRange, error) {
	start, err := time.ParseInLocation(monthLayout, strings.TrimSpace(month), time.UTC)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("%w %q: expected YYYY-MM", ErrInvalidMonth, month)
	}

	return models.DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}, nil
}
