package handlers

import (
	"errors"
	"time"

	"roomfund/internal/money"
)

var errInvalidAmount = errors.New("invalid amount")

func parseAmount(raw string) (int64, error) {
	amount, err := money.ParseAmount(raw)
	if err != nil {
		return 0, errInvalidAmount
	}
	return amount, nil
}

// dayOfWeek derives the stored weekday name from a YYYY-MM-DD date.
func dayOfWeek(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}
