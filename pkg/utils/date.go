package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type TrendRange string

const (
	TrendLast7Days  TrendRange = "Last 7 days"
	TrendLast30Days TrendRange = "Last 30 days"
	TrendThisYear   TrendRange = "In this year"
)

// ResolveTrendPeriod normalizes the revenue trend query. The rolling
// windows are always anchored on the current year.
func ResolveTrendPeriod(dateRange string, year int, now time.Time) (TrendRange, int, error) {
	switch TrendRange(dateRange) {
	case "", TrendLast7Days:
		return TrendLast7Days, now.Year(), nil
	case TrendLast30Days:
		return TrendLast30Days, now.Year(), nil
	case TrendThisYear:
		if year <= 0 {
			year = now.Year()
		}
		return TrendThisYear, year, nil
	}

	return "", 0, fmt.Errorf("unknown date range %q", dateRange)
}

// ShiftYear moves the trend to a neighbouring year, which always switches
// to the whole-year view.
func ShiftYear(year int, direction string) (TrendRange, int, error) {
	switch direction {
	case "prev":
		return TrendThisYear, year - 1, nil
	case "next":
		return TrendThisYear, year + 1, nil
	}

	return "", 0, fmt.Errorf("unknown direction %q", direction)
}

// DefaultShippingWindow is the seven days ending today.
func DefaultShippingWindow(now time.Time) (string, string) {
	return now.AddDate(0, 0, -6).Format(DateLayout), now.Format(DateLayout)
}

// ParseWindow checks that both ends are yyyy-mm-dd dates in order.
func ParseWindow(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("error parsing start date: %w", err)
	}

	endDate, err := time.Parse(DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("error parsing end date: %w", err)
	}

	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	return startDate, endDate, nil
}

// ShiftWeek moves a yyyy-mm-dd window by seven days in either direction.
func ShiftWeek(start, end, direction string) (string, string, error) {
	var days int
	switch direction {
	case "prev":
		days = -7
	case "next":
		days = 7
	default:
		return "", "", fmt.Errorf("unknown direction %q", direction)
	}

	startDate, endDate, err := ParseWindow(start, end)
	if err != nil {
		return "", "", err
	}

	return startDate.AddDate(0, 0, days).Format(DateLayout), endDate.AddDate(0, 0, days).Format(DateLayout), nil
}
