package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

const (
	dateOnlyLayout = "2006-01-02"
	filterAll      = "All"
)

// parseDate accepts RFC3339 timestamps and bare YYYY-MM-DD dates (UTC midnight).
func parseDate(value string) (time.Time, error) {
	t, _, err := parseDateIn(value, time.UTC)
	return t, err
}

// parseDateIn parses value, interpreting date-only input in loc.
func parseDateIn(value string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	value = strings.TrimSpace(value)
	if t, err = time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	if t, err = time.ParseInLocation(dateOnlyLayout, value, loc); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("unrecognised date %q", value)
}

// buildTransactionFilter turns list query parameters into a repository filter.
// A month+year pair wins over startDate/endDate.
func buildTransactionFilter(params dto.ListTransactionsParams, loc *time.Location) (domain.TransactionFilter, error) {
	if loc == nil {
		loc = time.UTC
	}
	filter := domain.TransactionFilter{
		Counterparty: strings.TrimSpace(params.Counterparty),
		ActiveOnly:   true,
	}

	if v := strings.TrimSpace(params.TransactionType); v != "" && v != filterAll {
		t := domain.TransactionType(v)
		if !t.IsValid() {
			return filter, apperrors.NewValidationError(fmt.Sprintf("Invalid transactionType: %s", v))
		}
		filter.TransactionType = &t
	}
	if v := strings.TrimSpace(params.TransactionMode); v != "" && v != filterAll {
		m := domain.TransactionMode(v)
		if !m.IsValid() {
			return filter, apperrors.NewValidationError(fmt.Sprintf("Invalid transactionMode: %s", v))
		}
		filter.TransactionMode = &m
	}
	if v := strings.TrimSpace(params.Category); v != "" && v != filterAll {
		filter.Category = &v
	}

	if params.Month != 0 && params.Year != 0 {
		if params.Month < 1 || params.Month > 12 {
			return filter, apperrors.NewValidationError("Month must be between 1 and 12")
		}
		from, to := domain.MonthRange(params.Year, time.Month(params.Month), loc)
		filter.From, filter.To = &from, &to
		return filter, nil
	}

	if v := strings.TrimSpace(params.StartDate); v != "" {
		from, _, err := parseDateIn(v, loc)
		if err != nil {
			return filter, apperrors.NewValidationError("Invalid startDate")
		}
		filter.From = &from
	}
	if v := strings.TrimSpace(params.EndDate); v != "" {
		to, dateOnly, err := parseDateIn(v, loc)
		if err != nil {
			return filter, apperrors.NewValidationError("Invalid endDate")
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, apperrors.NewValidationError("startDate must not be after endDate")
	}

	return filter, nil
}
