package repository

import (
	"math"
	"strings"
)

// ListFilter carries the optional request-listing filters. Nil pointer
// fields mean the filter is absent.
type ListFilter struct {
	StatusID *string
	DateFrom *int64
	DateTo   *int64
	Search   string
}

func (f ListFilter) hasSearch() bool {
	return strings.TrimSpace(f.Search) != ""
}

func (f ListFilter) hasDate() bool {
	return f.DateFrom != nil || f.DateTo != nil
}

// dateBounds returns the inclusive requested-time window, clamping missing
// bounds to the full range.
func (f ListFilter) dateBounds() (int64, int64) {
	from := int64(0)
	to := int64(math.MaxInt64)
	if f.DateFrom != nil {
		from = *f.DateFrom
	}
	if f.DateTo != nil {
		to = *f.DateTo
	}
	return from, to
}

// listStrategy identifies the retrieval path a ListFilter maps to.
type listStrategy int

const (
	strategyDefault listStrategy = iota
	strategySearch
	strategyStatusAndRange
	strategyStatusOnly
	strategyRangeOnly
)

func (s listStrategy) String() string {
	switch s {
	case strategySearch:
		return "search"
	case strategyStatusAndRange:
		return "status_and_range"
	case strategyStatusOnly:
		return "status_only"
	case strategyRangeOnly:
		return "range_only"
	default:
		return "default"
	}
}

// selectStrategy picks exactly one retrieval strategy for a filter.
// Priority: search, status+range, status only, range only, default.
func selectStrategy(f ListFilter) listStrategy {
	switch {
	case f.hasSearch():
		return strategySearch
	case f.StatusID != nil && f.hasDate():
		return strategyStatusAndRange
	case f.StatusID != nil:
		return strategyStatusOnly
	case f.hasDate():
		return strategyRangeOnly
	default:
		return strategyDefault
	}
}
