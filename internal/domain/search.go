package domain

import "sort"

// SortBy ordering of search results
type SortBy string

const (
	SortNone      SortBy = ""
	SortRating    SortBy = "rating"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortName      SortBy = "name"
)

// IsValid reports whether s is a supported ordering
func (s SortBy) IsValid() bool {
	switch s {
	case SortNone, SortRating, SortPriceLow, SortPriceHigh, SortName:
		return true
	}
	return false
}

// PriceRange band on the minimum service price
type PriceRange string

const (
	PriceRangeAll    PriceRange = "all"
	PriceRangeLow    PriceRange = "low"
	PriceRangeMedium PriceRange = "medium"
	PriceRangeHigh   PriceRange = "high"
)

// IsValid reports whether r is a supported band
func (r PriceRange) IsValid() bool {
	switch r {
	case "", PriceRangeAll, PriceRangeLow, PriceRangeMedium, PriceRangeHigh:
		return true
	}
	return false
}

// Contains reports whether price falls into the band
func (r PriceRange) Contains(price float64) bool {
	switch r {
	case PriceRangeLow:
		return price < PriceBandLowMax
	case PriceRangeMedium:
		return price >= PriceBandLowMax && price < PriceBandMediumMax
	case PriceRangeHigh:
		return price >= PriceBandMediumMax
	default:
		return true
	}
}

// SearchCriteria directory search parameters. Empty fields match everything.
type SearchCriteria struct {
	Query      string
	Location   string
	Category   string
	PriceRange PriceRange
	SortBy     SortBy
}

// Matches reports whether b satisfies every non-empty criterion
func (c SearchCriteria) Matches(b *Business) bool {
	return b.MatchesQuery(c.Query) &&
		b.MatchesLocation(c.Location) &&
		b.MatchesCategory(c.Category) &&
		c.PriceRange.Contains(b.MinPrice())
}

// SortBusinesses orders list in place. Ties keep their input order.
func SortBusinesses(list []*Business, by SortBy) {
	var less func(a, b *Business) bool

	switch by {
	case SortRating:
		less = func(a, b *Business) bool { return a.Rating > b.Rating }
	case SortPriceLow:
		less = func(a, b *Business) bool { return a.MinPrice() < b.MinPrice() }
	case SortPriceHigh:
		less = func(a, b *Business) bool { return a.MinPrice() > b.MinPrice() }
	case SortName:
		less = func(a, b *Business) bool { return a.Name < b.Name }
	default:
		return
	}

	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}
