package catalog

import "strings"

// SortField selects the sort key for a derived view.
type SortField string

const (
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
	SortByPrice  SortField = "price"
	SortByRating SortField = "rating"
	SortByDate   SortField = "date"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// QuerySpec combines a free-text term, structured filters, and a sort
// directive. It is transient state, never persisted.
//
// Price bounds and the rating threshold are pointers on purpose: a bound of
// exactly 0 is a real bound, while nil means the filter is not set. Checking
// for zero values instead would silently exclude free books from a [0, max]
// range.
type QuerySpec struct {
	Term      string
	Genre     string
	PriceMin  *float64
	PriceMax  *float64
	MinRating *float64
	SortBy    SortField
	SortOrder SortOrder
}

// ParseSortField maps a raw string onto a SortField, defaulting to title.
func ParseSortField(s string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortByAuthor:
		return SortByAuthor
	case SortByPrice:
		return SortByPrice
	case SortByRating:
		return SortByRating
	case SortByDate:
		return SortByDate
	default:
		return SortByTitle
	}
}

// ParseSortOrder maps a raw string onto a SortOrder, defaulting to ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// hasPriceFilter reports whether at least one price bound is present.
func (s QuerySpec) hasPriceFilter() bool {
	return s.PriceMin != nil || s.PriceMax != nil
}
