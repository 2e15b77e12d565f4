package catalog

import (
	"sort"
	"strings"
	"sync"

	"bookhaven/pkg/utils"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DeriveView derives the displayed subset of a collection from a QuerySpec.
//
// The pipeline runs in a fixed order: text filter, genre filter, price
// filter, rating filter, stable sort. Each stage reads the previous stage's
// output; the input slice is never mutated. The function is deterministic
// and total: malformed or missing fields degrade to neutral defaults, it
// never fails.
func DeriveView(books []Book, spec QuerySpec) []Book {
	view := filterByTerm(books, spec.Term)
	view = filterByGenre(view, spec.Genre)
	view = filterByPrice(view, spec)
	view = filterByRating(view, spec.MinRating)
	return sortView(view, spec.SortBy, spec.SortOrder)
}

// filterByTerm retains records whose lowercased "title author isbn"
// concatenation contains the trimmed, lowercased term as a substring.
func filterByTerm(books []Book, term string) []Book {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return books
	}
	out := make([]Book, 0, len(books))
	for _, b := range books {
		haystack := strings.ToLower(b.Title + " " + b.Author + " " + b.ISBN)
		if strings.Contains(haystack, term) {
			out = append(out, b)
		}
	}
	return out
}

// filterByGenre retains records whose genre equals the wanted genre,
// case-insensitively. Records without a genre compare as the empty string.
func filterByGenre(books []Book, genre string) []Book {
	if genre == "" {
		return books
	}
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if strings.EqualFold(b.Genre, genre) {
			out = append(out, b)
		}
	}
	return out
}

// filterByPrice applies the inclusive min/max bounds. A spec with neither
// bound present is a no-op; a bound of exactly 0 still applies.
func filterByPrice(books []Book, spec QuerySpec) []Book {
	if !spec.hasPriceFilter() {
		return books
	}
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if spec.PriceMin != nil && b.Price < *spec.PriceMin {
			continue
		}
		if spec.PriceMax != nil && b.Price > *spec.PriceMax {
			continue
		}
		out = append(out, b)
	}
	return out
}

// filterByRating retains records with rating >= the threshold. A missing
// rating compares as 0.
func filterByRating(books []Book, min *float64) []Book {
	if min == nil {
		return books
	}
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if utils.ValueOr(b.Rating, 0) >= *min {
			out = append(out, b)
		}
	}
	return out
}

// sortView stable-sorts a copy of the view. Equal keys keep their original
// relative order, so identical inputs always produce identical sequences.
func sortView(books []Book, field SortField, order SortOrder) []Book {
	out := make([]Book, len(books))
	copy(out, books)

	cmp := comparator(field)
	sign := 1
	if order == SortDesc {
		sign = -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sign*cmp(out[i], out[j]) < 0
	})
	return out
}

// comparator returns the three-way comparison for a sort field. Unknown
// fields fall back to the title comparator.
func comparator(field SortField) func(a, b Book) int {
	switch field {
	case SortByAuthor:
		return func(a, b Book) int { return compareText(a.Author, b.Author) }
	case SortByPrice:
		return func(a, b Book) int { return compareFloat(a.Price, b.Price) }
	case SortByRating:
		return func(a, b Book) int {
			return compareFloat(ratingOrZero(a), ratingOrZero(b))
		}
	case SortByDate:
		return func(a, b Book) int {
			return a.PublishedTime().Compare(b.PublishedTime())
		}
	default:
		return func(a, b Book) int { return compareText(a.Title, b.Title) }
	}
}

// textCollator orders titles and authors the way a reader expects, not by
// raw byte value. Collators are not safe for concurrent use, so access is
// funneled through compareText.
var (
	textCollator = collate.New(language.Und, collate.Loose)
	collateMu    sync.Mutex
)

func compareText(a, b string) int {
	collateMu.Lock()
	defer collateMu.Unlock()
	return textCollator.CompareString(a, b)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func ratingOrZero(b Book) float64 {
	return utils.ValueOr(b.Rating, 0)
}
