// Package catalog holds the book record model and the pure query engine
// that derives filtered, sorted views of a record collection.
package catalog

import (
	"strings"
	"time"

	pkgerrors "bookhaven/pkg/errors"
	"bookhaven/pkg/utils"
)

// Book represents one catalog entry. IDs are assigned by the creator (the
// creation form uses the current Unix millisecond clock), not by the store;
// no two live records share an ID.
type Book struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Price         float64  `json:"price"`
	Description   string   `json:"description,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	ReviewCount   *int     `json:"reviewCount,omitempty"`
	Pages         *int     `json:"pages,omitempty"`
	Genre         string   `json:"genre,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	CoverImage    string   `json:"coverImage,omitempty"`
}

// genreSuggestions is the fixed list offered by the creation form. Genre is
// free-form: values outside this list are accepted and stored as-is.
var genreSuggestions = []string{
	"Fiction",
	"Non-Fiction",
	"Science Fiction",
	"Fantasy",
	"Mystery",
	"Thriller",
	"Romance",
	"Biography",
	"History",
	"Self-Help",
	"Poetry",
	"Children",
}

// GenreSuggestions returns the suggestion list for genre inputs.
func GenreSuggestions() []string {
	out := make([]string, len(genreSuggestions))
	copy(out, genreSuggestions)
	return out
}

// IsSuggestedGenre reports whether g matches the suggestion list,
// case-insensitively.
func IsSuggestedGenre(g string) bool {
	for _, s := range genreSuggestions {
		if strings.EqualFold(s, g) {
			return true
		}
	}
	return false
}

// NewID returns a fresh client-assigned record ID from the current clock.
func NewID() int64 {
	return utils.NowMillis()
}

// Validate checks the record's field invariants.
func (b Book) Validate() error {
	if b.ID <= 0 {
		return pkgerrors.NewValidationError("id must be a positive integer")
	}
	if strings.TrimSpace(b.Title) == "" {
		return pkgerrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return pkgerrors.NewValidationError("author is required")
	}
	if b.Price < 0 {
		return pkgerrors.NewValidationError("price must not be negative")
	}
	if b.Rating != nil && (*b.Rating < 0 || *b.Rating > 5) {
		return pkgerrors.NewValidationError("rating must be between 0 and 5")
	}
	if b.ReviewCount != nil && *b.ReviewCount < 0 {
		return pkgerrors.NewValidationError("reviewCount must not be negative")
	}
	if b.Pages != nil && *b.Pages < 0 {
		return pkgerrors.NewValidationError("pages must not be negative")
	}
	return nil
}

// publishedDateLayouts are the formats PublishedDate is parsed against, in
// order. Records predate any schema enforcement, so anything unparsable
// degrades to the zero time rather than failing.
var publishedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// PublishedTime parses the record's PublishedDate. Missing or unparsable
// dates return the zero time, which sorts to the earliest position in
// ascending date order.
func (b Book) PublishedTime() time.Time {
	s := strings.TrimSpace(b.PublishedDate)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range publishedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
