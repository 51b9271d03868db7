// Package catalog manages the book collection: create, update, and delete
// with referential cleanup, plus filtered, sorted, paginated listing.
package catalog

import "librastore/store"

// SortKey selects the field a book listing is ordered by.
type SortKey string

const (
	SortTitle       SortKey = "title"
	SortAuthor      SortKey = "author"
	SortAvgRating   SortKey = "avg_rating"
	SortReviewCount SortKey = "review_count"
	SortPublishDate SortKey = "publish_date"
)

// SortOrder is the listing direction; ascending when unspecified.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filters narrows and orders a book listing. Search matches title or author
// case-insensitively; Category is an exact match. Without a sort key the
// listing falls back to most recently updated first.
type Filters struct {
	Search   string
	Category string
	Sort     SortKey
	Order    SortOrder
}

// Page requests one 1-based slice of the filtered listing. A non-positive
// Size disables pagination and returns the full result.
type Page struct {
	Number int
	Size   int
}

// BookPage is one page of results plus the pre-pagination match count.
type BookPage struct {
	Books []store.Book
	Total int
}

// Payload carries the caller-supplied fields for creating or updating a
// book. Derived rating fields and timestamps are managed by the service.
type Payload struct {
	Title       string
	Author      string
	ISBN        string
	Publisher   string
	PublishDate string
	Category    string
	Description string
	Stock       int
	Available   int
	CoverImage  string
}
