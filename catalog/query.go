package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"librastore/store"
)

// filterBooks applies the free-text and category filters, returning a new
// slice.
func filterBooks(books []store.Book, filters Filters) []store.Book {
	keyword := strings.ToLower(strings.TrimSpace(filters.Search))

	results := make([]store.Book, 0, len(books))
	for _, book := range books {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(book.Title), keyword) &&
			!strings.Contains(strings.ToLower(book.Author), keyword) {
			continue
		}
		if filters.Category != "" && book.Category != filters.Category {
			continue
		}
		results = append(results, book)
	}
	return results
}

// sortBooks orders books in place. String keys use a Chinese collator so the
// dataset's script sorts in culturally correct order; a missing publish date
// sorts as the earliest possible value. Without a sort key the listing is
// most recently updated first.
func sortBooks(books []store.Book, key SortKey, order SortOrder) {
	if key == "" {
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].UpdatedAt.After(books[j].UpdatedAt)
		})
		return
	}

	dir := 1
	if order == OrderDesc {
		dir = -1
	}

	var cmp func(a, b store.Book) int
	switch key {
	case SortTitle, SortAuthor:
		col := collate.New(language.Chinese)
		cmp = func(a, b store.Book) int {
			if key == SortTitle {
				return col.CompareString(a.Title, b.Title)
			}
			return col.CompareString(a.Author, b.Author)
		}
	case SortAvgRating:
		cmp = func(a, b store.Book) int {
			return compareFloat(a.AvgRating, b.AvgRating)
		}
	case SortReviewCount:
		cmp = func(a, b store.Book) int {
			return a.ReviewCount - b.ReviewCount
		}
	case SortPublishDate:
		cmp = func(a, b store.Book) int {
			return parsePublishDate(a.PublishDate).Compare(parsePublishDate(b.PublishDate))
		}
	default:
		return
	}

	sort.SliceStable(books, func(i, j int) bool {
		return dir*cmp(books[i], books[j]) < 0
	})
}

// paginate returns the 1-based page slice. A non-positive size means no
// pagination; a page past the end is empty.
func paginate(books []store.Book, page Page) []store.Book {
	if page.Size <= 0 {
		return books
	}
	number := page.Number
	if number < 1 {
		number = 1
	}
	from := (number - 1) * page.Size
	if from >= len(books) {
		return []store.Book{}
	}
	to := from + page.Size
	if to > len(books) {
		to = len(books)
	}
	return books[from:to]
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

// parsePublishDate treats an empty or malformed date as the zero time, which
// sorts earliest.
func parsePublishDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
