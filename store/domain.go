// Package store is the single source of truth for the library catalog: it
// owns the four record collections (users, books, borrow records, reviews),
// their serialization into one durable document, and the read-modify-write
// cycle every operation runs through. Callers only ever see copies of stored
// records, so external mutation cannot corrupt cached state.
package store

import (
	"math"
	"strings"
	"time"
)

// Role classifies a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// BorrowStatus is the lifecycle state of a borrow record.
type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "borrowed"
	StatusReturned BorrowStatus = "returned"
	StatusOverdue  BorrowStatus = "overdue"
)

// User is a registered account. PasswordHash and PasswordSalt live only in
// the persisted document; Sanitized strips them before a user leaves the
// store boundary.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"password_hash,omitempty"`
	PasswordSalt string    `json:"password_salt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user with all credential material removed.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.PasswordSalt = ""
	return u
}

// Book is a catalog title. Available must stay within [0, Stock]; AvgRating
// and ReviewCount are derived from the book's reviews. PublishDate is a
// YYYY-MM-DD string, empty when unknown.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Publisher   string    `json:"publisher,omitempty"`
	PublishDate string    `json:"publish_date,omitempty"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	Available   int       `json:"available"`
	CoverImage  string    `json:"cover_image,omitempty"`
	AvgRating   float64   `json:"avg_rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BorrowRecord is one loan of one book to one user. ReturnDate is nil while
// the copy is out.
type BorrowRecord struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	BookID     string       `json:"book_id"`
	BorrowDate time.Time    `json:"borrow_date"`
	DueDate    time.Time    `json:"due_date"`
	ReturnDate *time.Time   `json:"return_date,omitempty"`
	Status     BorrowStatus `json:"status"`
	RenewCount int          `json:"renew_count"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Review is a reader's rating of a book, 1 to 5 stars.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the full persisted document: four flat collections referencing
// each other by plain id strings.
type State struct {
	Users         []User         `json:"users"`
	Books         []Book         `json:"books"`
	BorrowRecords []BorrowRecord `json:"borrowRecords"`
	Reviews       []Review       `json:"reviews"`
}

// Clone deep-copies the state so mutations on the copy never reach the
// original.
func (s State) Clone() State {
	out := State{
		Users:         make([]User, len(s.Users)),
		Books:         make([]Book, len(s.Books)),
		BorrowRecords: make([]BorrowRecord, len(s.BorrowRecords)),
		Reviews:       make([]Review, len(s.Reviews)),
	}
	copy(out.Users, s.Users)
	copy(out.Books, s.Books)
	copy(out.Reviews, s.Reviews)
	for i, rec := range s.BorrowRecords {
		if rec.ReturnDate != nil {
			returned := *rec.ReturnDate
			rec.ReturnDate = &returned
		}
		out.BorrowRecords[i] = rec
	}
	return out
}

// FindBook returns a pointer into the state's book collection, or nil.
func (s *State) FindBook(id string) *Book {
	for i := range s.Books {
		if s.Books[i].ID == id {
			return &s.Books[i]
		}
	}
	return nil
}

// FindUser returns a pointer into the state's user collection, or nil.
func (s *State) FindUser(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// FindUserByEmail matches emails case-insensitively.
func (s *State) FindUserByEmail(email string) *User {
	for i := range s.Users {
		if strings.EqualFold(s.Users[i].Email, email) {
			return &s.Users[i]
		}
	}
	return nil
}

// FindBorrowRecord returns a pointer into the state's record collection, or
// nil.
func (s *State) FindBorrowRecord(id string) *BorrowRecord {
	for i := range s.BorrowRecords {
		if s.BorrowRecords[i].ID == id {
			return &s.BorrowRecords[i]
		}
	}
	return nil
}

// ReviewsForBook returns the reviews referencing bookID, in stored order.
func (s *State) ReviewsForBook(bookID string) []Review {
	var out []Review
	for _, r := range s.Reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out
}

// Round2 rounds a derived rating to two decimal places, the precision all
// aggregate rating fields are stored with.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ClampAvailable forces available into the valid range [0, stock].
func ClampAvailable(available, stock int) int {
	if stock < 0 {
		stock = 0
	}
	if available < 0 {
		return 0
	}
	if available > stock {
		return stock
	}
	return available
}
