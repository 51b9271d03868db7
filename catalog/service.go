package catalog

import (
	"context"

	"librastore/store"
)

// Service defines the interface for the catalog service.
type Service interface {
	ListBooks(ctx context.Context, filters Filters, page Page) (BookPage, error)
	GetBook(ctx context.Context, id string) (store.Book, error)
	CreateBook(ctx context.Context, payload Payload) (store.Book, error)
	UpdateBook(ctx context.Context, id string, payload Payload) (store.Book, error)
	DeleteBook(ctx context.Context, id string) error
}
