// Package store defines the persistence interface the service layer depends
// on, plus the sentinel errors shared by all implementations. The service
// never issues raw queries; it only calls the five operations below.
package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/riverline/items-api/internal/domain"
)

// DBTX abstracts the database access layer. Both *sql.DB and *sql.Tx satisfy
// it, so a store can run against a connection pool or inside a transaction
// owned by the caller.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ItemStore is the persistence collaborator for Item records.
type ItemStore interface {
	// Insert saves a new item. The caller assigns the identifier and both
	// timestamps before calling.
	Insert(ctx context.Context, item *domain.Item) error

	// FindAll returns every persisted item ordered by creation time
	// ascending (insertion order). Returns an empty slice, never nil.
	FindAll(ctx context.Context) ([]*domain.Item, error)

	// FindByID retrieves an item by its identifier.
	// Returns ErrItemNotFound if no such record exists.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// Save upserts the item on its identity. The store refreshes the
	// item's UpdatedAt; CreatedAt is never touched on conflict.
	Save(ctx context.Context, item *domain.Item) error

	// Delete removes the record. Returns ErrItemNotFound if it was
	// already gone.
	Delete(ctx context.Context, item *domain.Item) error
}
