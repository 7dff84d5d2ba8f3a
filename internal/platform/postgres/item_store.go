// Package postgres implements the store interfaces against a PostgreSQL
// database accessed through database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/riverline/items-api/internal/domain"
	"github.com/riverline/items-api/internal/platform/logger"
	"github.com/riverline/items-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface using a
// PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresItemStore(db store.DBTX, log *slog.Logger) *PostgresItemStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: log.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore.
var _ store.ItemStore = (*PostgresItemStore)(nil)

// Insert implements store.ItemStore.Insert.
func (s *PostgresItemStore) Insert(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO items (id, name, description, date_of_birth, sex, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Name,
		item.Description,
		dateOfBirthValue(item.DateOfBirth),
		item.Sex,
		item.PhoneNumber,
		item.Address,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	log.Info("item created successfully", slog.String("item_id", item.ID.String()))
	return nil
}

// FindAll implements store.ItemStore.FindAll. Records come back in insertion
// order (created_at ascending).
func (s *PostgresItemStore) FindAll(ctx context.Context) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, date_of_birth, sex, phone_number, address, created_at, updated_at
		FROM items
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query items", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			log.Error("failed to scan item row", slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no items found
	if items == nil {
		items = []*domain.Item{}
	}

	log.Debug("items listed", slog.Int("count", len(items)))
	return items, nil
}

// FindByID implements store.ItemStore.FindByID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, date_of_birth, sex, phone_number, address, created_at, updated_at
		FROM items
		WHERE id = $1
	`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found", slog.String("item_id", id.String()))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get item by ID",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, err
	}

	return item, nil
}

// Save implements store.ItemStore.Save. It upserts on the item's identity and
// refreshes the item's UpdatedAt before writing. On conflict created_at is
// left untouched.
func (s *PostgresItemStore) Save(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO items (id, name, description, date_of_birth, sex, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			date_of_birth = EXCLUDED.date_of_birth,
			sex = EXCLUDED.sex,
			phone_number = EXCLUDED.phone_number,
			address = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Name,
		item.Description,
		dateOfBirthValue(item.DateOfBirth),
		item.Sex,
		item.PhoneNumber,
		item.Address,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to save item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	log.Info("item saved successfully", slog.String("item_id", item.ID.String()))
	return nil
}

// Delete implements store.ItemStore.Delete.
// Returns store.ErrItemNotFound if the record was already gone.
func (s *PostgresItemStore) Delete(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM items WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, item.ID)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("item not found for delete", slog.String("item_id", item.ID.String()))
		return store.ErrItemNotFound
	}

	log.Info("item deleted successfully", slog.String("item_id", item.ID.String()))
	return nil
}

// dateOfBirthValue converts an optional date of birth into its SQL value.
func dateOfBirthValue(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// scanItem reads one items row through the given scan function, normalizing
// the nullable date_of_birth column and forcing timestamps to UTC.
func scanItem(scan func(dest ...any) error) (*domain.Item, error) {
	var item domain.Item
	var dob sql.NullTime

	err := scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&dob,
		&item.Sex,
		&item.PhoneNumber,
		&item.Address,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dob.Valid {
		d := dob.Time.UTC()
		item.DateOfBirth = &d
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	return &item, nil
}
