// Package service provides the application-level orchestration for Item
// records: domain validation, defaulting, and delegation to the persistence
// collaborator.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/riverline/items-api/internal/apperr"
	"github.com/riverline/items-api/internal/domain"
	"github.com/riverline/items-api/internal/store"
)

// ItemRepository defines the repository interface for the service layer.
// It mirrors store.ItemStore so the service can be tested without a database.
type ItemRepository interface {
	Insert(ctx context.Context, item *domain.Item) error
	FindAll(ctx context.Context) ([]*domain.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Save(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, item *domain.Item) error
}

// CreateItemParams carries the fields of a create request. Nil pointers mean
// the field was absent from the payload.
type CreateItemParams struct {
	Name        *string
	Description *string
	DateOfBirth *string
	Sex         *string
	PhoneNumber *string
	Address     *string
}

// UpdateItemParams carries the fields of a partial update. Only non-nil
// fields are applied; an explicit empty dateOfBirth clears the stored value.
type UpdateItemParams struct {
	Name        *string
	Description *string
	DateOfBirth *string
	Sex         *string
	PhoneNumber *string
	Address     *string
}

// ItemService provides item-related operations.
type ItemService interface {
	// CreateItem validates the payload, fills defaults, assigns the
	// identifier and timestamps, and persists the new record.
	CreateItem(ctx context.Context, params CreateItemParams) (*domain.Item, error)

	// ListItems returns every persisted item in insertion order.
	ListItems(ctx context.Context) ([]*domain.Item, error)

	// GetItem validates the identifier format before any store access,
	// then loads the record. Malformed ids yield 400, absent records 404.
	GetItem(ctx context.Context, id string) (*domain.Item, error)

	// UpdateItem applies a partial update to an existing record. The
	// identifier is resolved through GetItem, so the 400-vs-404
	// precedence is inherited.
	UpdateItem(ctx context.Context, id string, params UpdateItemParams) (*domain.Item, error)

	// DeleteItem removes an existing record and returns its last known
	// state for client confirmation.
	DeleteItem(ctx context.Context, id string) (*domain.Item, error)
}

type itemService struct {
	repo   ItemRepository
	logger *slog.Logger
}

// NewItemService creates an ItemService backed by the given repository.
func NewItemService(repo ItemRepository, log *slog.Logger) ItemService {
	if repo == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("repo cannot be nil for ItemService")
	}
	if log == nil {
		log = slog.Default()
	}
	return &itemService{
		repo:   repo,
		logger: log.With(slog.String("component", "item_service")),
	}
}

func (s *itemService) CreateItem(ctx context.Context, params CreateItemParams) (*domain.Item, error) {
	name, err := domain.ValidateName(params.Name)
	if err != nil {
		return nil, err
	}
	dob, err := domain.ValidateDateOfBirth(params.DateOfBirth)
	if err != nil {
		return nil, err
	}

	item := domain.NewItem(
		name,
		stringValue(params.Description),
		dob,
		trimmedValue(params.Sex),
		trimmedValue(params.PhoneNumber),
		trimmedValue(params.Address),
	)

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Debug("item created", slog.String("item_id", item.ID.String()))
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.FindAll(ctx)
}

func (s *itemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	uid, err := domain.ValidateItemID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, apperr.NotFound(fmt.Sprintf("Item with id %q not found", id))
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, params UpdateItemParams) (*domain.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	// An explicitly supplied name is validated exactly as on create; absence
	// leaves the stored value unchanged.
	if params.Name != nil {
		name, err := domain.ValidateName(params.Name)
		if err != nil {
			return nil, err
		}
		item.Name = name
	}
	if params.Description != nil {
		item.Description = *params.Description
	}
	if params.DateOfBirth != nil {
		dob, err := domain.ValidateDateOfBirth(params.DateOfBirth)
		if err != nil {
			return nil, err
		}
		item.DateOfBirth = dob
	}
	if params.Sex != nil {
		item.Sex = strings.TrimSpace(*params.Sex)
	}
	if params.PhoneNumber != nil {
		item.PhoneNumber = strings.TrimSpace(*params.PhoneNumber)
	}
	if params.Address != nil {
		item.Address = strings.TrimSpace(*params.Address)
	}

	// Save refreshes the record's UpdatedAt.
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Debug("item updated", slog.String("item_id", item.ID.String()))
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, item); err != nil {
		if store.IsNotFoundError(err) {
			// Lost a race with a concurrent delete; same outcome for the caller.
			return nil, apperr.NotFound(fmt.Sprintf("Item with id %q not found", id))
		}
		return nil, err
	}

	s.logger.Debug("item deleted", slog.String("item_id", item.ID.String()))
	return item, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func trimmedValue(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
