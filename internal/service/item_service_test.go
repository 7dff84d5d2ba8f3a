package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverline/items-api/internal/apperr"
	"github.com/riverline/items-api/internal/domain"
	"github.com/riverline/items-api/internal/service"
	"github.com/riverline/items-api/internal/store"
)

// MockItemRepository is a mock implementation of service.ItemRepository.
type MockItemRepository struct {
	InsertFn   func(ctx context.Context, item *domain.Item) error
	FindAllFn  func(ctx context.Context) ([]*domain.Item, error)
	FindByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	SaveFn     func(ctx context.Context, item *domain.Item) error
	DeleteFn   func(ctx context.Context, item *domain.Item) error

	FindByIDCalls int
}

func (m *MockItemRepository) Insert(ctx context.Context, item *domain.Item) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, item)
	}
	return nil
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]*domain.Item, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return []*domain.Item{}, nil
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	m.FindByIDCalls++
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, store.ErrItemNotFound
}

func (m *MockItemRepository) Save(ctx context.Context, item *domain.Item) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, item)
	}
	return nil
}

func (m *MockItemRepository) Delete(ctx context.Context, item *domain.Item) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, item)
	}
	return nil
}

func strPtr(s string) *string { return &s }

const knownID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func storedItem() *domain.Item {
	created := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Item{
		ID:        uuid.MustParse(knownID),
		Name:      "Existing",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestItemService_CreateItem(t *testing.T) {
	t.Run("assigns_identity_and_equal_timestamps", func(t *testing.T) {
		var inserted *domain.Item
		repo := &MockItemRepository{
			InsertFn: func(ctx context.Context, item *domain.Item) error {
				inserted = item
				return nil
			},
		}
		svc := service.NewItemService(repo, nil)

		item, err := svc.CreateItem(context.Background(), service.CreateItemParams{
			Name:        strPtr("  Trimmed Name  "),
			DateOfBirth: strPtr("1990-01-15"),
			Sex:         strPtr(" F "),
		})
		require.NoError(t, err)
		require.NotNil(t, inserted)
		assert.Same(t, inserted, item)

		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, "Trimmed Name", item.Name)
		assert.Equal(t, "", item.Description)
		assert.Equal(t, "F", item.Sex)
		assert.Equal(t, "", item.PhoneNumber)
		assert.Equal(t, "", item.Address)
		require.NotNil(t, item.DateOfBirth)
		assert.Equal(t, "1990-01-15", item.DateOfBirth.Format(domain.DateOfBirthLayout))
		assert.True(t, item.CreatedAt.Equal(item.UpdatedAt))
	})

	t.Run("rejects_missing_name_before_store_access", func(t *testing.T) {
		inserts := 0
		repo := &MockItemRepository{
			InsertFn: func(ctx context.Context, item *domain.Item) error {
				inserts++
				return nil
			},
		}
		svc := service.NewItemService(repo, nil)

		_, err := svc.CreateItem(context.Background(), service.CreateItemParams{})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, domain.MsgInvalidName, appErr.Message)
		assert.Zero(t, inserts)
	})

	t.Run("rejects_impossible_calendar_date", func(t *testing.T) {
		svc := service.NewItemService(&MockItemRepository{}, nil)

		_, err := svc.CreateItem(context.Background(), service.CreateItemParams{
			Name:        strPtr("Test"),
			DateOfBirth: strPtr("1989-11-31"),
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.MsgInvalidDateOfBirth, appErr.Message)
	})

	t.Run("blank_date_stored_as_absent", func(t *testing.T) {
		repo := &MockItemRepository{}
		svc := service.NewItemService(repo, nil)

		item, err := svc.CreateItem(context.Background(), service.CreateItemParams{
			Name:        strPtr("Test"),
			DateOfBirth: strPtr("   "),
		})
		require.NoError(t, err)
		assert.Nil(t, item.DateOfBirth)
	})

	t.Run("store_failure_propagates", func(t *testing.T) {
		repo := &MockItemRepository{
			InsertFn: func(ctx context.Context, item *domain.Item) error {
				return errors.New("connection reset")
			},
		}
		svc := service.NewItemService(repo, nil)

		_, err := svc.CreateItem(context.Background(), service.CreateItemParams{Name: strPtr("Test")})
		require.EqualError(t, err, "connection reset")
	})
}

func TestItemService_GetItem(t *testing.T) {
	t.Run("malformed_id_never_reaches_store", func(t *testing.T) {
		repo := &MockItemRepository{}
		svc := service.NewItemService(repo, nil)

		_, err := svc.GetItem(context.Background(), "not-a-uuid")
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, domain.MsgInvalidItemID, appErr.Message)
		assert.Zero(t, repo.FindByIDCalls)
	})

	t.Run("absent_record_is_404_with_id_in_message", func(t *testing.T) {
		repo := &MockItemRepository{}
		svc := service.NewItemService(repo, nil)

		wellFormed := "00000000-0000-0000-0000-000000000000"
		_, err := svc.GetItem(context.Background(), wellFormed)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
		assert.Contains(t, appErr.Message, wellFormed)
		assert.Equal(t, 1, repo.FindByIDCalls)
	})

	t.Run("found_record_returned", func(t *testing.T) {
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				assert.Equal(t, knownID, id.String())
				return storedItem(), nil
			},
		}
		svc := service.NewItemService(repo, nil)

		item, err := svc.GetItem(context.Background(), knownID)
		require.NoError(t, err)
		assert.Equal(t, "Existing", item.Name)
	})

	t.Run("store_failure_is_not_translated", func(t *testing.T) {
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				return nil, errors.New("connection reset")
			},
		}
		svc := service.NewItemService(repo, nil)

		_, err := svc.GetItem(context.Background(), knownID)
		var appErr *apperr.Error
		assert.False(t, errors.As(err, &appErr))
	})
}

func TestItemService_UpdateItem(t *testing.T) {
	t.Run("applies_only_supplied_fields", func(t *testing.T) {
		var saved *domain.Item
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				return storedItem(), nil
			},
			SaveFn: func(ctx context.Context, item *domain.Item) error {
				saved = item
				return nil
			},
		}
		svc := service.NewItemService(repo, nil)

		item, err := svc.UpdateItem(context.Background(), knownID, service.UpdateItemParams{
			DateOfBirth: strPtr("1985-01-20"),
		})
		require.NoError(t, err)
		require.NotNil(t, saved)

		assert.Equal(t, "Existing", item.Name, "absent fields stay unchanged")
		require.NotNil(t, item.DateOfBirth)
		assert.Equal(t, "1985-01-20", item.DateOfBirth.Format(domain.DateOfBirthLayout))
	})

	t.Run("explicit_invalid_name_rejected_like_create", func(t *testing.T) {
		saves := 0
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				return storedItem(), nil
			},
			SaveFn: func(ctx context.Context, item *domain.Item) error {
				saves++
				return nil
			},
		}
		svc := service.NewItemService(repo, nil)

		_, err := svc.UpdateItem(context.Background(), knownID, service.UpdateItemParams{
			Name: strPtr("   "),
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.MsgInvalidName, appErr.Message)
		assert.Zero(t, saves)
	})

	t.Run("explicit_blank_date_clears_value", func(t *testing.T) {
		existing := storedItem()
		dob := time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC)
		existing.DateOfBirth = &dob

		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				return existing, nil
			},
		}
		svc := service.NewItemService(repo, nil)

		item, err := svc.UpdateItem(context.Background(), knownID, service.UpdateItemParams{
			DateOfBirth: strPtr(""),
		})
		require.NoError(t, err)
		assert.Nil(t, item.DateOfBirth)
	})

	t.Run("bad_id_format_takes_precedence_over_not_found", func(t *testing.T) {
		repo := &MockItemRepository{}
		svc := service.NewItemService(repo, nil)

		_, err := svc.UpdateItem(context.Background(), "nope", service.UpdateItemParams{})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Zero(t, repo.FindByIDCalls)
	})

	t.Run("missing_record_is_404", func(t *testing.T) {
		repo := &MockItemRepository{}
		svc := service.NewItemService(repo, nil)

		_, err := svc.UpdateItem(context.Background(), knownID, service.UpdateItemParams{
			Name: strPtr("New Name"),
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("invalid_date_rejected_with_round_trip_rule", func(t *testing.T) {
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				return storedItem(), nil
			},
		}
		svc := service.NewItemService(repo, nil)

		_, err := svc.UpdateItem(context.Background(), knownID, service.UpdateItemParams{
			DateOfBirth: strPtr("2025-02-30"),
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.MsgInvalidDateOfBirth, appErr.Message)
	})
}

func TestItemService_DeleteItem(t *testing.T) {
	t.Run("returns_last_known_state", func(t *testing.T) {
		var deleted *domain.Item
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				return storedItem(), nil
			},
			DeleteFn: func(ctx context.Context, item *domain.Item) error {
				deleted = item
				return nil
			},
		}
		svc := service.NewItemService(repo, nil)

		item, err := svc.DeleteItem(context.Background(), knownID)
		require.NoError(t, err)
		assert.Same(t, deleted, item)
		assert.Equal(t, "Existing", item.Name)
	})

	t.Run("second_delete_is_404", func(t *testing.T) {
		gone := false
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				if gone {
					return nil, store.ErrItemNotFound
				}
				return storedItem(), nil
			},
			DeleteFn: func(ctx context.Context, item *domain.Item) error {
				gone = true
				return nil
			},
		}
		svc := service.NewItemService(repo, nil)

		_, err := svc.DeleteItem(context.Background(), knownID)
		require.NoError(t, err)

		_, err = svc.DeleteItem(context.Background(), knownID)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
		assert.Contains(t, appErr.Message, knownID)
	})

	t.Run("concurrent_delete_race_is_404", func(t *testing.T) {
		repo := &MockItemRepository{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
				return storedItem(), nil
			},
			DeleteFn: func(ctx context.Context, item *domain.Item) error {
				return store.ErrItemNotFound
			},
		}
		svc := service.NewItemService(repo, nil)

		_, err := svc.DeleteItem(context.Background(), knownID)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})
}

func TestItemService_ListItems(t *testing.T) {
	repo := &MockItemRepository{
		FindAllFn: func(ctx context.Context) ([]*domain.Item, error) {
			return []*domain.Item{storedItem()}, nil
		},
	}
	svc := service.NewItemService(repo, nil)

	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Existing", items[0].Name)
}
