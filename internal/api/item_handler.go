// Package api provides the HTTP handlers for the items resource and the
// error normalizer that shapes every rejection path.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/riverline/items-api/internal/api/shared"
	"github.com/riverline/items-api/internal/apperr"
	"github.com/riverline/items-api/internal/domain"
	"github.com/riverline/items-api/internal/platform/logger"
	"github.com/riverline/items-api/internal/service"
)

// ItemPayload is the request body for creating or partially updating an
// item. Nil fields were absent from the payload; dateOfBirth travels as a
// YYYY-MM-DD string.
type ItemPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DateOfBirth *string `json:"dateOfBirth"`
	Sex         *string `json:"sex"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// ItemResponse represents the response data for an item.
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateOfBirth *string   `json:"dateOfBirth"`
	Sex         string    `json:"sex"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService, log *slog.Logger) *ItemHandler {
	if log == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}
	return &ItemHandler{
		itemService: itemService,
		logger:      log.With(slog.String("component", "item_handler")),
	}
}

// CreateItem handles POST /items requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Handler-boundary re-check of the transport contract. The pre-parse
	// middleware normally rejects these earlier; this guards any path that
	// reaches the handler without passing through it.
	if guardErr := shared.ValidateContentType(r.Method, r.Header["Content-Type"]); guardErr != nil {
		WriteError(w, r, guardErr)
		return
	}

	var req ItemPayload
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("request body rejected", slog.String("error", err.Error()))
		WriteError(w, r, mapFieldDecodeError(err))
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), service.CreateItemParams{
		Name:        req.Name,
		Description: req.Description,
		DateOfBirth: req.DateOfBirth,
		Sex:         req.Sex,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	log.Debug("item created", slog.String("item_id", item.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// ListItems handles GET /items requests.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.ListItems(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemToResponse(item))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// UpdateItem handles PATCH /items/{id} requests.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if guardErr := shared.ValidateContentType(r.Method, r.Header["Content-Type"]); guardErr != nil {
		WriteError(w, r, guardErr)
		return
	}

	var req ItemPayload
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("request body rejected", slog.String("error", err.Error()))
		WriteError(w, r, mapFieldDecodeError(err))
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), chi.URLParam(r, "id"), service.UpdateItemParams{
		Name:        req.Name,
		Description: req.Description,
		DateOfBirth: req.DateOfBirth,
		Sex:         req.Sex,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	log.Debug("item updated", slog.String("item_id", item.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /items/{id} requests. The removed record's last
// known state is returned for client confirmation.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.DeleteItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// mapFieldDecodeError translates type mismatches on validated fields into
// their domain validation errors: a JSON number where "name" should be means
// the name is not a non-empty string, and a non-string "dateOfBirth" can
// never be a valid ISO date. Other decode failures pass through to the
// normalizer unchanged.
func mapFieldDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return err
	}
	switch typeErr.Field {
	case "name":
		return apperr.BadRequest(domain.MsgInvalidName)
	case "dateOfBirth":
		return apperr.BadRequest(domain.MsgInvalidDateOfBirth)
	}
	return err
}

// itemToResponse converts a domain.Item to an ItemResponse.
func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		DateOfBirth: domain.FormatDateOfBirth(item.DateOfBirth),
		Sex:         item.Sex,
		PhoneNumber: item.PhoneNumber,
		Address:     item.Address,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
