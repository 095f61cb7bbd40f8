// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/api/shared"
	"github.com/lexvault/srs-api/internal/platform/logger"
	"github.com/lexvault/srs-api/internal/service/items"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	itemService items.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService items.ItemService, logger *slog.Logger) *ItemHandler {
	if itemService == nil {
		panic("itemService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ItemHandler{
		itemService: itemService,
		logger:      logger.With(slog.String("component", "item_handler")),
	}
}

// CreateItemRequest represents the request body for creating an item.
type CreateItemRequest struct {
	Term       string `json:"term" validate:"required,max=512"`
	Definition string `json:"definition" validate:"required"`
	Notes      string `json:"notes"`
}

// CreateItem handles POST /items requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Term and definition are required")
		return
	}

	created, err := h.itemService.CreateItem(r.Context(), req.Term, req.Definition, req.Notes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item created via API", slog.String("item_id", created.Item.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemWithStateToResponse(created))
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	pair, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemWithStateToResponse(pair))
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemIDFromPath extracts and parses the {id} URL parameter. On failure it
// writes the error response and returns ok=false.
func (h *ItemHandler) itemIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	raw := chi.URLParam(r, "id")
	if raw == "" {
		log.Warn("item ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Item ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("invalid item ID format", slog.String("item_id", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return uuid.Nil, false
	}

	return id, true
}
