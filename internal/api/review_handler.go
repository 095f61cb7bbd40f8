package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lexvault/srs-api/internal/api/shared"
	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/platform/logger"
	"github.com/lexvault/srs-api/internal/service/review"
)

// Queue query defaults and bounds.
const (
	defaultQueueLimit   = 50
	maxQueueLimit       = 500
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReviewRequest represents the request body for submitting a review.
type SubmitReviewRequest struct {
	Rating string `json:"rating" validate:"required,oneof=again hard good easy"`
	Mode   string `json:"mode"   validate:"omitempty,oneof=scheduled cram"`
}

// SubmitReview handles POST /items/{id}/review requests.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Rating must be one of: again, hard, good, easy")
		return
	}

	mode := domain.StudyModeScheduled
	if req.Mode != "" {
		mode = domain.StudyMode(req.Mode)
	}

	result, err := h.reviewService.SubmitReview(r.Context(), itemID, domain.Rating(req.Rating), mode)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review submitted via API",
		slog.String("item_id", itemID.String()),
		slog.String("rating", req.Rating),
		slog.String("mode", string(mode)))

	shared.RespondWithJSON(w, r, http.StatusOK, SubmitReviewResponse{
		State:  stateToResponse(result.State),
		Record: recordToResponse(result.Record),
	})
}

// GetQueue handles GET /queue requests. Query parameters: mode (scheduled or
// cram, default scheduled) and limit.
func (h *ReviewHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	mode := domain.StudyModeScheduled
	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode = domain.StudyMode(raw)
	}

	limit := queryInt(r, "limit", defaultQueueLimit, maxQueueLimit)

	entries, err := h.reviewService.FetchDue(r.Context(), mode, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]QueueEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, queueEntryToResponse(entry))
	}

	log.Debug("queue fetched via API",
		slog.String("mode", string(mode)),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// PostponeRequest represents the request body for postponing an item.
type PostponeRequest struct {
	Days int `json:"days" validate:"required,gte=1"`
}

// PostponeItem handles POST /items/{id}/postpone requests.
func (h *ReviewHandler) PostponeItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req PostponeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Days must be at least 1")
		return
	}

	state, err := h.reviewService.PostponeReview(r.Context(), itemID, req.Days)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stateToResponse(state))
}

// GetHistory handles GET /items/{id}/history requests. Query parameters:
// limit and offset.
func (h *ReviewHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", defaultHistoryLimit, maxHistoryLimit)
	offset := queryInt(r, "offset", 0, 1<<30)

	records, total, err := h.reviewService.GetHistory(r.Context(), itemID, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	page := make([]ReviewRecordResponse, 0, len(records))
	for _, record := range records {
		page = append(page, recordToResponse(record))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{
		Records: page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *ReviewHandler) itemIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
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

// queryInt parses an integer query parameter, falling back to def and
// clamping to [1, max] (or [0, max] when def is 0).
func queryInt(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	floor := 1
	if def == 0 {
		floor = 0
	}
	if v < floor {
		return def
	}
	if v > max {
		return max
	}
	return v
}
