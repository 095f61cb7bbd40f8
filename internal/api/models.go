package api

import (
	"time"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/service/items"
)

// ItemResponse represents the response data for a vocabulary item.
type ItemResponse struct {
	ID         string    `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MemoryStateResponse represents the scheduling snapshot for an item.
type MemoryStateResponse struct {
	ItemID         string     `json:"item_id"`
	Stability      float64    `json:"stability"`
	Difficulty     float64    `json:"difficulty"`
	Retrievability float64    `json:"retrievability"`
	Due            time.Time  `json:"due"`
	State          string     `json:"state"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	ReviewCount    int        `json:"review_count"`
}

// ItemWithStateResponse pairs an item with its memory state.
type ItemWithStateResponse struct {
	Item  ItemResponse        `json:"item"`
	State MemoryStateResponse `json:"state"`
}

// QueueEntryResponse is one entry in the study queue.
type QueueEntryResponse struct {
	ItemID    string    `json:"item_id"`
	Due       time.Time `json:"due"`
	Stability float64   `json:"stability"`
	State     string    `json:"state"`
}

// ReviewRecordResponse is one entry in an item's review history.
type ReviewRecordResponse struct {
	ID                   string    `json:"id"`
	ItemID               string    `json:"item_id"`
	Rating               string    `json:"rating"`
	Mode                 string    `json:"mode"`
	ReviewedAt           time.Time `json:"reviewed_at"`
	ElapsedDays          float64   `json:"elapsed_days"`
	ScheduledDays        int       `json:"scheduled_days"`
	StabilityBefore      float64   `json:"stability_before"`
	StabilityAfter       float64   `json:"stability_after"`
	DifficultyBefore     float64   `json:"difficulty_before"`
	DifficultyAfter      float64   `json:"difficulty_after"`
	RetrievabilityBefore float64   `json:"retrievability_before"`
	RetrievabilityAfter  float64   `json:"retrievability_after"`
	StateBefore          string    `json:"state_before"`
	StateAfter           string    `json:"state_after"`
}

// SubmitReviewResponse is returned by the submit-review endpoint.
type SubmitReviewResponse struct {
	State  MemoryStateResponse  `json:"state"`
	Record ReviewRecordResponse `json:"record"`
}

// HistoryResponse is one page of an item's review history. Total is the
// full number of logged reviews for the item, independent of paging.
type HistoryResponse struct {
	Records []ReviewRecordResponse `json:"records"`
	Total   int                    `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID.String(),
		Term:       item.Term,
		Definition: item.Definition,
		Notes:      item.Notes,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

func stateToResponse(state *domain.MemoryState) MemoryStateResponse {
	return MemoryStateResponse{
		ItemID:         state.ItemID.String(),
		Stability:      state.Stability,
		Difficulty:     state.Difficulty,
		Retrievability: state.Retrievability,
		Due:            state.Due,
		State:          string(state.State),
		LastReviewedAt: state.LastReviewedAt,
		ReviewCount:    state.ReviewCount,
	}
}

func itemWithStateToResponse(pair *items.ItemWithState) ItemWithStateResponse {
	return ItemWithStateResponse{
		Item:  itemToResponse(pair.Item),
		State: stateToResponse(pair.State),
	}
}

func queueEntryToResponse(entry domain.QueueEntry) QueueEntryResponse {
	return QueueEntryResponse{
		ItemID:    entry.ItemID.String(),
		Due:       entry.Due,
		Stability: entry.Stability,
		State:     string(entry.State),
	}
}

func recordToResponse(record *domain.ReviewRecord) ReviewRecordResponse {
	return ReviewRecordResponse{
		ID:                   record.ID.String(),
		ItemID:               record.ItemID.String(),
		Rating:               string(record.Rating),
		Mode:                 string(record.Mode),
		ReviewedAt:           record.ReviewedAt,
		ElapsedDays:          record.ElapsedDays,
		ScheduledDays:        record.ScheduledDays,
		StabilityBefore:      record.StabilityBefore,
		StabilityAfter:       record.StabilityAfter,
		DifficultyBefore:     record.DifficultyBefore,
		DifficultyAfter:      record.DifficultyAfter,
		RetrievabilityBefore: record.RetrievabilityBefore,
		RetrievabilityAfter:  record.RetrievabilityAfter,
		StateBefore:          string(record.StateBefore),
		StateAfter:           string(record.StateAfter),
	}
}
