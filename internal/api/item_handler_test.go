package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexvault/srs-api/internal/domain"
	"github.com/lexvault/srs-api/internal/service/items"
)

// mockItemService implements items.ItemService with canned responses.
type mockItemService struct {
	created   *items.ItemWithState
	createErr error

	got    *items.ItemWithState
	getErr error

	deleteErr error
}

func (m *mockItemService) CreateItem(
	ctx context.Context,
	term, definition, notes string,
) (*items.ItemWithState, error) {
	return m.created, m.createErr
}

func (m *mockItemService) GetItem(ctx context.Context, id uuid.UUID) (*items.ItemWithState, error) {
	return m.got, m.getErr
}

func (m *mockItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return m.deleteErr
}

func newItemRouter(svc items.ItemService) http.Handler {
	h := NewItemHandler(svc, nil)
	r := chi.NewRouter()
	r.Post("/items", h.CreateItem)
	r.Get("/items/{id}", h.GetItem)
	r.Delete("/items/{id}", h.DeleteItem)
	return r
}

func sampleItemWithState(t *testing.T) *items.ItemWithState {
	t.Helper()

	item, err := domain.NewItem("ineffable", "too great to be expressed in words", "")
	require.NoError(t, err)
	state, err := domain.NewMemoryState(item.ID)
	require.NoError(t, err)
	return &items.ItemWithState{Item: item, State: state}
}

func TestCreateItemEndpoint(t *testing.T) {
	t.Parallel()

	pair := sampleItemWithState(t)
	svc := &mockItemService{created: pair}
	router := newItemRouter(svc)

	body := bytes.NewBufferString(`{"term":"ineffable","definition":"too great to be expressed in words"}`)
	req := httptest.NewRequest(http.MethodPost, "/items", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp ItemWithStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, pair.Item.ID.String(), resp.Item.ID)
	assert.Equal(t, "ineffable", resp.Item.Term)
	assert.Equal(t, "new", resp.State.State)
	assert.Equal(t, 0, resp.State.ReviewCount)
}

func TestCreateItemEndpointValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing term", body: `{"definition":"a definition"}`},
		{name: "missing definition", body: `{"term":"a term"}`},
		{name: "malformed body", body: `not json`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newItemRouter(&mockItemService{})
			req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestGetItemEndpoint(t *testing.T) {
	t.Parallel()

	pair := sampleItemWithState(t)
	svc := &mockItemService{got: pair}
	router := newItemRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/items/"+pair.Item.ID.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp ItemWithStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, pair.Item.Term, resp.Item.Term)
}

func TestGetItemEndpointNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockItemService{getErr: items.ErrItemNotFound}
	router := newItemRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/items/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Item not found", resp["error"])
}

func TestDeleteItemEndpoint(t *testing.T) {
	t.Parallel()

	router := newItemRouter(&mockItemService{})

	req := httptest.NewRequest(http.MethodDelete, "/items/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestDeleteItemEndpointNotFound(t *testing.T) {
	t.Parallel()

	router := newItemRouter(&mockItemService{deleteErr: items.ErrItemNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/items/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
