package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelist/internal/auth"
	"reelist/internal/http/handler"
	"reelist/internal/watchlist"
)

type memStore struct {
	docs map[string]watchlist.Document
	err  error
}

func (m *memStore) Fetch(_ context.Context, ownerID string) (watchlist.Document, error) {
	if m.err != nil {
		return watchlist.Document{}, m.err
	}
	doc, ok := m.docs[ownerID]
	if !ok {
		return watchlist.Document{}, watchlist.ErrNoDocument
	}
	return doc, nil
}

func (m *memStore) Replace(_ context.Context, ownerID string, entries []watchlist.Entry, expectedVersion uint64) (watchlist.Document, error) {
	if m.err != nil {
		return watchlist.Document{}, m.err
	}
	cur := m.docs[ownerID]
	if cur.Version != expectedVersion {
		return watchlist.Document{}, watchlist.ErrConflict
	}
	next := watchlist.Document{OwnerID: ownerID, Entries: entries, Version: expectedVersion + 1}
	m.docs[ownerID] = next
	return next, nil
}

func newTestRouter(store watchlist.Store) (http.Handler, string) {
	jwtSvc := auth.NewJWT("test-secret")
	token, _ := jwtSvc.Sign("owner-1")

	wh := &handler.WatchlistHandler{Svc: &watchlist.Service{Store: store}}
	r := chi.NewRouter()
	r.Route("/watchlist", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))
		r.Get("/", wh.List)
		r.Post("/", wh.Add)
		r.Delete("/{movieID}", wh.Remove)
		r.Put("/{movieID}/note", wh.EditNote)
	})
	return r, token
}

func do(t *testing.T, h http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestWatchlistFlowOverHTTP(t *testing.T) {
	store := &memStore{docs: map[string]watchlist.Document{}}
	r, token := newTestRouter(store)

	// empty list for a fresh owner
	rec := do(t, r, token, http.MethodGet, "/watchlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	// add
	rec = do(t, r, token, http.MethodPost, "/watchlist",
		`{"id":27,"title":"Amelie","poster_path":"/a.jpg","release_date":"2001-04-25","vote_average":7.9,"overview":"whimsy"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry watchlist.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, int64(27), entry.ID)
	assert.Equal(t, "Amelie", entry.Title)
	assert.False(t, entry.AddedAt.IsZero())

	// duplicate add → 409
	rec = do(t, r, token, http.MethodPost, "/watchlist", `{"id":27,"title":"Amelie"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// edit note
	rec = do(t, r, token, http.MethodPut, "/watchlist/27/note", `{"note":"Rewatch in French"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	require.NotNil(t, entry.UserNotes)
	assert.Equal(t, "Rewatch in French", *entry.UserNotes)

	// remove
	rec = do(t, r, token, http.MethodDelete, "/watchlist/27", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	// remove again → 404
	rec = do(t, r, token, http.MethodDelete, "/watchlist/27", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWatchlistValidation(t *testing.T) {
	store := &memStore{docs: map[string]watchlist.Document{}}
	r, token := newTestRouter(store)

	// movie without id/title rejected before any write
	rec := do(t, r, token, http.MethodPost, "/watchlist", `{"overview":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, token, http.MethodPost, "/watchlist", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, token, http.MethodDelete, "/watchlist/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWatchlistStorageUnavailable(t *testing.T) {
	store := &memStore{err: watchlist.ErrStorageUnavailable}
	r, token := newTestRouter(store)

	rec := do(t, r, token, http.MethodGet, "/watchlist", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWatchlistRequiresAuth(t *testing.T) {
	store := &memStore{docs: map[string]watchlist.Document{}}
	r, _ := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
