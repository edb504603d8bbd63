package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"reelist/internal/auth"
	"reelist/internal/watchlist"

	"github.com/go-chi/chi/v5"
)

type WatchlistHandler struct {
	Svc *watchlist.Service
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.OwnerIDFromContext(r.Context())

	entries, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		writeWatchlistError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.OwnerIDFromContext(r.Context())

	var req watchlist.MovieInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	entry, err := h.Svc.Add(r.Context(), uid, req)
	if err != nil {
		writeWatchlistError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(entry)
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.OwnerIDFromContext(r.Context())

	movieID, err := parseMovieID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entries, err := h.Svc.Remove(r.Context(), uid, movieID)
	if err != nil {
		writeWatchlistError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

type editNoteReq struct {
	Note string `json:"note"`
}

func (h *WatchlistHandler) EditNote(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.OwnerIDFromContext(r.Context())

	movieID, err := parseMovieID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req editNoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	entry, err := h.Svc.EditNote(r.Context(), uid, movieID, req.Note)
	if err != nil {
		writeWatchlistError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}

func parseMovieID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid movie id")
	}
	return id, nil
}

// Each error kind gets its own status so the UI can show a distinct
// notification.
func writeWatchlistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, watchlist.ErrDuplicateEntry):
		http.Error(w, "already in watchlist", http.StatusConflict)
	case errors.Is(err, watchlist.ErrEntryNotFound):
		http.Error(w, "not in watchlist", http.StatusNotFound)
	case errors.Is(err, watchlist.ErrConflict):
		http.Error(w, "watchlist changed, retry", http.StatusConflict)
	case errors.Is(err, watchlist.ErrStorageUnavailable):
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "invalid input", http.StatusBadRequest)
	}
}
