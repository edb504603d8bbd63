package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"reelist/internal/catalog"
)

// CatalogHandler proxies genre and movie listings so the TMDB key stays
// server-side.
type CatalogHandler struct {
	Client *catalog.Client
}

type catalogMovieDTO struct {
	catalog.Movie
	PosterURL   string `json:"poster_url,omitempty"`
	BackdropURL string `json:"backdrop_url,omitempty"`
}

func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Client.Genres(r.Context())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(genres)
}

func (h *CatalogHandler) MoviesByGenre(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("genre"))
	genreID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || genreID <= 0 {
		http.Error(w, "invalid genre", http.StatusBadRequest)
		return
	}

	movies, err := h.Client.MoviesByGenre(r.Context(), genreID)
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	out := make([]catalogMovieDTO, 0, len(movies))
	for _, m := range movies {
		out = append(out, catalogMovieDTO{
			Movie:       m,
			PosterURL:   h.Client.ImageURL(m.PosterPath, "w500"),
			BackdropURL: h.Client.ImageURL(m.BackdropPath, "original"),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
