package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelist/internal/catalog"
	"reelist/internal/http/handler"
)

func newCatalogHandler(t *testing.T, upstream http.HandlerFunc) *handler.CatalogHandler {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	client, err := catalog.New("key", server.URL, "https://img.example.com/t/p")
	require.NoError(t, err)
	return &handler.CatalogHandler{Client: client}
}

func TestCatalogGenres(t *testing.T) {
	h := newCatalogHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"genres":[{"id":35,"name":"Comedy"}]}`))
	})

	rec := httptest.NewRecorder()
	h.Genres(rec, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var genres []catalog.Genre
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &genres))
	require.Len(t, genres, 1)
	assert.Equal(t, "Comedy", genres[0].Name)
}

func TestCatalogMoviesIncludesImageURLs(t *testing.T) {
	h := newCatalogHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":27,"title":"Amelie","poster_path":"/a.jpg"}]}`))
	})

	rec := httptest.NewRecorder()
	h.MoviesByGenre(rec, httptest.NewRequest(http.MethodGet, "/catalog/movies?genre=35", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		ID        int64  `json:"id"`
		PosterURL string `json:"poster_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "https://img.example.com/t/p/w500/a.jpg", out[0].PosterURL)
}

func TestCatalogMoviesBadGenre(t *testing.T) {
	h := newCatalogHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	h.MoviesByGenre(rec, httptest.NewRequest(http.MethodGet, "/catalog/movies?genre=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogUpstreamFailure(t *testing.T) {
	h := newCatalogHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := httptest.NewRecorder()
	h.Genres(rec, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
