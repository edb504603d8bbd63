package http

import (
	"net/http"

	"reelist/internal/auth"
	"reelist/internal/catalog"
	"reelist/internal/config"
	"reelist/internal/http/handler"
	mw "reelist/internal/http/middleware"
	"reelist/internal/watchlist"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, store watchlist.Store, cat *catalog.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	ch := &handler.CatalogHandler{Client: cat}
	r.Route("/catalog", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/genres", ch.Genres)
		r.Get("/movies", ch.MoviesByGenre)
	})

	wlSvc := &watchlist.Service{Store: store}
	wh := &handler.WatchlistHandler{Svc: wlSvc}
	r.Route("/watchlist", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/", wh.List)
		r.Post("/", wh.Add)

		r.Delete("/{movieID}", wh.Remove)
		r.Put("/{movieID}/note", wh.EditNote)
	})

	return r
}
