package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// StoreDriver selects the watchlist document store: "postgres" or "mongo".
	StoreDriver string
	DatabaseURL string
	MongoURL    string
	MongoDB     string

	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string

	JWTSecret string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		StoreDriver:          getenv("WATCHLIST_STORE", "postgres"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		MongoURL:             getenv("MONGO_URL", ""),
		MongoDB:              getenv("MONGO_DATABASE", "reelist"),
		TMDBAPIKey:           mustGetenv("TMDB_API_KEY"),
		TMDBBaseURL:          getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageBaseURL:     getenv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.JWTSecret = mustGetenv("JWT_SECRET")
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
