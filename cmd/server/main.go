package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jonludena/friendbook/internal/auth"
	"github.com/jonludena/friendbook/internal/graph"
	"github.com/jonludena/friendbook/internal/middleware"
	"github.com/jonludena/friendbook/internal/storage/sqlite"
	"github.com/jonludena/friendbook/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Required environment variable not set", "key", key)
		os.Exit(1)
	}
	return value
}

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/friendbook.db")
	jwtSecret := mustEnv("JWT_SECRET")
	appPassword := mustEnv("APP_PASSWORD")

	// Initialize SQLite storage
	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret)
	authenticator, err := auth.NewSharedSecretAuthenticator(store, appPassword)
	if err != nil {
		slog.Error("Failed to initialize authenticator", "error", err)
		os.Exit(1)
	}

	schema, err := graphql.ParseSchema(graph.Schema, graph.NewResolver(store, jwtManager, authenticator))
	if err != nil {
		slog.Error("Failed to parse GraphQL schema", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	identity := middleware.WithIdentity(jwtManager, store)
	mux.Handle("/graphql", identity(&relay.Handler{Schema: schema}))
	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c allows HTTP/2 without TLS for clients that want it
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("GraphQL server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s/graphql", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
