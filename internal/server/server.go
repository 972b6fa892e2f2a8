package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"

	"github.com/nickisanders/CPEService/internal/config"
	"github.com/nickisanders/CPEService/internal/resolver"
)

// Server hosts the GraphQL query surface over HTTP.
type Server struct {
	config *config.ServerConfig
	http   *http.Server
	logger *zap.Logger
}

// New parses the schema against the root resolver and wires the routes.
func New(cfg *config.ServerConfig, root *resolver.Resolver, logger *zap.Logger) (*Server, error) {
	schema, err := graphql.ParseSchema(resolver.Schema, root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}

	router := mux.NewRouter()
	router.Handle("/graphql", &relay.Handler{Schema: schema}).Methods(http.MethodPost)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return &Server{
		config: cfg,
		http: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: router,
		},
		logger: logger,
	}, nil
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("GraphQL server listening",
			zap.String("addr", s.config.ListenAddr))

		err := s.http.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	s.logger.Info("GraphQL server stopped")
	return nil
}
