package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/sweeper/pkg/api/handlers"
	"github.com/cbodonnell/sweeper/pkg/api/middleware"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/repositories"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port int
	TLS  *TLSConfig
	// AllowOrigins lists the origins allowed by CORS
	AllowOrigins []string
	Repository   repositories.Repository
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	router := mux.NewRouter()
	router.Use(middleware.NewLoggingMiddleware())
	router.Use(middleware.NewCORSMiddleware(opts.AllowOrigins))

	router.HandleFunc("/levels/{level}/games", handlers.HandleListGames(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/levels/{level}/highscore", handlers.HandleIsHighscore(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/games/{gameID}", handlers.HandleGetGame(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/games/{gameID}/replay", handlers.HandleGetReplay(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/games/{gameID}/steps", handlers.HandleGetSteps(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Handler returns the router serving the API
func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
