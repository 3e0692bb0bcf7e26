package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cbodonnell/sweeper/pkg/engine"
	"github.com/cbodonnell/sweeper/pkg/log"
	"github.com/cbodonnell/sweeper/pkg/repositories"
	"github.com/cbodonnell/sweeper/pkg/workers"
	"nhooyr.io/websocket"
)

// WSServer represents a WebSocket server.
type WSServer struct {
	port           int
	tls            *TLSConfig
	originPatterns []string
	repository     repositories.Repository
	saveReplayChan chan<- workers.SaveReplayRequest
	timerPeriod    time.Duration
	newEngine      func() engine.Engine
	connections    *ConnectionManager
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port int
	TLS  *TLSConfig
	// OriginPatterns lists the hosts allowed to connect from a browser.
	// Same-origin requests are always accepted.
	OriginPatterns []string
	// Repository is optional
	Repository     repositories.Repository
	SaveReplayChan chan<- workers.SaveReplayRequest
	TimerPeriod    time.Duration
	// NewEngine creates the engine of each connection. Defaults to a randomly seeded Matrix.
	NewEngine func() engine.Engine
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	newEngine := opts.NewEngine
	if newEngine == nil {
		newEngine = func() engine.Engine {
			return engine.NewMatrix(engine.NewMatrixOptions{})
		}
	}
	return &WSServer{
		port:           opts.Port,
		tls:            opts.TLS,
		originPatterns: opts.OriginPatterns,
		repository:     opts.Repository,
		saveReplayChan: opts.SaveReplayChan,
		timerPeriod:    opts.TimerPeriod,
		newEngine:      newEngine,
		connections:    NewConnectionManager(),
	}
}

// Handler returns the handler that upgrades requests to game connections
func (s *WSServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWSConnection)
	return mux
}

// Start starts the WebSocket server and blocks until the context is cancelled.
func (s *WSServer) Start(ctx context.Context) {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// Connections returns the number of open connections
func (s *WSServer) Connections() int {
	return s.connections.Count()
}

// handleWSConnection handles a WebSocket connection.
func (s *WSServer) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		log.Error("Failed to upgrade to WebSocket: %v", err)
		return
	}

	connection := NewConnection(conn, NewConnectionOptions{
		Engine:         s.newEngine(),
		Repository:     s.repository,
		SaveReplayChan: s.saveReplayChan,
		TimerPeriod:    s.timerPeriod,
	})
	id, err := s.connections.Add(connection)
	if err != nil {
		log.Error("Failed to register connection from %s: %v", r.RemoteAddr, err)
		conn.Close(websocket.StatusTryAgainLater, "server is full")
		return
	}
	log.Info("Connection %d opened from %s", id, r.RemoteAddr)

	defer func() {
		s.connections.Remove(id)
		conn.Close(websocket.StatusNormalClosure, "")
		log.Info("Connection %d closed", id)
	}()
	connection.Serve(r.Context())
}
