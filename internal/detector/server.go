// Package detector receives hand readings from an external landmark detector
// over a WebSocket and exposes the most recent one as a gesture.Source.
package detector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/gesture"
)

// DefaultStaleAfter is how long a reading stays current without a refresh
const DefaultStaleAfter = 500 * time.Millisecond

// CommandHandler queues a remote command and reports whether it was accepted
type CommandHandler func(game.Command) bool

// Server accepts detector connections and latches the latest reading
type Server struct {
	addr       string
	upgrader   websocket.Upgrader
	clock      quartz.Clock
	staleAfter time.Duration
	onCommand  CommandHandler
	logger     *log.Logger

	mu          sync.RWMutex
	latest      *gesture.Reading
	receivedAt  time.Time
	connections map[*Connection]bool
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used to age readings
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithStaleAfter sets how long a reading stays current
func WithStaleAfter(d time.Duration) Option {
	return func(s *Server) { s.staleAfter = d }
}

// WithCommandHandler routes command messages to fn
func WithCommandHandler(fn CommandHandler) Option {
	return func(s *Server) { s.onCommand = fn }
}

// NewServer creates a detector server listening on addr
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			// detectors run locally, usually from a browser page
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
		},
		clock:       quartz.NewReal(),
		staleAfter:  DefaultStaleAfter,
		logger:      logger.WithPrefix("detector"),
		connections: make(map[*Connection]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes served by the detector
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting detector server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("detector server: %w", err)
	case <-ctx.Done():
	}

	s.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown detector server: %w", err)
	}
	return nil
}

// Sample returns the latest reading if it is still fresh
func (s *Server) Sample() *gesture.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil || s.clock.Since(s.receivedAt) > s.staleAfter {
		return nil
	}
	r := *s.latest
	return &r
}

// Connected returns the number of open detector connections
func (s *Server) Connected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) record(r *gesture.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = r
	s.receivedAt = s.clock.Now()
}

func (s *Server) command(cmd game.Command) bool {
	if s.onCommand == nil {
		return false
	}
	return s.onCommand(cmd)
}

func (s *Server) register(c *Connection) {
	s.mu.Lock()
	s.connections[c] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Detector connected", "total", total)
}

func (s *Server) unregister(c *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[c]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.connections, c)
	total := len(s.connections)
	if total == 0 {
		// nobody is watching the camera any more
		s.latest = nil
	}
	s.mu.Unlock()

	_ = c.Close()
	s.logger.Info("Detector disconnected", "total", total)
}

func (s *Server) closeAll() {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.RUnlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newConnection(conn, s, s.logger)
	s.register(c)
	c.Start()

	go func() {
		<-c.ctx.Done()
		s.unregister(c)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
