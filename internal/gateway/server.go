package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/town"
)

const (
	DefaultQueueSize   = 64
	DefaultIdleTimeout = 60 * time.Second

	handshakeTimeout = 5 * time.Second
	writeTimeout     = 5 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// Town is the part of the town registry a connection drives.
type Town interface {
	Id() string
	AddPlayer(userName string) town.Player
	RemovePlayer(playerId string) error
	MovePlayer(playerId string, loc town.Location) (town.Player, error)
	UpdateArea(model calendar.AreaModel) error
	Snapshot() town.Snapshot
}

// Subscriber provides the ability to subscribe to message subjects
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Server accepts websocket clients for one town.
type Server struct {
	town Town
	sub  Subscriber

	addr           string
	queueSize      int
	idleTimeout    time.Duration
	allowedOrigins []string
	ready          <-chan struct{}

	upgrader websocket.Upgrader
}

func NewServer(t Town, sub Subscriber, opts ...ServerOpt) *Server {
	s := &Server{
		town:        t,
		sub:         sub,
		addr:        ":8081",
		queueSize:   DefaultQueueSize,
		idleTimeout: DefaultIdleTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  16 * 1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     s.checkOrigin,
	}

	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	return slices.Contains(s.allowedOrigins, r.Header.Get("Origin"))
}

// Handler routes websocket upgrades at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Start serves clients until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.ready != nil {
		select {
		case <-s.ready:
		case <-ctx.Done():
			return nil
		}
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: handshakeTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.InfoContext(ctx, "gateway listening", "addr", ln.Addr().String(), "town", s.town.Id())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving gateway: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down gateway: %w", err)
	}
	return nil
}

func (s *Server) serveWs(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "upgrading connection", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	c := &connection{
		server: s,
		conn:   conn,
		out:    make(chan []byte, s.queueSize),
	}
	if err := c.run(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "client session", "remote", conn.RemoteAddr().String(), "error", err)
	}
}
