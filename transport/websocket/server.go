package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type roomManager interface {
	Connect(clientID string)
	CreateRoom(name string) error
	JoinRoom(name, clientID string) (string, error)
	MakeMove(roomName, clientID string, cell int)
	Disconnect(clientID string)
	Rooms() []entity.Summary
}

type Server struct {
	logger   *slog.Logger
	manager  roomManager
	hub      *Hub
	upgrader websocket.Upgrader

	handlers map[string]func(c *client, msg *Message)
}

func New(logger *slog.Logger, manager roomManager, hub *Hub) *Server {
	server := &Server{
		logger:  logger,
		manager: manager,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]func(*client, *Message)),
	}

	server.handlers[ActionCreateRoom] = server.handleCreateRoom
	server.handlers[ActionJoinRoom] = server.handleJoinRoom
	server.handlers[ActionMakeMove] = server.handleMakeMove
	server.handlers[ActionRequestRooms] = server.handleRequestRooms

	return server
}

// Routes - the single HTTP surface: static assets at /, a health check at
// /ping and the event channel at /ws.
func (that *Server) Routes(staticDir string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	mux.HandleFunc("/ping", handlers.PingHandler)
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - serves Routes on the configured port. Blocks until ctx is canceled
// or the listener fails.
func (that *Server) Start(ctx context.Context, port, staticDir string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Routes(staticDir),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}

// serveWS - upgrades the connection, assigns it a session id and runs the
// pumps. The disconnect cleanup fires exactly once, when the read pump exits.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn)
	that.hub.register(c)

	go that.writePump(c)

	that.manager.Connect(c.id)

	log.Info("WebSocket connection established", "clientID", c.id)

	that.readPump(c)

	that.manager.Disconnect(c.id)
	that.hub.unregister(c)
}
