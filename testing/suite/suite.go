package suite

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gameroom-backend/internal/repository"
	"github.com/rocketscienceinc/gameroom-backend/internal/usecase"
	"github.com/rocketscienceinc/gameroom-backend/transport/websocket"
)

const maxWaitDuration = 30 * time.Second

// Suite - an in-process server instance for integration tests: the real
// repository, room manager and websocket hub mounted on an httptest listener.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	BaseURL string
	WSURL   string
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	roomRepo := repository.NewRoomRepository()
	hub := websocket.NewHub(logger)
	roomManager := usecase.NewRoomManager(logger, roomRepo, hub)
	server := websocket.New(logger, roomManager, hub)

	httpServer := httptest.NewServer(server.Routes(t.TempDir()))
	t.Cleanup(httpServer.Close)

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		BaseURL: httpServer.URL,
		WSURL:   "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws",
	}
}

// Dial - opens a websocket client connection to the suite's server.
func (that *Suite) Dial() *gorilla.Conn {
	that.Helper()

	conn, resp, err := gorilla.DefaultDialer.Dial(that.WSURL, nil)
	if err != nil {
		that.Fatalf("could not dial websocket: %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	that.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}
