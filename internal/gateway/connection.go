package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-town/internal/messaging"
	"github.com/pixil98/go-town/internal/protocol"
)

var errSlowClient = errors.New("client outbound queue full")

// connection is one websocket client. Only the writer goroutine writes to
// conn once the session is running.
type connection struct {
	server *Server
	conn   *websocket.Conn
	out    chan []byte

	playerId    string
	snapshotSeq uint64
	cancel      context.CancelCauseFunc
}

func (c *connection) run(parent context.Context) error {
	join, err := c.handshake()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)
	c.cancel = cancel

	// Subscribe before joining so no broadcast after the snapshot is missed.
	unsub, err := c.server.sub.Subscribe(messaging.BroadcastSubject(c.server.town.Id()), c.enqueue)
	if err != nil {
		return fmt.Errorf("subscribing to town broadcasts: %w", err)
	}
	defer unsub()

	p := c.server.town.AddPlayer(join.UserName)
	c.playerId = p.Id
	defer func() {
		if err := c.server.town.RemovePlayer(c.playerId); err != nil {
			slog.Warn("removing player", "player", c.playerId, "error", err)
		}
	}()

	slog.InfoContext(ctx, "player joined", "player", p.Id, "user", p.UserName)

	snap := c.server.town.Snapshot()
	c.snapshotSeq = snap.Seq

	err = c.write(protocol.TypeInitialize, protocol.Initialize{
		UserId: p.Id,
		Town:   snap,
	})
	if err != nil {
		return fmt.Errorf("sending initialize: %w", err)
	}

	go c.writeLoop(ctx)
	go func() {
		<-ctx.Done()
		// Unblocks the reader.
		_ = c.conn.SetReadDeadline(time.Now())
	}()

	err = c.readLoop(ctx)
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return err
}

func (c *connection) handshake() (protocol.Join, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return protocol.Join{}, fmt.Errorf("reading join: %w", err)
	}

	env, err := c.decode(msg)
	if err == nil && env.Type != protocol.TypeJoin {
		err = fmt.Errorf("expected %s, got %s", protocol.TypeJoin, env.Type)
	}
	if err != nil {
		c.closeWith(websocket.ClosePolicyViolation, err.Error())
		return protocol.Join{}, err
	}

	return protocol.DecodePayload[protocol.Join](env)
}

func (c *connection) readLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.server.idleTimeout))
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading message: %w", err)
		}

		if err := c.handle(msg); err != nil {
			slog.DebugContext(ctx, "rejected client message", "player", c.playerId, "error", err)
			c.sendError(err)
		}
	}
}

func (c *connection) handle(msg []byte) error {
	env, err := c.decode(msg)
	if err != nil {
		return err
	}

	switch env.Type {
	case protocol.TypePlayerMovement:
		mv, err := protocol.DecodePayload[protocol.PlayerMovement](env)
		if err != nil {
			return err
		}
		_, err = c.server.town.MovePlayer(c.playerId, mv.Location)
		return err

	case protocol.TypeInteractableUpdate:
		m, err := protocol.DecodeAreaModel(env)
		if err != nil {
			return err
		}
		return c.server.town.UpdateArea(m)

	default:
		return fmt.Errorf("unexpected message type %s", env.Type)
	}
}

func (c *connection) decode(msg []byte) (protocol.Envelope, error) {
	if err := protocol.ValidateClientMessage(msg); err != nil {
		return protocol.Envelope{}, err
	}
	return protocol.DecodeEnvelope(msg)
}

// enqueue hands a frame to the writer without blocking the broker. A client
// that cannot keep up is disconnected.
func (c *connection) enqueue(data []byte) {
	select {
	case c.out <- data:
	default:
		c.cancel(errSlowClient)
	}
}

func (c *connection) sendError(err error) {
	data, encErr := protocol.Encode(protocol.TypeError, protocol.ErrorMessage{Message: err.Error()})
	if encErr != nil {
		return
	}
	c.enqueue(data)
}

func (c *connection) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-c.out:
			if c.stale(b) {
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				c.cancel(fmt.Errorf("writing message: %w", err))
				return
			}
		}
	}
}

// stale reports whether b is a broadcast the initialize snapshot already
// reflects. Frames queued between subscribing and taking the snapshot are
// dropped here.
func (c *connection) stale(b []byte) bool {
	var hdr struct {
		Seq uint64 `json:"seq"`
	}
	if err := json.Unmarshal(b, &hdr); err != nil {
		return false
	}
	return hdr.Seq != 0 && hdr.Seq <= c.snapshotSeq
}

func (c *connection) write(typ string, payload any) error {
	data, err := protocol.Encode(typ, payload)
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *connection) closeWith(code int, reason string) {
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
}
