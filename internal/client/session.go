package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-town/internal/calendar"
	"github.com/pixil98/go-town/internal/mirror"
	"github.com/pixil98/go-town/internal/protocol"
	"github.com/pixil98/go-town/internal/town"
)

const writeTimeout = 5 * time.Second

// Session is a client's connection to one town. It keeps a mirror of every
// calendar area and applies each snapshot the server sends, in delivery
// order.
//
// Mirrors are only touched while the session lock is held. Observers run
// with the lock held and must not call Update.
type Session struct {
	conn *websocket.Conn

	userId string
	townId string

	mu          sync.Mutex
	controllers map[string]*mirror.CalendarAreaController
	players     map[string]town.Player

	onAreaAdded   func(*mirror.CalendarAreaController)
	onServerError func(string)

	writeMu sync.Mutex
}

// Dial connects to a town gateway, joins as userName and loads the initial
// town state.
func Dial(ctx context.Context, url, userName string, opts ...SessionOpt) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}

	s := &Session{
		conn:        conn,
		controllers: make(map[string]*mirror.CalendarAreaController),
		players:     make(map[string]town.Player),
		onServerError: func(msg string) {
			slog.Warn("server rejected message", "message", msg)
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.join(ctx, userName); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// join runs the handshake under ctx: its deadline bounds the wait for
// initialize and cancelling it aborts the read.
func (s *Session) join(ctx context.Context, userName string) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = s.conn.SetReadDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})

	err := s.handshake(userName)
	stopped := stop()
	if ctx.Err() != nil && (err != nil || !stopped) {
		return fmt.Errorf("joining: %w", ctx.Err())
	}
	if err != nil {
		return err
	}

	_ = s.conn.SetReadDeadline(time.Time{})
	return nil
}

func (s *Session) handshake(userName string) error {
	if err := s.send(protocol.TypeJoin, protocol.Join{UserName: userName}); err != nil {
		return fmt.Errorf("sending join: %w", err)
	}

	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("reading initialize: %w", err)
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return err
	}
	if env.Type != protocol.TypeInitialize {
		return fmt.Errorf("expected %s, got %s", protocol.TypeInitialize, env.Type)
	}
	initMsg, err := protocol.DecodePayload[protocol.Initialize](env)
	if err != nil {
		return err
	}

	s.userId = initMsg.UserId
	s.townId = initMsg.Town.TownId

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range initMsg.Town.Players {
		s.players[p.Id] = p
	}
	for _, m := range initMsg.Town.Interactables {
		s.applyArea(m)
	}
	return nil
}

// UserId is the player id the server assigned to this session.
func (s *Session) UserId() string {
	return s.userId
}

func (s *Session) TownId() string {
	return s.townId
}

// Run applies server messages until ctx is cancelled or the connection
// closes.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("reading message: %w", err)
		}
		if err := s.handle(msg); err != nil {
			slog.WarnContext(ctx, "handling server message", "error", err)
		}
	}
}

func (s *Session) handle(msg []byte) error {
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return err
	}

	switch env.Type {
	case protocol.TypeInteractableUpdate:
		m, err := protocol.DecodeAreaModel(env)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.applyArea(m)
		s.mu.Unlock()

	case protocol.TypePlayerJoined, protocol.TypePlayerMoved:
		p, err := protocol.DecodePayload[town.Player](env)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.players[p.Id] = p
		s.mu.Unlock()

	case protocol.TypePlayerDisconnect:
		p, err := protocol.DecodePayload[town.Player](env)
		if err != nil {
			return err
		}
		s.mu.Lock()
		delete(s.players, p.Id)
		s.mu.Unlock()

	case protocol.TypeError:
		e, err := protocol.DecodePayload[protocol.ErrorMessage](env)
		if err != nil {
			return err
		}
		s.onServerError(e.Message)

	default:
		return fmt.Errorf("unexpected message type %s", env.Type)
	}

	return nil
}

func (s *Session) applyArea(m calendar.AreaModel) {
	if c, ok := s.controllers[m.Id]; ok {
		c.UpdateFrom(m)
		return
	}

	c := mirror.NewCalendarAreaController(m)
	s.controllers[m.Id] = c
	if s.onAreaAdded != nil {
		s.onAreaAdded(c)
	}
}

// Area returns a snapshot of the mirrored area.
func (s *Session) Area(areaId string) (calendar.AreaModel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.controllers[areaId]
	if !ok {
		return calendar.AreaModel{}, false
	}
	return c.ToModel(), true
}

// AreaIds returns the ids of every mirrored area.
func (s *Session) AreaIds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.controllers))
	for id := range s.controllers {
		ids = append(ids, id)
	}
	return ids
}

// Player returns the last known state of a player.
func (s *Session) Player(playerId string) (town.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[playerId]
	return p, ok
}

// Update applies fn to an area's mirror as an optimistic local change, then
// submits the resulting snapshot to the server.
func (s *Session) Update(areaId string, fn func(c *mirror.CalendarAreaController)) error {
	s.mu.Lock()
	c, ok := s.controllers[areaId]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownArea, areaId)
	}
	fn(c)
	model := c.ToModel()
	s.mu.Unlock()

	return s.EmitAreaUpdate(model)
}

// EmitAreaUpdate submits an area snapshot to the server.
func (s *Session) EmitAreaUpdate(model calendar.AreaModel) error {
	return s.send(protocol.TypeInteractableUpdate, model)
}

// Move reports a new location to the server.
func (s *Session) Move(loc town.Location) error {
	return s.send(protocol.TypePlayerMovement, protocol.PlayerMovement{Location: loc})
}

func (s *Session) send(typ string, payload any) error {
	data, err := protocol.Encode(typ, payload)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close disposes every mirror and closes the connection.
func (s *Session) Close() error {
	s.mu.Lock()
	for _, c := range s.controllers {
		c.Dispose()
	}
	s.mu.Unlock()

	s.writeMu.Lock()
	err := s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	s.writeMu.Unlock()

	return errors.Join(err, s.conn.Close())
}
