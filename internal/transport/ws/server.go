package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"endgen.ai/internal/bridge"
	"endgen.ai/internal/protocol"
	"endgen.ai/internal/sim/end"
)

const (
	writeWait = 5 * time.Second
	readWait  = 60 * time.Second
	outQueue  = 64
)

type Config struct {
	// MaxHandlesPerConn caps handles one connection may hold at once.
	MaxHandlesPerConn int
	ReadLimit         int64
}

type Server struct {
	reg *bridge.Registry
	log *log.Logger
	cfg Config

	upgrader websocket.Upgrader
	conns    atomic.Int64
	served   atomic.Uint64
}

func NewServer(reg *bridge.Registry, cfg Config, logger *log.Logger) *Server {
	if cfg.MaxHandlesPerConn <= 0 {
		cfg.MaxHandlesPerConn = 64
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 4096
	}
	return &Server{
		reg: reg,
		log: logger,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// Conns is the number of open connections.
func (s *Server) Conns() int64 { return s.conns.Load() }

// Served counts requests answered across all connections.
func (s *Server) Served() uint64 { return s.served.Load() }

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.SetReadLimit(s.cfg.ReadLimit)

		s.conns.Add(1)
		defer s.conns.Add(-1)

		sess := &session{srv: s, owned: map[bridge.Handle]struct{}{}}
		// Handles die with the connection that created them.
		defer sess.destroyAll()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan []byte, outQueue)
		writeErr := make(chan error, 1)

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						writeErr <- err
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readWait))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			b, err := json.Marshal(sess.handle(msg))
			if err != nil {
				b, _ = json.Marshal(protocol.NewError("", protocol.ErrInternal, err.Error()))
			}
			s.served.Add(1)
			select {
			case out <- b:
			case <-ctx.Done():
			}
			if ctx.Err() != nil {
				break
			}
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

		// Best-effort wait for the writer to stop so it doesn't outlive conn.
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// session is the per-connection handle table. Only the reader goroutine
// touches it.
type session struct {
	srv   *Server
	owned map[bridge.Handle]struct{}
}

func (c *session) handle(msg []byte) any {
	base, req, err := protocol.DecodeRequest(msg)
	if err != nil {
		return protocol.NewError(base.ReqID, protocol.ErrProtoBadRequest, err.Error())
	}

	switch m := req.(type) {
	case *protocol.CreateMsg:
		seed, err := end.ParseSeed(m.Seed)
		if err != nil {
			return protocol.NewError(m.ReqID, protocol.ErrBadRequest, err.Error())
		}
		if len(c.owned) >= c.srv.cfg.MaxHandlesPerConn {
			return protocol.NewError(m.ReqID, protocol.ErrLimit, fmt.Sprintf("connection holds %d handles", len(c.owned)))
		}
		h, err := c.srv.reg.Create(seed)
		if err != nil {
			return c.fail(m.ReqID, err)
		}
		c.owned[h] = struct{}{}
		return protocol.CreatedMsg{
			Type:            protocol.TypeCreated,
			ProtocolVersion: protocol.Version,
			ReqID:           m.ReqID,
			Handle:          uint64(h),
			Seed:            fmt.Sprint(seed),
		}

	case *protocol.DestroyMsg:
		h, ok := c.own(m.Handle)
		if !ok {
			return c.unknown(m.ReqID, m.Handle)
		}
		delete(c.owned, h)
		if err := c.srv.reg.Destroy(h); err != nil {
			return c.fail(m.ReqID, err)
		}
		return protocol.DestroyedMsg{
			Type:            protocol.TypeDestroyed,
			ProtocolVersion: protocol.Version,
			ReqID:           m.ReqID,
			Handle:          m.Handle,
		}

	case *protocol.QueryMsg:
		h, ok := c.own(m.Handle)
		if !ok {
			return c.unknown(m.ReqID, m.Handle)
		}
		b, err := c.srv.reg.BiomeAt(h, m.X, m.Y, m.Z)
		if err != nil {
			return c.fail(m.ReqID, err)
		}
		y := m.Y
		return biomeMsg(m.ReqID, m.Handle, m.X, &y, m.Z, b)

	case *protocol.Query2DMsg:
		h, ok := c.own(m.Handle)
		if !ok {
			return c.unknown(m.ReqID, m.Handle)
		}
		b, err := c.srv.reg.BiomeAt2D(h, m.X, m.Z)
		if err != nil {
			return c.fail(m.ReqID, err)
		}
		return biomeMsg(m.ReqID, m.Handle, m.X, nil, m.Z, b)

	case *protocol.ReseedMsg:
		seed, err := end.ParseSeed(m.Seed)
		if err != nil {
			return protocol.NewError(m.ReqID, protocol.ErrBadRequest, err.Error())
		}
		h, ok := c.own(m.Handle)
		if !ok {
			return c.unknown(m.ReqID, m.Handle)
		}
		if err := c.srv.reg.Reseed(h, seed); err != nil {
			return c.fail(m.ReqID, err)
		}
		return protocol.ReseededMsg{
			Type:            protocol.TypeReseeded,
			ProtocolVersion: protocol.Version,
			ReqID:           m.ReqID,
			Handle:          m.Handle,
			Seed:            fmt.Sprint(seed),
		}
	}
	return protocol.NewError(base.ReqID, protocol.ErrInternal, fmt.Sprintf("unrouted type %q", base.Type))
}

func (c *session) own(h uint64) (bridge.Handle, bool) {
	_, ok := c.owned[bridge.Handle(h)]
	return bridge.Handle(h), ok
}

func (c *session) unknown(reqID string, h uint64) protocol.ErrorMsg {
	return protocol.NewError(reqID, protocol.ErrUnknownHandle, fmt.Sprintf("handle %d is not owned by this connection", h))
}

func (c *session) fail(reqID string, err error) protocol.ErrorMsg {
	switch {
	case errors.Is(err, bridge.ErrUnknownHandle):
		return protocol.NewError(reqID, protocol.ErrUnknownHandle, err.Error())
	case errors.Is(err, bridge.ErrTooManyHandles):
		return protocol.NewError(reqID, protocol.ErrLimit, err.Error())
	}
	if c.srv.log != nil {
		c.srv.log.Printf("request %s: %v", reqID, err)
	}
	return protocol.NewError(reqID, protocol.ErrInternal, err.Error())
}

func (c *session) destroyAll() {
	for h := range c.owned {
		_ = c.srv.reg.Destroy(h)
	}
	c.owned = nil
}

func biomeMsg(reqID string, h uint64, x int32, y *int32, z int32, b end.Biome) protocol.BiomeMsg {
	return protocol.BiomeMsg{
		Type:            protocol.TypeBiome,
		ProtocolVersion: protocol.Version,
		ReqID:           reqID,
		Handle:          h,
		X:               x,
		Y:               y,
		Z:               z,
		Code:            b.Code(),
		Name:            b.String(),
	}
}
