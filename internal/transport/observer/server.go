// Package observer serves a loopback-only status view of the query server.
package observer

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"endgen.ai/internal/bridge"
	"endgen.ai/internal/protocol"
)

// ConnCounter is satisfied by the websocket server.
type ConnCounter interface {
	Conns() int64
	Served() uint64
}

type Status struct {
	ProtocolVersion string   `json:"protocol_version"`
	Handles         int      `json:"handles"`
	MaxHandles      int      `json:"max_handles"`
	LiveHandles     []uint64 `json:"live_handles,omitempty"`
	Conns           int64    `json:"conns"`
	Served          uint64   `json:"served"`
	UptimeSec       int64    `json:"uptime_sec"`
}

type Server struct {
	reg     *bridge.Registry
	conns   ConnCounter
	log     *log.Logger
	started time.Time
}

func NewServer(reg *bridge.Registry, conns ConnCounter, logger *log.Logger) *Server {
	return &Server{
		reg:     reg,
		conns:   conns,
		log:     logger,
		started: time.Now(),
	}
}

func (s *Server) Snapshot(withHandles bool) Status {
	st := Status{
		ProtocolVersion: protocol.Version,
		Handles:         s.reg.Len(),
		MaxHandles:      s.reg.MaxHandles(),
		UptimeSec:       int64(time.Since(s.started).Seconds()),
	}
	if s.conns != nil {
		st.Conns = s.conns.Conns()
		st.Served = s.conns.Served()
	}
	if withHandles {
		for _, h := range s.reg.Handles() {
			st.LiveHandles = append(st.LiveHandles, uint64(h))
		}
	}
	return st
}

func (s *Server) StatusHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		withHandles := r.URL.Query().Get("handles") == "1"
		rw.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(rw).Encode(s.Snapshot(withHandles)); err != nil && s.log != nil {
			s.log.Printf("status: %v", err)
		}
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
