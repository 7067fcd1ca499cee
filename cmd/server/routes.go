package main

import (
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"
	"strings"

	"endgen.ai/internal/bridge"
	"endgen.ai/internal/transport/observer"
	"endgen.ai/internal/transport/ws"
	"endgen.ai/internal/tuning"
)

func newMux(reg *bridge.Registry, wsSrv *ws.Server, tune tuning.Tuning, enablePprof bool, logger *log.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP endgen_handles Live generator handles.\n")
		fmt.Fprintf(rw, "# TYPE endgen_handles gauge\n")
		fmt.Fprintf(rw, "endgen_handles %d\n", reg.Len())

		fmt.Fprintf(rw, "# HELP endgen_handles_max Handle limit.\n")
		fmt.Fprintf(rw, "# TYPE endgen_handles_max gauge\n")
		fmt.Fprintf(rw, "endgen_handles_max %d\n", reg.MaxHandles())

		fmt.Fprintf(rw, "# HELP endgen_ws_conns Open websocket connections.\n")
		fmt.Fprintf(rw, "# TYPE endgen_ws_conns gauge\n")
		fmt.Fprintf(rw, "endgen_ws_conns %d\n", wsSrv.Conns())

		fmt.Fprintf(rw, "# HELP endgen_ws_requests_total Requests answered.\n")
		fmt.Fprintf(rw, "# TYPE endgen_ws_requests_total counter\n")
		fmt.Fprintf(rw, "endgen_ws_requests_total %d\n", wsSrv.Served())
	})
	if tune.StatusEnabled {
		mux.HandleFunc("/admin/v1/status", observer.NewServer(reg, wsSrv, logger).StatusHandler())
	}
	if enablePprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	mux.HandleFunc("/v1/ws", wsSrv.Handler())
	return mux
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
