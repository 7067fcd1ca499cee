package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"endgen.ai/internal/bridge"
	"endgen.ai/internal/transport/ws"
	"endgen.ai/internal/tuning"
)

func main() {
	var (
		addr       = flag.String("addr", "", "http listen address (overrides config)")
		configPath = flag.String("config", "./configs/server.yaml", "path to server.yaml (empty for defaults)")
		maxHandles = flag.Int("max_handles", 0, "max live generator handles (overrides config)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfgPath := strings.TrimSpace(*configPath)
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			logger.Printf("config %s not found; using defaults", cfgPath)
			cfgPath = ""
		}
	}
	tune, err := tuning.Load(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if a := strings.TrimSpace(*addr); a != "" {
		tune.Addr = a
	}
	if *maxHandles > 0 {
		tune.MaxHandles = *maxHandles
		if tune.MaxHandlesPerConn > tune.MaxHandles {
			tune.MaxHandlesPerConn = tune.MaxHandles
		}
	}
	if err := tune.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	reg := bridge.NewRegistry(bridge.Config{MaxHandles: tune.MaxHandles})
	defer reg.Close()

	wsSrv := ws.NewServer(reg, ws.Config{
		MaxHandlesPerConn: tune.MaxHandlesPerConn,
		ReadLimit:         tune.ReadLimitBytes,
	}, logger)

	enablePprof := envBool("ENDGEN_ENABLE_PPROF_HTTP", false)
	if !enablePprof {
		logger.Printf("pprof endpoints disabled (ENDGEN_ENABLE_PPROF_HTTP=false)")
	}
	if !tune.StatusEnabled {
		logger.Printf("status endpoint disabled (status_enabled=false)")
	}
	mux := newMux(reg, wsSrv, tune, enablePprof, logger)

	srv := &http.Server{
		Addr:              tune.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signalContext()
	defer cancel()
	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), tune.ShutdownTimeout())
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s (max_handles=%d per_conn=%d)", tune.Addr, tune.MaxHandles, tune.MaxHandlesPerConn)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
	logger.Printf("stopped; %d requests served", wsSrv.Served())
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
