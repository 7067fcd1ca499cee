package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"endgen.ai/internal/protocol"
	"endgen.ai/internal/sim/end"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

type probeConfig struct {
	URL     string
	Seed    uint64
	Samples int
	Radius  int32
	Verify  bool
	RandSrc int64
}

// run opens one handle on a query server, samples random columns and
// optionally checks each answer against a local generator.
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("bot", flag.ContinueOnError)
	var (
		url     = fs.String("url", "ws://localhost:8080/v1/ws", "ws url")
		seedStr = fs.String("seed", "1551515151585454", "world seed")
		samples = fs.Int("samples", 100, "random QUERY_2D samples")
		radius  = fs.Int("radius", 20000, "sample within [-radius, radius] on x and z")
		verify  = fs.Bool("verify", true, "compare answers with a local generator")
		randSrc = fs.Int64("rand", 0, "sampling rng seed (0 = time based)")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	seed, err := end.ParseSeed(*seedStr)
	if err != nil || *samples <= 0 || *radius <= 0 || *radius > 1<<30 {
		fmt.Fprintln(os.Stderr, "bad -seed, -samples or -radius")
		return 2
	}
	if *randSrc == 0 {
		*randSrc = time.Now().UnixNano()
	}

	logger := log.New(stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)
	cfg := probeConfig{URL: *url, Seed: seed, Samples: *samples, Radius: int32(*radius), Verify: *verify, RandSrc: *randSrc}
	if err := probe(cfg, logger); err != nil {
		logger.Printf("probe: %v", err)
		return 1
	}
	return 0
}

func probe(cfg probeConfig, logger *log.Logger) error {
	conn, _, err := websocket.DefaultDialer.Dial(cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	var created protocol.CreatedMsg
	err = call(conn, protocol.CreateMsg{
		Type:            protocol.TypeCreate,
		ProtocolVersion: protocol.Version,
		ReqID:           "create",
		Seed:            fmt.Sprint(cfg.Seed),
	}, protocol.TypeCreated, &created)
	if err != nil {
		return err
	}
	logger.Printf("CREATED handle=%d seed=%s", created.Handle, created.Seed)

	var local *end.Generator
	if cfg.Verify {
		local = end.New(cfg.Seed)
	}
	r := rand.New(rand.NewSource(cfg.RandSrc))
	span := int64(cfg.Radius)*2 + 1
	counts := map[string]int{}
	for i := 0; i < cfg.Samples; i++ {
		x := int32(r.Int63n(span) - int64(cfg.Radius))
		z := int32(r.Int63n(span) - int64(cfg.Radius))
		var b protocol.BiomeMsg
		err := call(conn, protocol.Query2DMsg{
			Type:            protocol.TypeQuery2D,
			ProtocolVersion: protocol.Version,
			ReqID:           fmt.Sprintf("q%d", i),
			Handle:          created.Handle,
			X:               x,
			Z:               z,
		}, protocol.TypeBiome, &b)
		if err != nil {
			return err
		}
		if local != nil {
			if want := local.BiomeAt2D(x, z); want.Code() != b.Code {
				return fmt.Errorf("(%d,%d): server %s, local %s", x, z, b.Name, want)
			}
		}
		counts[b.Name]++
	}

	var gone protocol.DestroyedMsg
	err = call(conn, protocol.DestroyMsg{
		Type:            protocol.TypeDestroy,
		ProtocolVersion: protocol.Version,
		ReqID:           "destroy",
		Handle:          created.Handle,
	}, protocol.TypeDestroyed, &gone)
	if err != nil {
		return err
	}
	logger.Printf("done samples=%d verified=%v biomes=%v", cfg.Samples, cfg.Verify, counts)
	return nil
}

// call sends one request and decodes the reply into out when it has the
// wanted type. ERROR replies become Go errors.
func call(conn *websocket.Conn, req any, want string, out any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(req); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	switch base.Type {
	case want:
		return json.Unmarshal(msg, out)
	case protocol.TypeError:
		var e protocol.ErrorMsg
		if err := json.Unmarshal(msg, &e); err != nil {
			return err
		}
		return fmt.Errorf("%s: %s", e.Code, e.Message)
	default:
		return fmt.Errorf("unexpected %s reply", base.Type)
	}
}
