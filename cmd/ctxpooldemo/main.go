// Command ctxpooldemo simulates a multi-panel viewer churning through
// viewports against a bounded context pool and prints pool statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gogpu/ctxpool"
	_ "github.com/gogpu/ctxpool/wgpu" // enable GPU tiers when available
)

// panelSurface stands in for a viewport's drawing surface.
type panelSurface struct {
	w, h int
}

func (s panelSurface) Width() int  { return s.w }
func (s panelSurface) Height() int { return s.h }

func main() {
	var (
		viewports = flag.Int("viewports", 32, "number of logical viewports to churn through")
		ceiling   = flag.Int("ceiling", ctxpool.DefaultMaxContexts, "context ceiling")
		steps     = flag.Int("steps", 200, "number of acquire/release steps")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ctxpool.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pool := ctxpool.New(
		ctxpool.WithMaxContexts(*ceiling),
		ctxpool.WithCleanupInterval(time.Second),
		ctxpool.WithMaxIdleTime(2*time.Second),
	)
	defer pool.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < *steps; i++ {
		panel := rng.Intn(*viewports)
		key := fmt.Sprintf("viewport-%d", panel)
		surface := panelSurface{w: 512, h: 512}

		ctx, err := pool.Acquire(key, surface, ctxpool.WithOwner(fmt.Sprintf("panel-%d", panel)))
		if err != nil {
			log.Fatalf("acquire %s failed: %v", key, err)
		}

		// A real viewer would draw here; the demo only samples the tier.
		_ = ctx.Tier()

		switch rng.Intn(3) {
		case 0:
			pool.Release(key)
		case 1:
			pool.Destroy(key)
		}

		if i%50 == 49 {
			log.Printf("step %d: %s", i+1, pool.Stats())
		}
	}

	log.Printf("final: %s", pool.Stats())
}
