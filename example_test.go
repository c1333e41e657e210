package ctxpool_test

import (
	"fmt"

	"github.com/gogpu/ctxpool"
)

type viewportSurface struct {
	w, h int
}

func (s viewportSurface) Width() int  { return s.w }
func (s viewportSurface) Height() int { return s.h }

func Example() {
	pool := ctxpool.New(ctxpool.WithMaxContexts(4), ctxpool.WithCleanupInterval(0))
	defer pool.Close()

	surface := viewportSurface{w: 256, h: 256}

	ctx, err := pool.Acquire("viewport-0", surface, ctxpool.WithOwner("axial-panel"))
	if err != nil {
		fmt.Println("surface unusable:", err)
		return
	}

	fmt.Println("tier:", ctx.Tier())
	fmt.Println("size:", ctx.Width(), "x", ctx.Height())

	pool.Release("viewport-0")
	stats := pool.Stats()
	fmt.Println("entries:", stats.Total, "active:", stats.Active)

	// Output:
	// tier: software
	// size: 256 x 256
	// entries: 1 active: 0
}
