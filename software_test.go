package ctxpool

import (
	"image"
	"image/color"
	"testing"
)

func TestSoftwareBackendCreate(t *testing.T) {
	b := NewSoftwareBackend()

	if b.Tier() != TierSoftware {
		t.Errorf("Tier() = %v, want TierSoftware", b.Tier())
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	ctx, err := b.CreateContext(fakeSurface{w: 320, h: 240}, DefaultContextAttributes())
	if err != nil {
		t.Fatalf("CreateContext() error: %v", err)
	}
	defer ctx.Close()

	if ctx.Tier() != TierSoftware {
		t.Errorf("context Tier() = %v, want TierSoftware", ctx.Tier())
	}
	if ctx.Width() != 320 || ctx.Height() != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", ctx.Width(), ctx.Height())
	}

	sc, ok := ctx.(*SoftwareContext)
	if !ok {
		t.Fatalf("context type = %T, want *SoftwareContext", ctx)
	}
	if sc.Image() == nil {
		t.Error("Image() = nil for live context")
	}
	if !sc.Opaque() {
		t.Error("default attributes disable alpha, context should be opaque")
	}

	// The software tier must never implement loss notification.
	if _, ok := ctx.(EventfulContext); ok {
		t.Error("software context must not implement EventfulContext")
	}
}

func TestSoftwareBackendRejectsInvalidSurface(t *testing.T) {
	b := NewSoftwareBackend()

	tests := []struct {
		name    string
		surface Surface
	}{
		{"nil surface", nil},
		{"zero width", fakeSurface{w: 0, h: 100}},
		{"negative height", fakeSurface{w: 100, h: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.CreateContext(tt.surface, DefaultContextAttributes()); err == nil {
				t.Error("CreateContext() succeeded for invalid surface")
			}
		})
	}
}

func TestSoftwareContextDrawImage(t *testing.T) {
	ctx, err := NewSoftwareBackend().CreateContext(fakeSurface{w: 4, h: 4}, DefaultContextAttributes())
	if err != nil {
		t.Fatalf("CreateContext() error: %v", err)
	}
	sc := ctx.(*SoftwareContext)
	defer sc.Close()

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	// Same-size blit takes the direct path.
	sc.DrawImage(src, image.Rect(0, 0, 2, 2))
	if got := sc.Image().RGBAAt(0, 0); got.R != 255 {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got := sc.Image().RGBAAt(3, 3); got.R != 0 {
		t.Errorf("pixel (3,3) = %v, want untouched", got)
	}

	// Scaled blit covers the full target.
	sc.Clear()
	sc.DrawImage(src, sc.Image().Bounds())
	if got := sc.Image().RGBAAt(3, 3); got.R == 0 {
		t.Errorf("scaled blit left pixel (3,3) = %v, want red", got)
	}
}

func TestSoftwareContextCloseIdempotent(t *testing.T) {
	ctx, err := NewSoftwareBackend().CreateContext(fakeSurface{w: 2, h: 2}, DefaultContextAttributes())
	if err != nil {
		t.Fatalf("CreateContext() error: %v", err)
	}
	sc := ctx.(*SoftwareContext)

	sc.Close()
	sc.Close()

	if sc.Image() != nil {
		t.Error("Image() should be nil after Close")
	}
	if sc.Width() != 0 || sc.Height() != 0 {
		t.Error("dimensions should be zero after Close")
	}

	// Drawing on a closed context is a defined no-op.
	sc.DrawImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), image.Rect(0, 0, 1, 1))
	sc.Clear()
}

func TestSoftwareContextClearAlpha(t *testing.T) {
	attrs := DefaultContextAttributes()
	attrs.Alpha = true
	ctx, err := NewSoftwareBackend().CreateContext(fakeSurface{w: 2, h: 2}, attrs)
	if err != nil {
		t.Fatalf("CreateContext() error: %v", err)
	}
	sc := ctx.(*SoftwareContext)
	defer sc.Close()

	if sc.Opaque() {
		t.Error("alpha-enabled context should not be opaque")
	}
	sc.Clear()
	if got := sc.Image().RGBAAt(0, 0); got.A != 0 {
		t.Errorf("cleared alpha pixel = %v, want transparent", got)
	}
}
