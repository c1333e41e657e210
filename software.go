package ctxpool

import (
	"fmt"
	"image"
	stddraw "image/draw"

	"golang.org/x/image/draw"
)

// SoftwareBackendName is the registry name of the built-in software backend.
const SoftwareBackendName = "software"

// SoftwareBackend produces CPU pixmap contexts. It is the guaranteed
// fallback tier: it has no platform ceiling and succeeds for every
// valid surface. It is registered automatically.
type SoftwareBackend struct{}

// NewSoftwareBackend creates the software fallback backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string { return SoftwareBackendName }

// Tier returns TierSoftware.
func (b *SoftwareBackend) Tier() Tier { return TierSoftware }

// Init is a no-op; the software backend has no shared resources.
func (b *SoftwareBackend) Init() error { return nil }

// Close is a no-op.
func (b *SoftwareBackend) Close() {}

// CreateContext materializes a CPU pixmap context for the surface.
// It fails only when the surface dimensions are invalid.
func (b *SoftwareBackend) CreateContext(surface Surface, attrs ContextAttributes) (RenderingContext, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrBackendUnavailable)
	}
	w, h := surface.Width(), surface.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid surface dimensions %dx%d", ErrBackendUnavailable, w, h)
	}

	return &SoftwareContext{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		opaque: !attrs.Alpha,
	}, nil
}

// SoftwareContext is a CPU-backed rendering context over *image.RGBA.
//
// It implements [RenderingContext] but not [EventfulContext]: a pixmap
// cannot be lost by the platform. GPU-only effects available on the
// accelerated tiers are not supported here; callers detect the tier via
// [RenderingContext.Tier] and reduce their feature set.
type SoftwareContext struct {
	img    *image.RGBA
	opaque bool
	closed bool
}

// Tier returns TierSoftware.
func (c *SoftwareContext) Tier() Tier { return TierSoftware }

// Width returns the context width in pixels.
func (c *SoftwareContext) Width() int {
	if c.img == nil {
		return 0
	}
	return c.img.Bounds().Dx()
}

// Height returns the context height in pixels.
func (c *SoftwareContext) Height() int {
	if c.img == nil {
		return 0
	}
	return c.img.Bounds().Dy()
}

// Image returns the backing pixmap, or nil after Close.
func (c *SoftwareContext) Image() *image.RGBA {
	return c.img
}

// Opaque reports whether the context composites without alpha.
func (c *SoftwareContext) Opaque() bool { return c.opaque }

// DrawImage blits src scaled into dst within the context, using
// Catmull-Rom resampling when the rectangles differ in size. Viewers
// use this to fit decoded frames to the viewport.
//
// Drawing on a closed context is a no-op.
func (c *SoftwareContext) DrawImage(src image.Image, dst image.Rectangle) {
	if c.closed || c.img == nil || src == nil {
		return
	}
	if dst.Dx() == src.Bounds().Dx() && dst.Dy() == src.Bounds().Dy() {
		stddraw.Draw(c.img, dst, src, src.Bounds().Min, stddraw.Src)
		return
	}
	draw.CatmullRom.Scale(c.img, dst, src, src.Bounds(), draw.Src, nil)
}

// Clear fills the context with transparent black (or opaque black for
// opaque contexts).
func (c *SoftwareContext) Clear() {
	if c.closed || c.img == nil {
		return
	}
	for i := range c.img.Pix {
		c.img.Pix[i] = 0
	}
	if c.opaque {
		for i := 3; i < len(c.img.Pix); i += 4 {
			c.img.Pix[i] = 0xFF
		}
	}
}

// Close releases the backing pixmap. Close is idempotent; any further
// drawing is a no-op.
func (c *SoftwareContext) Close() {
	c.closed = true
	c.img = nil
}
