package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neon-bars/internal/surface"
)

const (
	spriteSize = 64
	glowMargin = 16
)

// EbitenCanvas draws onto the ebiten image bound for the current frame,
// scaling every coordinate by the manager's pixel ratio.
type EbitenCanvas struct {
	manager *surface.Manager
	target  *ebiten.Image

	dot  *ebiten.Image
	rect *ebiten.Image
	fade *ebiten.Image

	op ebiten.DrawImageOptions
}

// NewEbitenCanvas returns a canvas that takes its scale from m.
func NewEbitenCanvas(m *surface.Manager) *EbitenCanvas {
	return &EbitenCanvas{manager: m}
}

// Bind sets the image drawn to until the next Bind. Sprites are built on first
// bind because ebiten images need a running graphics driver.
func (c *EbitenCanvas) Bind(target *ebiten.Image) {
	c.target = target
	if c.dot == nil {
		c.dot = newSprite(spriteSize, spriteSize, dotAlpha)
		c.rect = newSprite(spriteSize, spriteSize, rectAlpha)
		c.fade = newSprite(1, spriteSize, fadeAlpha)
	}
}

func (c *EbitenCanvas) Clear(col colorful.Color) {
	if c.target == nil {
		return
	}
	c.target.Fill(nrgba(col, 1))
}

func (c *EbitenCanvas) VerticalGradient(x, y, w, h float64, top, bottom colorful.Color) {
	c.FillRect(x, y, w, h, bottom, 1)
	c.drawSprite(c.fade, x, y, w, h, top, 1, ebiten.BlendSourceOver)
}

func (c *EbitenCanvas) FillRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	if c.target == nil || w <= 0 || h <= 0 {
		return
	}
	s := c.manager.Scale()
	vector.DrawFilledRect(c.target, float32(x*s), float32(y*s), float32(w*s), float32(h*s), nrgba(col, alpha), true)
}

func (c *EbitenCanvas) GlowRect(x, y, w, h, blur float64, col colorful.Color, alpha float64) {
	c.drawSprite(c.rect, x-blur, y-blur, w+2*blur, h+2*blur, col, alpha, ebiten.BlendLighter)
}

func (c *EbitenCanvas) FadeRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	c.drawSprite(c.fade, x, y, w, h, col, alpha, ebiten.BlendSourceOver)
}

func (c *EbitenCanvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	if c.target == nil || r <= 0 {
		return
	}
	s := c.manager.Scale()
	vector.DrawFilledCircle(c.target, float32(cx*s), float32(cy*s), float32(r*s), nrgba(col, alpha), true)
}

func (c *EbitenCanvas) GlowCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	c.drawSprite(c.dot, cx-r, cy-r, 2*r, 2*r, col, alpha, ebiten.BlendLighter)
}

func (c *EbitenCanvas) drawSprite(img *ebiten.Image, x, y, w, h float64, col colorful.Color, alpha float64, blend ebiten.Blend) {
	if c.target == nil || img == nil || w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	s := c.manager.Scale()
	b := img.Bounds()

	c.op.GeoM.Reset()
	c.op.GeoM.Scale(w*s/float64(b.Dx()), h*s/float64(b.Dy()))
	c.op.GeoM.Translate(x*s, y*s)
	c.op.ColorScale.Reset()
	a := clamp01(alpha)
	c.op.ColorScale.Scale(float32(col.R*a), float32(col.G*a), float32(col.B*a), float32(a))
	c.op.Blend = blend
	c.op.Filter = ebiten.FilterLinear
	c.target.DrawImage(img, &c.op)
}

// newSprite builds a white premultiplied-alpha image whose coverage at texel
// (x, y) is alpha(u, v) with u, v the normalized texel centre.
func newSprite(w, h int, alpha func(u, v float64) float64) *ebiten.Image {
	pix := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			v := (float64(y) + 0.5) / float64(h)
			a := byte(clamp01(alpha(u, v))*255 + 0.5)
			i := 4 * (y*w + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = a, a, a, a
		}
	}
	img := ebiten.NewImage(w, h)
	img.WritePixels(pix)
	return img
}

func dotAlpha(u, v float64) float64 {
	d := math.Hypot(u-0.5, v-0.5) * 2
	if d >= 1 {
		return 0
	}
	f := 1 - d
	return f * f
}

func rectAlpha(u, v float64) float64 {
	return edge(u) * edge(v)
}

// edge ramps smoothly from 0 at the border to 1 at glowMargin texels in.
func edge(u float64) float64 {
	m := float64(glowMargin) / spriteSize
	d := math.Min(u, 1-u) / m
	if d >= 1 {
		return 1
	}
	return d * d * (3 - 2*d)
}

func fadeAlpha(_, v float64) float64 {
	return (1 - v) * (1 - v)
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}
