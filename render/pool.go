// Package render implements the renderer (C7): depth-first tree walk,
// compositing, masking, blend modes, the effect chain, and motion blur
// accumulation.
//
// Grounded on phanxgames-willow/rendertarget.go (renderSubtree /
// renderSpecialSubtreeNode offscreen-RT dispatch for masked/cached/
// filtered nodes, BlendMask compositing) and phanxgames-willow/filter.go
// (Filter interface, Kawase blur, filter-chain padding/ping-pong via a
// render-texture pool), adapted from willow's pointer-tree walk to the
// scene package's NodeId arena.
package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// pool manages reusable offscreen *ebiten.Image targets keyed by
// power-of-two dimensions, exactly as willow's renderTexturePool.
type pool struct {
	buckets map[uint64][]*ebiten.Image
}

func poolKey(w, h int) uint64 { return uint64(w)<<32 | uint64(h) }

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
func (p *pool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)
	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}
	return ebiten.NewImageWithOptions(image.Rect(0, 0, pw, ph), &ebiten.NewImageOptions{Unmanaged: true})
}

// Release returns an image to the pool for reuse.
func (p *pool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}
