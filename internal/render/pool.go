package render

import (
	"image"
	"sync"
)

// framePool recycles frame buffers between animation frames so a long
// clip allocates a handful of images rather than thousands.
type framePool struct {
	pool sync.Pool
	rect image.Rectangle
}

func newFramePool(rect image.Rectangle) *framePool {
	return &framePool{
		rect: rect,
		pool: sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		},
	}
}

func (p *framePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

func (p *framePool) Put(img *image.RGBA) {
	if img != nil && img.Bounds() == p.rect {
		p.pool.Put(img)
	}
}
