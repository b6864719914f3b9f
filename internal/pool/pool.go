package pool

import (
	"bytes"
	"fmt"
	"sync"
)

type BytesBufPool struct {
	p       sync.Pool
	maxSize int
}

// NewBytesBufPool returns a pool of buffers pre-grown to initSize.
// Buffers that grew beyond 64 * initSize are dropped on release.
func NewBytesBufPool(initSize int) *BytesBufPool {
	if initSize < 0 {
		panic(fmt.Sprintf("pool.NewBytesBufPool: negative init size %d", initSize))
	}

	return &BytesBufPool{
		p: sync.Pool{New: func() any {
			b := new(bytes.Buffer)
			b.Grow(initSize)
			return b
		}},
		maxSize: initSize * 64,
	}
}

func (p *BytesBufPool) Get() *bytes.Buffer {
	return p.p.Get().(*bytes.Buffer)
}

func (p *BytesBufPool) Release(b *bytes.Buffer) {
	if p.maxSize > 0 && b.Cap() > p.maxSize {
		return
	}
	b.Reset()
	p.p.Put(b)
}
