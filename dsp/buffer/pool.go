package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse so concurrent convolution runs
// each get an independent scratch buffer without reallocating every time.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns a zeroed Buffer with the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) (*Buffer, error) {
	b := p.pool.Get().(*Buffer)
	b.Truncate(0)
	if err := b.Resize(length); err != nil {
		p.pool.Put(b)
		return nil, err
	}
	return b, nil
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
