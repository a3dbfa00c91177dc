package release

import (
	"context"
	"sync"
)

type Source interface {
	Fetch(ctx context.Context) Data
}

// Provider computes release data on first use and serves the same value for
// the life of the process.
type Provider struct {
	src  Source
	once sync.Once
	data Data
}

func NewProvider(src Source) *Provider {
	return &Provider{src: src}
}

func (p *Provider) Get(ctx context.Context) Data {
	p.once.Do(func() { p.data = p.src.Fetch(ctx) })
	return p.data
}
