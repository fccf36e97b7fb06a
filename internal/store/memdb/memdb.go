// Package memdb keeps the published dashboard state in memory. Nothing survives
// a restart.
package memdb

const (
	// DefaultMemSize the default map size used for storing data.
	DefaultMemSize = 16
)

type config struct {
	memSize int
}

type Option func(*config)

// WithMemSize allows us to specify a custom mem size for store maps
func WithMemSize(memSize int) Option {
	return func(c *config) {
		if memSize >= 0 {
			c.memSize = memSize
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{memSize: DefaultMemSize}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
