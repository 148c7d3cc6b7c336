package texcache

// Option configures a Manager at construction time.
type Option func(*managerConfig)

type managerConfig struct {
	policy          BudgetPolicy
	decodeCacheSize int
	decode          func([]byte) (*PixelBuffer, error)
}

func defaultConfig() managerConfig {
	return managerConfig{
		policy: DefaultBudgetPolicy(),
		decode: DecodePixels,
	}
}

// WithPolicy sets the initial budget policy. Out-of-range fields are
// clamped. The policy can be replaced later with Manager.SetPolicy.
func WithPolicy(p BudgetPolicy) Option {
	return func(c *managerConfig) {
		c.policy = p
	}
}

// WithDecodeCacheSize enables an LRU cache of n decoded images keyed by
// texture ID, so a texture reloaded after eviction skips the decode
// step. n <= 0 disables the cache (the default).
func WithDecodeCacheSize(n int) Option {
	return func(c *managerConfig) {
		c.decodeCacheSize = n
	}
}

// WithDecoder replaces the image decoder. The default decodes png,
// jpeg, gif, bmp, tiff and webp via DecodePixels.
func WithDecoder(decode func([]byte) (*PixelBuffer, error)) Option {
	return func(c *managerConfig) {
		if decode != nil {
			c.decode = decode
		}
	}
}
