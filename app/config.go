package main

// PagerConfig holds the one real tunable the spec exposes: the expected
// width of a point-lookup batch, used only to size the per-call page cache
// (§4.2, §9 "B-tree caching"). Nothing else is configurable -- there is no
// env var or config file (§6).
type PagerConfig struct {
	PageCacheSize int
}

// PagerOption is a functional option over PagerConfig, in the teacher's
// idiom (config.go's DatabaseOption).
type PagerOption func(*PagerConfig)

// WithPageCacheSize sets the initial capacity hint for a lookup batch's
// page cache.
func WithPageCacheSize(size int) PagerOption {
	return func(cfg *PagerConfig) {
		cfg.PageCacheSize = size
	}
}

func defaultPagerConfig() *PagerConfig {
	return &PagerConfig{PageCacheSize: 16}
}
