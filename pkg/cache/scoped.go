package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-wiki isolation.
// A server instance fronting several wikis gives each one its own
// cache namespace.
//
// Example usage:
//
//	archKeyer := NewScopedKeyer(NewDefaultKeyer(), "wiki:archlinux:")
//	gentooKeyer := NewScopedKeyer(NewDefaultKeyer(), "wiki:gentoo:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ListingKey generates a prefixed key for a cached site listing.
func (k *ScopedKeyer) ListingKey(endpoint, listing string, namespace int) string {
	return k.prefix + k.inner.ListingKey(endpoint, listing, namespace)
}

// RenderKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
