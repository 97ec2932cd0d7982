package links

import (
	"context"
	"crypto/sha256"

	"github.com/tidwall/tinylru"

	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

// DefaultCacheSize is the number of documents a CachedProvider remembers.
const DefaultCacheSize = 128

// CachedProvider remembers the links of recently seen documents. Entries
// are keyed by URI and content hash, so an edited document is parsed again.
type CachedProvider struct {
	inner Provider
	cache tinylru.LRU
}

// NewCachedProvider wraps inner with a cache holding up to size documents.
// A size of zero or less uses DefaultCacheSize.
func NewCachedProvider(inner Provider, size int) *CachedProvider {
	if size <= 0 {
		size = DefaultCacheSize
	}
	provider := &CachedProvider{inner: inner}
	provider.cache.Resize(size)
	return provider
}

type cacheKey struct {
	uri  string
	hash [sha256.Size]byte
}

// GetLinks returns cached links for doc, asking the wrapped provider on a miss.
// Errors are not cached. Returned values are shared between callers and
// must not be modified.
func (p *CachedProvider) GetLinks(ctx context.Context, doc *textdoc.Document) (*DocumentLinks, error) {
	key := cacheKey{uri: doc.URI(), hash: sha256.Sum256(doc.Content())}

	if cached, ok := p.cache.Get(key); ok {
		if docLinks, ok := cached.(*DocumentLinks); ok {
			return docLinks, nil
		}
	}

	docLinks, err := p.inner.GetLinks(ctx, doc)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, docLinks)
	return docLinks, nil
}

// Len returns the number of cached documents.
func (p *CachedProvider) Len() int {
	return p.cache.Len()
}

var _ Provider = (*CachedProvider)(nil)
