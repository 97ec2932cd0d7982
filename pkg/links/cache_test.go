package links_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/pkg/links"
	"github.com/yaklabco/mdrefs/pkg/textdoc"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) GetLinks(_ context.Context, _ *textdoc.Document) (*links.DocumentLinks, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return links.NewDocumentLinks(nil), nil
}

func TestCachedProvider(t *testing.T) {
	t.Parallel()

	inner := &countingProvider{}
	provider := links.NewCachedProvider(inner, 0)
	ctx := context.Background()

	doc := textdoc.New("a.md", []byte("one"))

	first, err := provider.GetLinks(ctx, doc)
	require.NoError(t, err)
	second, err := provider.GetLinks(ctx, textdoc.New("a.md", []byte("one")))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.calls)

	_, err = provider.GetLinks(ctx, textdoc.New("a.md", []byte("two")))
	require.NoError(t, err)
	_, err = provider.GetLinks(ctx, textdoc.New("b.md", []byte("one")))
	require.NoError(t, err)

	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, 3, provider.Len())
}

func TestCachedProvider_Evicts(t *testing.T) {
	t.Parallel()

	inner := &countingProvider{}
	provider := links.NewCachedProvider(inner, 1)
	ctx := context.Background()

	_, _ = provider.GetLinks(ctx, textdoc.New("a.md", nil))
	_, _ = provider.GetLinks(ctx, textdoc.New("b.md", nil))
	_, _ = provider.GetLinks(ctx, textdoc.New("a.md", nil))

	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, 1, provider.Len())
}

func TestCachedProvider_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	inner := &countingProvider{err: errBoom}
	provider := links.NewCachedProvider(inner, 4)
	doc := textdoc.New("a.md", nil)

	_, err := provider.GetLinks(context.Background(), doc)
	require.ErrorIs(t, err, errBoom)
	_, err = provider.GetLinks(context.Background(), doc)
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, provider.Len())
}
