package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritell/matchbook/catalog"
	badgerstore "github.com/veritell/matchbook/catalog/badger"
	"github.com/veritell/matchbook/core"
)

// countingStore wraps another store and records which search strategies ran.
// Behavior is injectable per method; unset methods delegate.
type countingStore struct {
	inner catalog.Store

	exactOrPrefixFunc func(ctx context.Context, query string, limit int) ([]*core.CatalogEntity, error)
	prefixFunc        func(ctx context.Context, variant string, limit int) ([]*core.CatalogEntity, error)

	exactOrPrefixCalls int
	prefixCalls        int
	tokenCalls         int
}

var _ catalog.Store = (*countingStore)(nil)

func (c *countingStore) SearchExactOrPrefix(ctx context.Context, query string, limit int) ([]*core.CatalogEntity, error) {
	c.exactOrPrefixCalls++
	if c.exactOrPrefixFunc != nil {
		return c.exactOrPrefixFunc(ctx, query, limit)
	}
	return c.inner.SearchExactOrPrefix(ctx, query, limit)
}

func (c *countingStore) SearchPrefix(ctx context.Context, variant string, limit int) ([]*core.CatalogEntity, error) {
	c.prefixCalls++
	if c.prefixFunc != nil {
		return c.prefixFunc(ctx, variant, limit)
	}
	return c.inner.SearchPrefix(ctx, variant, limit)
}

func (c *countingStore) SearchTokenContains(ctx context.Context, tokens []string, limit int) ([]*core.CatalogEntity, error) {
	c.tokenCalls++
	return c.inner.SearchTokenContains(ctx, tokens, limit)
}

func (c *countingStore) PutEntities(ctx context.Context, entities ...*core.CatalogEntity) ([]*core.CatalogEntity, error) {
	return c.inner.PutEntities(ctx, entities...)
}

func (c *countingStore) GetEntity(ctx context.Context, id core.ID) (*core.CatalogEntity, error) {
	return c.inner.GetEntity(ctx, id)
}

func (c *countingStore) Count(ctx context.Context) (int, error) {
	return c.inner.Count(ctx)
}

func (c *countingStore) Close() error {
	return c.inner.Close()
}

func newCountingStore(t *testing.T, names ...string) (*countingStore, func()) {
	t.Helper()

	inner, backend, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)

	entities := make([]*core.CatalogEntity, 0, len(names))
	for _, name := range names {
		entities = append(entities, &core.CatalogEntity{Name: name})
	}
	if len(entities) > 0 {
		_, err = inner.PutEntities(context.Background(), entities...)
		require.NoError(t, err)
	}

	return &countingStore{inner: inner}, func() { inner.Close(); backend.Close() }
}

func TestTypoVariants(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single word", "quorvex", []string{"quorve", "quorv"}},
		{"head overlaps drop-two", "quorv", []string{"quor", "quo"}},
		{"multi word", "amazon com", []string{"amazon co", "amazon c"}},
		{"too short", "abc", nil},
		{"longer single word keeps head", "microsofts", []string{"microsoft", "microsof", "micro"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typoVariants(tt.query))
		})
	}
}

func TestRetrieveShortCircuits(t *testing.T) {
	store, cleanup := newCountingStore(t, "Amazon.com Inc")
	defer cleanup()

	retriever, err := NewRetriever(store)
	require.NoError(t, err)

	// Stage 1 fills the requested limit, so the broad strategies never run
	candidates, strategy, err := retriever.Retrieve(context.Background(), "Amazon", 1)
	require.NoError(t, err)

	assert.Len(t, candidates, 1)
	assert.Equal(t, StrategyExactOrPrefix, strategy)
	assert.Equal(t, 1, store.exactOrPrefixCalls)
	assert.Zero(t, store.prefixCalls)
	assert.Zero(t, store.tokenCalls)
}

func TestRetrieveFillsFromLaterStages(t *testing.T) {
	store, cleanup := newCountingStore(t, "Amazone Trading", "Amazon.com Inc")
	defer cleanup()

	retriever, err := NewRetriever(store)
	require.NoError(t, err)

	// "Amazone" prefix-matches only "Amazone Trading"; with the limit still
	// under-filled the variant stage must also surface "Amazon.com Inc"
	// through the drop-last-char variant "amazon"
	candidates, strategy, err := retriever.Retrieve(context.Background(), "Amazone", 10)
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	names := []string{candidates[0].Name, candidates[1].Name}
	assert.Contains(t, names, "Amazone Trading")
	assert.Contains(t, names, "Amazon.com Inc")
	// The strategy reports the stage that found the first candidate
	assert.Equal(t, StrategyExactOrPrefix, strategy)
	assert.GreaterOrEqual(t, store.prefixCalls, 1)
}

func TestRetrieveExhaustsAllStrategies(t *testing.T) {
	store, cleanup := newCountingStore(t, "Zentara Dynamics")
	defer cleanup()

	retriever, err := NewRetriever(store)
	require.NoError(t, err)

	candidates, strategy, err := retriever.Retrieve(context.Background(), "Quorvex", 10)
	require.NoError(t, err)

	assert.Empty(t, candidates)
	assert.Equal(t, StrategyNone, strategy)
	assert.Equal(t, 1, store.exactOrPrefixCalls)
	// Variants of "quorvex": drop-one and drop-two; the five-char head
	// duplicates drop-two and is deduplicated
	assert.Equal(t, 2, store.prefixCalls)
	assert.Equal(t, 1, store.tokenCalls)
}

func TestRetrieveDegradesOnStoreError(t *testing.T) {
	store, cleanup := newCountingStore(t, "Microsoft")
	defer cleanup()
	store.exactOrPrefixFunc = func(ctx context.Context, query string, limit int) ([]*core.CatalogEntity, error) {
		return nil, errors.New("index corrupted")
	}

	retriever, err := NewRetriever(store)
	require.NoError(t, err)

	// Exact stage fails but the variant stage still finds the entity
	candidates, strategy, err := retriever.Retrieve(context.Background(), "Microsofts", 10)
	require.NoError(t, err)

	assert.Len(t, candidates, 1)
	assert.Equal(t, StrategyTypoVariants, strategy)
}

func TestRetrieveEmptyQuery(t *testing.T) {
	store, cleanup := newCountingStore(t)
	defer cleanup()

	retriever, err := NewRetriever(store)
	require.NoError(t, err)

	candidates, strategy, err := retriever.Retrieve(context.Background(), "  ...  ", 10)
	require.NoError(t, err)

	assert.Empty(t, candidates)
	assert.Equal(t, StrategyNone, strategy)
	assert.Zero(t, store.exactOrPrefixCalls)
}

func TestRetrieveHonorsHardCap(t *testing.T) {
	names := []string{
		"Quorvex Alpha", "Quorvex Beta", "Quorvex Gamma", "Quorvex Delta",
		"Quorvex Epsilon", "Quorvex Zeta", "Quorvex Eta", "Quorvex Theta",
		"Quorvex Iota", "Quorvex Kappa", "Quorvex Lambda", "Quorvex Mu",
	}
	store, cleanup := newCountingStore(t, names...)
	defer cleanup()

	retriever, err := NewRetriever(store)
	require.NoError(t, err)

	candidates, _, err := retriever.Retrieve(context.Background(), "Quorvex", 50)
	require.NoError(t, err)

	assert.Len(t, candidates, retrieverHardCap)
}
