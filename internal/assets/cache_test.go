package assets

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls int
	res   Resource
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string) (Resource, error) {
	f.calls++
	return f.res, f.err
}

func TestCachedFetcherCachesSuccess(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	next := &fakeFetcher{res: Resource{Body: []byte("<svg/>"), ContentType: "image/svg+xml"}}
	fetcher := NewCachedFetcher(next, client, time.Minute, nil)

	ctx := context.Background()
	res, err := fetcher.Fetch(ctx, "clinic/title.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(res.Body))

	res, err = fetcher.Fetch(ctx, "clinic/title.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(res.Body))
	assert.Equal(t, "image/svg+xml", res.ContentType)
	assert.Equal(t, 1, next.calls, "second fetch should be served from cache")
}

func TestCachedFetcherDoesNotCacheFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	next := &fakeFetcher{err: errors.New("boom")}
	fetcher := NewCachedFetcher(next, client, time.Minute, nil)

	ctx := context.Background()
	_, err := fetcher.Fetch(ctx, "clinic/A/map.svg")
	assert.Error(t, err)
	_, err = fetcher.Fetch(ctx, "clinic/A/map.svg")
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedFetcherExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	next := &fakeFetcher{res: Resource{Body: []byte("[]"), ContentType: "application/json"}}
	fetcher := NewCachedFetcher(next, client, time.Minute, nil)

	ctx := context.Background()
	_, err := fetcher.Fetch(ctx, "clinic/B/details.json")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = fetcher.Fetch(ctx, "clinic/B/details.json")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "expired entry should refetch")
}

func TestCachedFetcherMalformedEntryFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, mr.Set("asset:clinic/title.svg", "not-json"))

	next := &fakeFetcher{res: Resource{Body: []byte("<svg/>"), ContentType: "image/svg+xml"}}
	fetcher := NewCachedFetcher(next, client, time.Minute, nil)

	res, err := fetcher.Fetch(context.Background(), "clinic/title.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(res.Body))
	assert.Equal(t, 1, next.calls)
}

func TestNewCachedFetcherNilClientPassthrough(t *testing.T) {
	next := &fakeFetcher{}
	fetcher := NewCachedFetcher(next, nil, time.Minute, nil)
	assert.Equal(t, next, fetcher)
}
