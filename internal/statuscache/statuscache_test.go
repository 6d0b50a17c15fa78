package statuscache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return Wrap(client)
}

func TestGetMissingKeyIsInternal(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "order-missing")

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindTransport))
}

func TestSetThenGetRoundTrips(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "order-1", api.StatusRiderUnaccept))

	got, err := c.Get(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, api.StatusRiderUnaccept, got)
}

func TestGetInvalidStoredValueIsCachedStateInvalid(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.client.HSet(ctx, "order-1", statusField, "NOT_A_STATUS").Err())

	_, err := c.Get(ctx, "order-1")
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindCachedStateInvalid))
}
