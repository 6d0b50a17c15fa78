package statuscache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
)

func TestTransitionHappyPath(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "o1", api.StatusRiderUnaccept))

	require.NoError(t, c.Transition(ctx, "o1", api.StatusRiderAccepted))

	got, err := c.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, api.StatusRiderAccepted, got)
}

func TestTransitionRejectsSecondApplication(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "o1", api.StatusRiderUnaccept))
	require.NoError(t, c.Transition(ctx, "o1", api.StatusRiderAccepted))

	err := c.Transition(ctx, "o1", api.StatusRiderAccepted)

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindTransitionRejected))
}

func TestTransitionRejectsRegression(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "o1", api.StatusRiderDelivered))

	err := c.Transition(ctx, "o1", api.StatusRiderPickedUp)

	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindTransitionRejected))
	require.Contains(t, err.Error(), "already picked up")
}

func TestTransitionFullLifecycle(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "o1", api.StatusRiderUnaccept))

	require.NoError(t, c.Transition(ctx, "o1", api.StatusRiderAccepted))
	require.NoError(t, c.Transition(ctx, "o1", api.StatusRiderPickedUp))
	require.NoError(t, c.Transition(ctx, "o1", api.StatusRiderDelivered))

	got, err := c.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, api.StatusRiderDelivered, got)
}
