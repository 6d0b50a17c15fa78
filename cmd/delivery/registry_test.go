package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/timour/delivery-service/internal/discovery/inmem"
)

func TestRegisterServiceRegistersAndDeregisters(t *testing.T) {
	registry := inmem.NewRegistry()
	ctx := context.Background()

	sr, err := RegisterService(ctx, registry, "delivery-1", "delivery", "127.0.0.1:9090")
	require.NoError(t, err)

	addrs, err := registry.Discover(ctx, "delivery")
	require.NoError(t, err)
	require.Equal(t, []string{"127.0.0.1:9090"}, addrs)

	require.NoError(t, sr.Deregister(ctx))

	_, err = registry.Discover(ctx, "delivery")
	require.Error(t, err)
}

func TestRegisterServiceHealthCheckKeepsInstanceFresh(t *testing.T) {
	registry := inmem.NewRegistry()
	ctx := context.Background()

	sr, err := RegisterService(ctx, registry, "delivery-1", "delivery", "127.0.0.1:9090")
	require.NoError(t, err)
	defer sr.Deregister(ctx)

	// The background health-check ticker fires every second; give it a beat
	// to run at least once and confirm the instance is still discoverable.
	time.Sleep(1200 * time.Millisecond)

	addrs, err := registry.Discover(ctx, "delivery")
	require.NoError(t, err)
	require.Equal(t, []string{"127.0.0.1:9090"}, addrs)
}
