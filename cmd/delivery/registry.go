package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/timour/delivery-service/internal/discovery"
)

// ServiceRegistration tracks the service-discovery registration this
// process holds and the background health-check ticker keeping it alive.
// Adapted directly from gateway/registry.go.
type ServiceRegistration struct {
	registry    discovery.Registry
	instanceID  string
	serviceName string
	stopChan    chan struct{}
}

// RegisterService registers instanceID under serviceName at addr and starts
// a background TTL health-check refresher.
func RegisterService(ctx context.Context, registry discovery.Registry, instanceID, serviceName, addr string) (*ServiceRegistration, error) {
	if err := registry.Register(ctx, instanceID, serviceName, addr); err != nil {
		return nil, err
	}

	sr := &ServiceRegistration{
		registry:    registry,
		instanceID:  instanceID,
		serviceName: serviceName,
		stopChan:    make(chan struct{}),
	}

	go sr.startHealthCheck()

	return sr, nil
}

func (sr *ServiceRegistration) startHealthCheck() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sr.stopChan:
			return
		case <-ticker.C:
			if err := sr.registry.HealthCheck(sr.instanceID, sr.serviceName); err != nil {
				slog.Default().Warn("service registry health check failed", slog.Any("error", err))
			}
		}
	}
}

// Deregister stops the health-check ticker and removes the registration.
func (sr *ServiceRegistration) Deregister(ctx context.Context) error {
	close(sr.stopChan)
	return sr.registry.Deregister(ctx, sr.instanceID, sr.serviceName)
}
