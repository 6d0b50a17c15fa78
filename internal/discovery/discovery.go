// Package discovery is the service-registry capability this service
// registers itself under and uses to resolve any other service it might
// need to dial. Adapted from the teacher monorepo's discovery package: same
// Registry contract, same Consul/in-memory duality (production vs.
// tests/local dev), narrowed to what this single-deployable service needs.
package discovery

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Registry is the capability a service registers itself under and queries
// to find others.
type Registry interface {
	Register(ctx context.Context, instanceID, serviceName, hostPort string) error
	Deregister(ctx context.Context, instanceID, serviceName string) error
	Discover(ctx context.Context, serviceName string) ([]string, error)
	HealthCheck(instanceID, serviceName string) error
}

// GenerateInstanceID builds a unique instance id for registration, combining
// the service name with a random suffix so multiple instances starting
// concurrently don't collide.
func GenerateInstanceID(serviceName string) string {
	return fmt.Sprintf("%s-%d", serviceName, rand.New(rand.NewSource(time.Now().UnixNano())).Int())
}
