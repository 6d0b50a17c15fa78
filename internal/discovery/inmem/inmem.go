// Package inmem is a Registry test double: no Consul needed for unit tests,
// local development without Docker, or CI. Adapted directly from
// discovery/inmem/inmem.go in the teacher monorepo.
package inmem

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/timour/delivery-service/internal/discovery"
)

const staleAfter = 5 * time.Second

// Registry is an in-memory Registry with TTL-based staleness filtering.
type Registry struct {
	sync.RWMutex
	addrs map[string]map[string]*serviceInstance
}

type serviceInstance struct {
	hostPort   string
	lastActive time.Time
}

// NewRegistry returns an empty in-memory registry.
func NewRegistry() *Registry {
	return &Registry{addrs: map[string]map[string]*serviceInstance{}}
}

// Register records instanceID's address under serviceName.
func (r *Registry) Register(ctx context.Context, instanceID, serviceName, hostPort string) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.addrs[serviceName]; !ok {
		r.addrs[serviceName] = map[string]*serviceInstance{}
	}

	r.addrs[serviceName][instanceID] = &serviceInstance{
		hostPort:   hostPort,
		lastActive: time.Now(),
	}

	return nil
}

// Deregister removes instanceID from serviceName.
func (r *Registry) Deregister(ctx context.Context, instanceID, serviceName string) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.addrs[serviceName]; !ok {
		return nil
	}

	delete(r.addrs[serviceName], instanceID)
	return nil
}

// HealthCheck refreshes instanceID's lastActive timestamp.
func (r *Registry) HealthCheck(instanceID, serviceName string) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.addrs[serviceName]; !ok {
		return errors.New("service is not registered yet")
	}
	if _, ok := r.addrs[serviceName][instanceID]; !ok {
		return errors.New("service instance is not registered yet")
	}

	r.addrs[serviceName][instanceID].lastActive = time.Now()
	return nil
}

// Discover returns every registered address for serviceName, ignoring
// staleness.
func (r *Registry) Discover(ctx context.Context, serviceName string) ([]string, error) {
	r.RLock()
	defer r.RUnlock()

	if len(r.addrs[serviceName]) == 0 {
		return nil, errors.New("no service address found")
	}

	var res []string
	for _, i := range r.addrs[serviceName] {
		res = append(res, i.hostPort)
	}
	return res, nil
}

// ServiceAddresses is like Discover but filters out instances whose last
// health check is older than staleAfter, simulating Consul's
// DeregisterCriticalServiceAfter.
func (r *Registry) ServiceAddresses(ctx context.Context, serviceName string) ([]string, error) {
	r.RLock()
	defer r.RUnlock()

	if len(r.addrs[serviceName]) == 0 {
		return nil, errors.New("no service address found")
	}

	var res []string
	for _, i := range r.addrs[serviceName] {
		if i.lastActive.Before(time.Now().Add(-staleAfter)) {
			continue
		}
		res = append(res, i.hostPort)
	}
	return res, nil
}

var _ discovery.Registry = (*Registry)(nil)
