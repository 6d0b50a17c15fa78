// Package consul is the production Registry, backed by Consul's agent API
// with TTL health checks. Adapted directly from
// discovery/consul/consul.go in the teacher monorepo.
package consul

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	consul "github.com/hashicorp/consul/api"

	"github.com/timour/delivery-service/internal/discovery"
)

// Registry wraps a Consul API client.
type Registry struct {
	client *consul.Client
}

// NewRegistry dials the Consul agent at addr.
func NewRegistry(addr string) (*Registry, error) {
	config := consul.DefaultConfig()
	config.Address = addr

	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Registry{client: client}, nil
}

// Register registers instanceID under serviceName with a 5s TTL health
// check, deregistering automatically 10s after the check goes critical.
func (r *Registry) Register(ctx context.Context, instanceID, serviceName, hostPort string) error {
	parts := strings.Split(hostPort, ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid hostPort format: %s", hostPort)
	}

	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}

	return r.client.Agent().ServiceRegister(&consul.AgentServiceRegistration{
		ID:      instanceID,
		Name:    serviceName,
		Address: parts[0],
		Port:    port,
		Check: &consul.AgentServiceCheck{
			CheckID:                        instanceID,
			TLSSkipVerify:                  true,
			TTL:                            "5s",
			DeregisterCriticalServiceAfter: "10s",
		},
	})
}

// Deregister removes instanceID from the registry.
func (r *Registry) Deregister(ctx context.Context, instanceID, serviceName string) error {
	return r.client.Agent().ServiceDeregister(instanceID)
}

// Discover returns the host:port of every healthy instance of serviceName.
func (r *Registry) Discover(ctx context.Context, serviceName string) ([]string, error) {
	services, _, err := r.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, err
	}

	var addresses []string
	for _, service := range services {
		addresses = append(addresses, fmt.Sprintf("%s:%d", service.Service.Address, service.Service.Port))
	}

	return addresses, nil
}

// HealthCheck refreshes the TTL check for instanceID.
func (r *Registry) HealthCheck(instanceID, serviceName string) error {
	return r.client.Agent().UpdateTTL(instanceID, "online", consul.HealthPassing)
}

var _ discovery.Registry = (*Registry)(nil)
