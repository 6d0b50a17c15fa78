// Package directory holds the Directory Clients: two outbound gRPC stubs
// (customer, merchant) used only for reads, each retrying its own initial
// connection up to a fixed bound before the bootstrap path gives up
// (spec.md §2, Design Notes "Connection retry at boot"). Grounded on the
// Rust original's init_customer_client/init_merchant_client loop
// (5 attempts, 5-second gaps, panic after exhaustion), normalized here into
// one bounded-retry helper as the Design Notes direct.
package directory

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	dialRetries   = 5
	dialRetryWait = 5 * time.Second
)

// DialWithRetry makes up to dialRetries connection attempts to target, each
// blocking for at most dialRetryWait until the connection is up, and waits
// dialRetryWait after each failed attempt. Returns an error rather than
// panicking so the caller's bootstrap path controls how a total failure is
// surfaced.
func DialWithRetry(ctx context.Context, target string) (*grpc.ClientConn, error) {
	var lastErr error
	for attempt := 0; attempt < dialRetries; attempt++ {
		dialCtx, cancel := context.WithTimeout(ctx, dialRetryWait)
		conn, err := grpc.DialContext(dialCtx, target, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
		cancel()
		if err == nil {
			return conn, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dialRetryWait):
		}
	}
	return nil, fmt.Errorf("could not establish connection to %s after %d attempts: %w", target, dialRetries, lastErr)
}

// Address is a single customer address as the CustomerService read surface
// returns it.
type Address struct {
	AddressID string
	District  string
}

// Customer is the read shape returned by CustomerService.GetCustomer.
type Customer struct {
	CustomerID string
	Addresses  []Address
}

// Merchant is the read shape returned by MerchantService.GetMerchant.
type Merchant struct {
	MerchantID string
	Address    Address
}

// CustomerClient is the outbound stub for the customer directory.
type CustomerClient interface {
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
}

// MerchantClient is the outbound stub for the merchant directory.
type MerchantClient interface {
	GetMerchant(ctx context.Context, merchantID string) (*Merchant, error)
}
