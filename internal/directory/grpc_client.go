package directory

import (
	"context"

	"google.golang.org/grpc"

	_ "github.com/timour/delivery-service/api" // registers the shared JSON codec
)

// getCustomerRequest/Response and getMerchantRequest/Response mirror the
// wire shape of the upstream CustomerService/MerchantService this service
// only reads from — no client stub for those services exists in this repo
// (they are owned by other teams), so calls are made directly through
// grpc.ClientConnInterface.Invoke the same way api.deliveryServiceClient
// does, against the shared JSON codec registered in the api package.
type getCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

type getCustomerResponse struct {
	CustomerID string    `json:"customer_id"`
	Addresses  []Address `json:"addresses"`
}

type getMerchantRequest struct {
	MerchantID string `json:"merchant_id"`
}

type getMerchantResponse struct {
	MerchantID string  `json:"merchant_id"`
	Address    Address `json:"address"`
}

// grpcCustomerClient is the CustomerClient backed by a live connection.
type grpcCustomerClient struct {
	cc *grpc.ClientConn
}

// NewCustomerClient wraps conn (established via DialWithRetry) as a
// CustomerClient.
func NewCustomerClient(conn *grpc.ClientConn) CustomerClient {
	return &grpcCustomerClient{cc: conn}
}

func (c *grpcCustomerClient) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	in := &getCustomerRequest{CustomerID: customerID}
	out := new(getCustomerResponse)
	if err := c.cc.Invoke(ctx, "/customer.CustomerService/GetCustomer", in, out); err != nil {
		return nil, err
	}
	return &Customer{CustomerID: out.CustomerID, Addresses: out.Addresses}, nil
}

// grpcMerchantClient is the MerchantClient backed by a live connection.
type grpcMerchantClient struct {
	cc *grpc.ClientConn
}

// NewMerchantClient wraps conn (established via DialWithRetry) as a
// MerchantClient.
func NewMerchantClient(conn *grpc.ClientConn) MerchantClient {
	return &grpcMerchantClient{cc: conn}
}

func (c *grpcMerchantClient) GetMerchant(ctx context.Context, merchantID string) (*Merchant, error) {
	in := &getMerchantRequest{MerchantID: merchantID}
	out := new(getMerchantResponse)
	if err := c.cc.Invoke(ctx, "/merchant.MerchantService/GetMerchant", in, out); err != nil {
		return nil, err
	}
	return &Merchant{MerchantID: out.MerchantID, Address: out.Address}, nil
}
