// Package api holds the wire messages and the DeliveryService contract shared
// between the dispatcher, the RPC surface, and their callers. There is no
// .proto in this tree; messages are named and shaped the way protoc-gen-go
// would emit them, but marshaled as JSON (see codec.go) the same way the
// teacher monorepo this service was adapted from carries its common/api
// types across AMQP and gRPC.
package api

import "time"

// Point is a decimal-degree coordinate.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is the raw address payload embedded in a placed order. Only
// District is resolved to a Point today; the rest rides along for when real
// geocoding replaces the district table.
type Address struct {
	AddressID string `json:"address_id"`
	District  string `json:"district"`
	Street    string `json:"street"`
}

// ContactInfo identifies the human on either end of a delivery.
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// MenuItem is one ordered line item, carried for completeness; the delivery
// service itself never inspects line items.
type MenuItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

// OrderTimestamps mirrors the original's per-order timing fields.
type OrderTimestamps struct {
	PlacedAt time.Time `json:"placed_at"`
}

// PlaceOrder is the order payload nested inside an OrderPlacedEvent.
type PlaceOrder struct {
	OrderID         string       `json:"order_id"`
	CustomerAddress Address      `json:"customer_address"`
	MerchantAddress Address      `json:"merchant_address"`
	Customer        ContactInfo  `json:"customer"`
	Merchant        ContactInfo  `json:"merchant"`
	Items           []MenuItem   `json:"items"`
	Timestamps      OrderTimestamps `json:"timestamps"`
}

// OrderPlacedEvent is published to order.placed.event by the order pipeline.
type OrderPlacedEvent struct {
	Order *PlaceOrder `json:"order"`
}

// SyncRiderCreated is published to sync.rider.created by the rider directory.
type SyncRiderCreated struct {
	RiderID string `json:"rider_id"`
	Email   string `json:"email"`
}

// RiderNotifiedEvent is published once candidate riders have been notified
// for a newly placed order.
type RiderNotifiedEvent struct {
	OrderID    string    `json:"order_id"`
	NotifyTime time.Time `json:"notify_time"`
}

// RiderAssignedEvent is published whenever a rider-reported status
// transition succeeds.
type RiderAssignedEvent struct {
	OrderID    string    `json:"order_id"`
	RiderID    string    `json:"rider_id"`
	AssignTime time.Time `json:"assign_time"`
}

// Rider is the default-initialized candidate returned by the ranking stub.
type Rider struct {
	RiderID  string `json:"rider_id"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// PickupInfo is returned to the rider's app on acceptance.
type PickupInfo struct {
	PickupCode      string `json:"pickup_code"`
	PickupLocation  *Point `json:"pickup_location,omitempty"`
	DropOffLocation *Point `json:"drop_off_location,omitempty"`
}

// DeliveryStatus is the canonical status name, written exclusively through
// the state-machine guard in the status cache.
type DeliveryStatus string

const (
	StatusRiderUnaccept DeliveryStatus = "RIDER_UNACCEPT"
	StatusRiderAccepted DeliveryStatus = "RIDER_ACCEPTED"
	StatusRiderPickedUp DeliveryStatus = "RIDER_PICKED_UP"
	StatusRiderDelivered DeliveryStatus = "RIDER_DELIVERED"
)

// GetDeliveryFeeRequest/Response back GetDeliveryFee.
type GetDeliveryFeeRequest struct {
	CustomerID        string `json:"customer_id"`
	CustomerAddressID string `json:"customer_address_id"`
	MerchantID        string `json:"merchant_id"`
}

type GetDeliveryFeeResponse struct {
	Fee int32 `json:"fee"`
}

// ReportDeliveryStatusRequest backs ReportDeliveryStatus.
type ReportDeliveryStatusRequest struct {
	OrderID   string         `json:"order_id"`
	RiderID   string         `json:"rider_id"`
	NewStatus DeliveryStatus `json:"new_status"`
}

// Empty is the canonical empty response, mirroring the well-known protobuf
// Empty message the original used for status-only RPCs.
type Empty struct{}

// ConfirmRiderAcceptRequest backs ConfirmRiderAccept.
type ConfirmRiderAcceptRequest struct {
	OrderID string `json:"order_id"`
	RiderID string `json:"rider_id"`
}

// ConfirmOrderDeliverRequest backs ConfirmOrderDeliver.
type ConfirmOrderDeliverRequest struct {
	OrderID string `json:"order_id"`
}

// CreateRiderRequest backs CreateRider.
type CreateRiderRequest struct {
	RiderID  string `json:"rider_id"`
	Username string `json:"username"`
}

// GetOrderTrackingRequest backs the GetOrderTracking stream.
type GetOrderTrackingRequest struct {
	OrderID string `json:"order_id"`
}

// GetOrderTrackingResponse is one frame of a GetOrderTracking stream. Real
// position reporting is out of scope (spec Non-goals); today this is an
// empty heartbeat frame, a stub for a later GPS feed.
type GetOrderTrackingResponse struct {
	RiderLocation *Point `json:"rider_location,omitempty"`
}
