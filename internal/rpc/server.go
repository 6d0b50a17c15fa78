// Package rpc is the RPC Surface: the synchronous DeliveryService handlers
// (GetDeliveryFee, ReportDeliveryStatus, ConfirmRiderAccept,
// ConfirmOrderDeliver, CreateRider, GetOrderTracking) that share the Core,
// Store, Status Cache, Event Bus, and Directory Clients with the Event
// Dispatcher (spec.md §4.4). Grounded on orders/grpc_handler.go's
// grpcHandler shape — a struct embedding api.UnimplementedDeliveryServiceServer,
// built as a struct literal by the caller and registered on the
// *grpc.Server with Register.
package rpc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"google.golang.org/grpc"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
	"github.com/timour/delivery-service/internal/broker"
	"github.com/timour/delivery-service/internal/core"
	"github.com/timour/delivery-service/internal/directory"
	"github.com/timour/delivery-service/internal/metrics"
	"github.com/timour/delivery-service/internal/statuscache"
	"github.com/timour/delivery-service/internal/store"
)

// Handler implements api.DeliveryServiceServer.
type Handler struct {
	api.UnimplementedDeliveryServiceServer

	Store    *store.Store
	Status   *statuscache.Cache
	Bus      *broker.Bus
	Customer directory.CustomerClient
	Merchant directory.MerchantClient
	Logger   *slog.Logger
	Business *metrics.BusinessMetrics
}

// Register wires h onto grpcServer the way orders/grpc_handler.go's
// NewGRPCHandler registers its handler.
func Register(grpcServer *grpc.Server, h *Handler) {
	api.RegisterDeliveryServiceServer(grpcServer, h)
}

// GetDeliveryFee composes the two Directory Client reads with the Core's
// fee computation (spec.md §4.4.1).
func (h *Handler) GetDeliveryFee(ctx context.Context, req *api.GetDeliveryFeeRequest) (*api.GetDeliveryFeeResponse, error) {
	customer, err := h.Customer.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		h.Logger.ErrorContext(ctx, "failed to fetch customer", slog.Any("error", err))
		return nil, apperr.ToStatus(apperr.Wrap(apperr.KindTransport, "failed to fetch customer", err))
	}

	var customerAddr *directory.Address
	for i := range customer.Addresses {
		if customer.Addresses[i].AddressID == req.CustomerAddressID {
			customerAddr = &customer.Addresses[i]
			break
		}
	}
	if customerAddr == nil {
		return nil, apperr.ToStatus(apperr.New(apperr.KindTransport, "customer address not found"))
	}

	merchant, err := h.Merchant.GetMerchant(ctx, req.MerchantID)
	if err != nil {
		h.Logger.ErrorContext(ctx, "failed to fetch merchant", slog.Any("error", err))
		return nil, apperr.ToStatus(apperr.Wrap(apperr.KindTransport, "failed to fetch merchant", err))
	}
	if merchant.Address.AddressID == "" && merchant.Address.District == "" {
		return nil, apperr.ToStatus(apperr.New(apperr.KindTransport, "merchant address not found"))
	}

	customerPoint := core.FakeGeocode(api.Address{District: customerAddr.District})
	merchantPoint := core.FakeGeocode(api.Address{District: merchant.Address.District})

	fee, err := core.CalcDeliveryFee(customerPoint, merchantPoint)
	if err != nil {
		h.Logger.WarnContext(ctx, "delivery fee out of range",
			slog.String("customer_id", req.CustomerID),
			slog.String("merchant_id", req.MerchantID),
		)
		return nil, apperr.ToStatus(apperr.New(apperr.KindOutOfRange, "failed to calculate delivery fee"))
	}

	if h.Business != nil {
		h.Business.DeliveryFeeCalcs.Inc()
	}

	return &api.GetDeliveryFeeResponse{Fee: fee}, nil
}

// ReportDeliveryStatus is the canonical rider-status transition entry point
// (spec.md §4.4.2). Preconditions reject empty ids and a target of
// RiderUnaccept outright; the state-machine guard lives in
// statuscache.Cache.Transition.
func (h *Handler) ReportDeliveryStatus(ctx context.Context, req *api.ReportDeliveryStatusRequest) (*api.Empty, error) {
	if req.OrderID == "" {
		return nil, apperr.ToStatus(apperr.New(apperr.KindInvalidArgument, "Order ID cannot be empty"))
	}
	if req.RiderID == "" {
		return nil, apperr.ToStatus(apperr.New(apperr.KindInvalidArgument, "Rider ID cannot be empty"))
	}
	if req.NewStatus == api.StatusRiderUnaccept {
		return nil, apperr.ToStatus(apperr.New(apperr.KindInvalidArgument, "cannot report RiderUnaccept"))
	}

	if err := h.Status.Transition(ctx, req.OrderID, req.NewStatus); err != nil {
		h.recordTransitionRejection(err)
		return nil, apperr.ToStatus(err)
	}

	if err := h.Store.UpdateDeliveryStatus(ctx, req.OrderID, req.NewStatus); err != nil {
		h.Logger.WarnContext(ctx, "failed to write legacy status echo column", slog.Any("error", err))
	}

	payload, err := marshalRiderAssigned(req.OrderID, req.RiderID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	if err := h.Bus.Publish(ctx, broker.RoutingKeyRiderAssigned, payload); err != nil {
		return nil, apperr.ToStatus(apperr.Wrap(apperr.KindPublishRejected, "failed to publish rider.assigned.event", err))
	}

	if h.Business != nil {
		h.Business.RiderAssignments.Inc()
	}

	return &api.Empty{}, nil
}

// ConfirmRiderAccept is a convenience RPC over the same guarded transition
// ReportDeliveryStatus uses, returning PickupInfo so a rider app can render
// the pickup code and endpoints immediately on accept (SPEC_FULL §12).
func (h *Handler) ConfirmRiderAccept(ctx context.Context, req *api.ConfirmRiderAcceptRequest) (*api.PickupInfo, error) {
	if req.OrderID == "" {
		return nil, apperr.ToStatus(apperr.New(apperr.KindInvalidArgument, "Order ID cannot be empty"))
	}
	if req.RiderID == "" {
		return nil, apperr.ToStatus(apperr.New(apperr.KindInvalidArgument, "Rider ID cannot be empty"))
	}

	if err := h.Status.Transition(ctx, req.OrderID, api.StatusRiderAccepted); err != nil {
		h.recordTransitionRejection(err)
		return nil, apperr.ToStatus(err)
	}

	if err := h.Store.UpdateDeliveryRider(ctx, req.OrderID, req.RiderID); err != nil {
		return nil, apperr.ToStatus(err)
	}

	delivery, err := h.Store.GetDelivery(ctx, req.OrderID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}

	payload, err := marshalRiderAssigned(req.OrderID, req.RiderID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	if err := h.Bus.Publish(ctx, broker.RoutingKeyRiderAssigned, payload); err != nil {
		return nil, apperr.ToStatus(apperr.Wrap(apperr.KindPublishRejected, "failed to publish rider.assigned.event", err))
	}

	if h.Business != nil {
		h.Business.RiderAssignments.Inc()
	}

	return &api.PickupInfo{
		PickupCode:      delivery.PickupCode,
		PickupLocation:  &delivery.PickupLocation,
		DropOffLocation: &delivery.DropOffLocation,
	}, nil
}

// ConfirmOrderDeliver is the delivered-path convenience RPC, a thin wrapper
// over the same guarded transition (SPEC_FULL §12).
func (h *Handler) ConfirmOrderDeliver(ctx context.Context, req *api.ConfirmOrderDeliverRequest) (*api.Empty, error) {
	if req.OrderID == "" {
		return nil, apperr.ToStatus(apperr.New(apperr.KindInvalidArgument, "Order ID cannot be empty"))
	}

	if err := h.Status.Transition(ctx, req.OrderID, api.StatusRiderDelivered); err != nil {
		h.recordTransitionRejection(err)
		return nil, apperr.ToStatus(err)
	}

	if err := h.Store.UpdateDeliveryStatus(ctx, req.OrderID, api.StatusRiderDelivered); err != nil {
		h.Logger.WarnContext(ctx, "failed to write legacy status echo column", slog.Any("error", err))
	}

	return &api.Empty{}, nil
}

// CreateRider is the synchronous counterpart to handle_rider_created,
// exposed because the original reaches the same Store insert from two call
// sites (SPEC_FULL §12). A duplicate rider_id is idempotent: the existing
// row is returned rather than surfacing AlreadyExists to the caller.
func (h *Handler) CreateRider(ctx context.Context, req *api.CreateRiderRequest) (*api.Rider, error) {
	if req.RiderID == "" {
		return nil, apperr.ToStatus(apperr.New(apperr.KindInvalidArgument, "Rider ID cannot be empty"))
	}

	err := h.Store.CreateRider(ctx, store.NewRider{
		RiderID:     req.RiderID,
		Username:    req.Username,
		PhoneNumber: "",
	})
	if err != nil && !apperr.Is(err, apperr.KindAlreadyExists) {
		return nil, apperr.ToStatus(err)
	}

	rider, err := h.Store.GetRider(ctx, req.RiderID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}

	return &api.Rider{RiderID: rider.RiderID, Username: rider.Username, Phone: rider.PhoneNumber}, nil
}

// trackingInterval and trackingFrames implement the server-streaming
// contract of spec.md §4.4.3: a buffered queue of depth 4, up to five
// heartbeat frames, one every five seconds, terminating early on client
// disconnect.
const (
	trackingBufferDepth = 4
	trackingFrames      = 5
	trackingInterval    = 5 * time.Second
)

// GetOrderTracking streams up to trackingFrames heartbeat frames for
// req.OrderID. Cancellation is cooperative: a canceled stream context causes
// the producer goroutine to log and exit (spec.md §4.4.3, §5).
func (h *Handler) GetOrderTracking(req *api.GetOrderTrackingRequest, stream api.DeliveryService_GetOrderTrackingServer) error {
	ctx := stream.Context()
	frames := make(chan *api.GetOrderTrackingResponse, trackingBufferDepth)

	go func() {
		defer close(frames)
		ticker := time.NewTicker(trackingInterval)
		defer ticker.Stop()

		for i := 0; i < trackingFrames; i++ {
			select {
			case <-ctx.Done():
				h.Logger.InfoContext(ctx, "tracking stream canceled, stopping producer",
					slog.String("order_id", req.OrderID))
				return
			case <-ticker.C:
				select {
				case frames <- &api.GetOrderTrackingResponse{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	for frame := range frames {
		if err := stream.Send(frame); err != nil {
			return err
		}
	}
	return nil
}

// recordTransitionRejection increments the rejected-transition counter when
// err came back from the state machine as a rejection rather than some
// other failure (e.g. a transport error reaching the cache).
func (h *Handler) recordTransitionRejection(err error) {
	if h.Business != nil && apperr.Is(err, apperr.KindTransitionRejected) {
		h.Business.TransitionsRejected.Inc()
	}
}

func marshalRiderAssigned(orderID, riderID string) ([]byte, error) {
	payload, err := json.Marshal(api.RiderAssignedEvent{
		OrderID:    orderID,
		RiderID:    riderID,
		AssignTime: time.Now(),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidPayload, "failed to encode RiderAssignedEvent", err)
	}
	return payload, nil
}
