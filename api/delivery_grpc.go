package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DeliveryServiceServer is the server API for DeliveryService, hand-authored
// in the shape protoc-gen-go-grpc would generate from a delivery.proto.
type DeliveryServiceServer interface {
	GetDeliveryFee(context.Context, *GetDeliveryFeeRequest) (*GetDeliveryFeeResponse, error)
	ReportDeliveryStatus(context.Context, *ReportDeliveryStatusRequest) (*Empty, error)
	ConfirmRiderAccept(context.Context, *ConfirmRiderAcceptRequest) (*PickupInfo, error)
	ConfirmOrderDeliver(context.Context, *ConfirmOrderDeliverRequest) (*Empty, error)
	CreateRider(context.Context, *CreateRiderRequest) (*Rider, error)
	GetOrderTracking(*GetOrderTrackingRequest, DeliveryService_GetOrderTrackingServer) error
}

// UnimplementedDeliveryServiceServer embeds into a handler so new RPCs added
// to the interface don't break existing implementations at compile time.
type UnimplementedDeliveryServiceServer struct{}

func (UnimplementedDeliveryServiceServer) GetDeliveryFee(context.Context, *GetDeliveryFeeRequest) (*GetDeliveryFeeResponse, error) {
	return nil, errUnimplemented("GetDeliveryFee")
}

func (UnimplementedDeliveryServiceServer) ReportDeliveryStatus(context.Context, *ReportDeliveryStatusRequest) (*Empty, error) {
	return nil, errUnimplemented("ReportDeliveryStatus")
}

func (UnimplementedDeliveryServiceServer) ConfirmRiderAccept(context.Context, *ConfirmRiderAcceptRequest) (*PickupInfo, error) {
	return nil, errUnimplemented("ConfirmRiderAccept")
}

func (UnimplementedDeliveryServiceServer) ConfirmOrderDeliver(context.Context, *ConfirmOrderDeliverRequest) (*Empty, error) {
	return nil, errUnimplemented("ConfirmOrderDeliver")
}

func (UnimplementedDeliveryServiceServer) CreateRider(context.Context, *CreateRiderRequest) (*Rider, error) {
	return nil, errUnimplemented("CreateRider")
}

func (UnimplementedDeliveryServiceServer) GetOrderTracking(*GetOrderTrackingRequest, DeliveryService_GetOrderTrackingServer) error {
	return errUnimplemented("GetOrderTracking")
}

func errUnimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

// DeliveryService_GetOrderTrackingServer is the server-streaming handle for
// GetOrderTracking, mirroring the generated *_GetOrderTrackingServer type.
type DeliveryService_GetOrderTrackingServer interface {
	Send(*GetOrderTrackingResponse) error
	grpc.ServerStream
}

type deliveryServiceGetOrderTrackingServer struct {
	grpc.ServerStream
}

func (s *deliveryServiceGetOrderTrackingServer) Send(resp *GetOrderTrackingResponse) error {
	return s.ServerStream.SendMsg(resp)
}

func _DeliveryService_GetDeliveryFee_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetDeliveryFeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeliveryServiceServer).GetDeliveryFee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/delivery.DeliveryService/GetDeliveryFee"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeliveryServiceServer).GetDeliveryFee(ctx, req.(*GetDeliveryFeeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeliveryService_ReportDeliveryStatus_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReportDeliveryStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeliveryServiceServer).ReportDeliveryStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/delivery.DeliveryService/ReportDeliveryStatus"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeliveryServiceServer).ReportDeliveryStatus(ctx, req.(*ReportDeliveryStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeliveryService_ConfirmRiderAccept_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ConfirmRiderAcceptRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeliveryServiceServer).ConfirmRiderAccept(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/delivery.DeliveryService/ConfirmRiderAccept"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeliveryServiceServer).ConfirmRiderAccept(ctx, req.(*ConfirmRiderAcceptRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeliveryService_ConfirmOrderDeliver_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ConfirmOrderDeliverRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeliveryServiceServer).ConfirmOrderDeliver(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/delivery.DeliveryService/ConfirmOrderDeliver"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeliveryServiceServer).ConfirmOrderDeliver(ctx, req.(*ConfirmOrderDeliverRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeliveryService_CreateRider_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateRiderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeliveryServiceServer).CreateRider(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/delivery.DeliveryService/CreateRider"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeliveryServiceServer).CreateRider(ctx, req.(*CreateRiderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeliveryService_GetOrderTracking_Handler(srv any, stream grpc.ServerStream) error {
	in := new(GetOrderTrackingRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(DeliveryServiceServer).GetOrderTracking(in, &deliveryServiceGetOrderTrackingServer{stream})
}

// DeliveryService_ServiceDesc is the grpc.ServiceDesc for DeliveryService,
// built by hand in the shape protoc-gen-go-grpc emits it.
var DeliveryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "delivery.DeliveryService",
	HandlerType: (*DeliveryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetDeliveryFee", Handler: _DeliveryService_GetDeliveryFee_Handler},
		{MethodName: "ReportDeliveryStatus", Handler: _DeliveryService_ReportDeliveryStatus_Handler},
		{MethodName: "ConfirmRiderAccept", Handler: _DeliveryService_ConfirmRiderAccept_Handler},
		{MethodName: "ConfirmOrderDeliver", Handler: _DeliveryService_ConfirmOrderDeliver_Handler},
		{MethodName: "CreateRider", Handler: _DeliveryService_CreateRider_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetOrderTracking",
			Handler:       _DeliveryService_GetOrderTracking_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "delivery.proto",
}

// RegisterDeliveryServiceServer registers srv on s, the way
// protoc-gen-go-grpc's Register<Service>Server does.
func RegisterDeliveryServiceServer(s grpc.ServiceRegistrar, srv DeliveryServiceServer) {
	s.RegisterService(&DeliveryService_ServiceDesc, srv)
}

// DeliveryServiceClient is the client API for DeliveryService.
type DeliveryServiceClient interface {
	GetDeliveryFee(ctx context.Context, in *GetDeliveryFeeRequest, opts ...grpc.CallOption) (*GetDeliveryFeeResponse, error)
	ReportDeliveryStatus(ctx context.Context, in *ReportDeliveryStatusRequest, opts ...grpc.CallOption) (*Empty, error)
	ConfirmRiderAccept(ctx context.Context, in *ConfirmRiderAcceptRequest, opts ...grpc.CallOption) (*PickupInfo, error)
	ConfirmOrderDeliver(ctx context.Context, in *ConfirmOrderDeliverRequest, opts ...grpc.CallOption) (*Empty, error)
	CreateRider(ctx context.Context, in *CreateRiderRequest, opts ...grpc.CallOption) (*Rider, error)
}

type deliveryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDeliveryServiceClient returns a client the way
// protoc-gen-go-grpc's New<Service>Client does.
func NewDeliveryServiceClient(cc grpc.ClientConnInterface) DeliveryServiceClient {
	return &deliveryServiceClient{cc}
}

func (c *deliveryServiceClient) GetDeliveryFee(ctx context.Context, in *GetDeliveryFeeRequest, opts ...grpc.CallOption) (*GetDeliveryFeeResponse, error) {
	out := new(GetDeliveryFeeResponse)
	if err := c.cc.Invoke(ctx, "/delivery.DeliveryService/GetDeliveryFee", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deliveryServiceClient) ReportDeliveryStatus(ctx context.Context, in *ReportDeliveryStatusRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/delivery.DeliveryService/ReportDeliveryStatus", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deliveryServiceClient) ConfirmRiderAccept(ctx context.Context, in *ConfirmRiderAcceptRequest, opts ...grpc.CallOption) (*PickupInfo, error) {
	out := new(PickupInfo)
	if err := c.cc.Invoke(ctx, "/delivery.DeliveryService/ConfirmRiderAccept", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deliveryServiceClient) ConfirmOrderDeliver(ctx context.Context, in *ConfirmOrderDeliverRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/delivery.DeliveryService/ConfirmOrderDeliver", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deliveryServiceClient) CreateRider(ctx context.Context, in *CreateRiderRequest, opts ...grpc.CallOption) (*Rider, error) {
	out := new(Rider)
	if err := c.cc.Invoke(ctx, "/delivery.DeliveryService/CreateRider", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
