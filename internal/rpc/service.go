package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "booking.v1.BookingService"

// FullMethod returns the gRPC path of a BookingService method.
func FullMethod(method string) string { return "/" + ServiceName + "/" + method }

type BookingServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	CurrentUser(context.Context, *Empty) (*CurrentUserResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UserResponse, error)
	ListAppointments(context.Context, *Empty) (*ListAppointmentsResponse, error)
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*AppointmentResponse, error)
	UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*AppointmentResponse, error)
	DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary[RegisterRequest]("Register", BookingServiceServer.Register),
		unary[LoginRequest]("Login", BookingServiceServer.Login),
		unary[Empty]("Logout", BookingServiceServer.Logout),
		unary[Empty]("CurrentUser", BookingServiceServer.CurrentUser),
		unary[UpdateProfileRequest]("UpdateProfile", BookingServiceServer.UpdateProfile),
		unary[Empty]("ListAppointments", BookingServiceServer.ListAppointments),
		unary[CreateAppointmentRequest]("CreateAppointment", BookingServiceServer.CreateAppointment),
		unary[UpdateAppointmentRequest]("UpdateAppointment", BookingServiceServer.UpdateAppointment),
		unary[DeleteAppointmentRequest]("DeleteAppointment", BookingServiceServer.DeleteAppointment),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "booking/v1/booking.proto",
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds the method descriptor protoc-gen-go-grpc would generate.
func unary[Req any, Resp any, PReq interface {
	*Req
	Message
}](name string, call func(BookingServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(BookingServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PReq))
			})
		},
	}
}

// Client is a typed BookingService client over any connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) invoke(ctx context.Context, method string, in, out Message, opts ...grpc.CallOption) error {
	opts = append(opts, grpc.ForceCodec(Codec{}))
	return c.cc.Invoke(ctx, FullMethod(method), in, out, opts...)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := &AuthResponse{}
	return out, c.invoke(ctx, "Register", in, out, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := &AuthResponse{}
	return out, c.invoke(ctx, "Login", in, out, opts...)
}

func (c *Client) Logout(ctx context.Context, opts ...grpc.CallOption) error {
	return c.invoke(ctx, "Logout", &Empty{}, &Empty{}, opts...)
}

func (c *Client) CurrentUser(ctx context.Context, opts ...grpc.CallOption) (*CurrentUserResponse, error) {
	out := &CurrentUserResponse{}
	return out, c.invoke(ctx, "CurrentUser", &Empty{}, out, opts...)
}

func (c *Client) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	out := &UserResponse{}
	return out, c.invoke(ctx, "UpdateProfile", in, out, opts...)
}

func (c *Client) ListAppointments(ctx context.Context, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	out := &ListAppointmentsResponse{}
	return out, c.invoke(ctx, "ListAppointments", &Empty{}, out, opts...)
}

func (c *Client) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	out := &AppointmentResponse{}
	return out, c.invoke(ctx, "CreateAppointment", in, out, opts...)
}

func (c *Client) UpdateAppointment(ctx context.Context, in *UpdateAppointmentRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	out := &AppointmentResponse{}
	return out, c.invoke(ctx, "UpdateAppointment", in, out, opts...)
}

func (c *Client) DeleteAppointment(ctx context.Context, in *DeleteAppointmentRequest, opts ...grpc.CallOption) (*DeleteAppointmentResponse, error) {
	out := &DeleteAppointmentResponse{}
	return out, c.invoke(ctx, "DeleteAppointment", in, out, opts...)
}
