package handler_test

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"medical-booking/internal/middleware"
	"medical-booking/internal/model"
	"medical-booking/internal/rpc"
)

// dial serves a fresh handler over an in-memory listener with the same
// codec and interceptors as the server binary.
func dial(t *testing.T) *rpc.Client {
	t.Helper()
	h, _ := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(middleware.NewRateLimiter(ctx, 100, 100)),
			middleware.Auth(secret),
		),
	)
	rpc.RegisterBookingServiceServer(srv, h)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return rpc.NewClient(conn)
}

func TestOverGRPC(t *testing.T) {
	c := dial(t)
	ctx := context.Background()

	_, err := c.ListAppointments(ctx)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("anonymous list: expected Unauthenticated, got %v", err)
	}

	ar, err := c.Register(ctx, &rpc.RegisterRequest{Profile: newProfile(), Password: "testpass123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+ar.Token)

	cr, err := c.CreateAppointment(authed, &rpc.CreateAppointmentRequest{AppointmentDetails: model.AppointmentDetails{
		Date: nextWeek(), Time: "08:30", Specialty: "Dermatología",
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cr.Appointment.UserID != ar.User.ID || cr.Appointment.Email != ar.User.Email {
		t.Errorf("unexpected appointment %+v", cr.Appointment)
	}
	if cr.Appointment.CreatedAt.IsZero() {
		t.Error("created_at lost on the wire")
	}

	lr, err := c.ListAppointments(authed)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lr.Appointments) != 1 || lr.Appointments[0].ID != cr.Appointment.ID {
		t.Fatalf("got %+v", lr.Appointments)
	}

	if _, err := c.CurrentUser(ctx); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("anonymous current user: expected Unauthenticated, got %v", err)
	}
	cur, err := c.CurrentUser(authed)
	if err != nil || cur.User == nil || cur.User.ID != ar.User.ID {
		t.Fatalf("current user: %+v %v", cur, err)
	}
	if err := c.Logout(authed); err != nil {
		t.Fatal(err)
	}
	cur, err = c.CurrentUser(authed)
	if err != nil || cur.User != nil {
		t.Fatalf("after logout: %+v %v", cur, err)
	}
}
