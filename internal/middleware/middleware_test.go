package middleware_test

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"medical-booking/internal/auth"
	"medical-booking/internal/middleware"
	"medical-booking/internal/rpc"
)

const secret = "test-secret"

func info(method string) *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(method)}
}

// echoUID returns whatever user id the interceptor stored.
func echoUID(ctx context.Context, _ any) (any, error) {
	id, _ := ctx.Value(middleware.UserIDKey).(string)
	return id, nil
}

func withAuth(header string) context.Context {
	md := metadata.New(map[string]string{"authorization": header})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestAuth(t *testing.T) {
	intercept := middleware.Auth(secret)
	good, _ := auth.MakeToken("u1", secret)
	forged, _ := auth.MakeToken("u1", "other-secret")

	tests := []struct {
		name    string
		ctx     context.Context
		method  string
		wantUID string
		code    codes.Code
	}{
		{"open method without metadata", context.Background(), "Login", "", codes.OK},
		{"session method without metadata", context.Background(), "CurrentUser", "", codes.Unauthenticated},
		{"profile update without metadata", context.Background(), "UpdateProfile", "", codes.Unauthenticated},
		{"session method with token", withAuth("Bearer " + good), "Logout", "u1", codes.OK},
		{"no metadata", context.Background(), "ListAppointments", "", codes.Unauthenticated},
		{"empty header", withAuth(""), "ListAppointments", "", codes.Unauthenticated},
		{"forged token", withAuth("Bearer " + forged), "CreateAppointment", "", codes.Unauthenticated},
		{"garbage", withAuth("Bearer not.a.token"), "DeleteAppointment", "", codes.Unauthenticated},
		{"valid", withAuth("Bearer " + good), "ListAppointments", "u1", codes.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := intercept(tt.ctx, nil, info(tt.method), echoUID)
			if status.Code(err) != tt.code {
				t.Fatalf("code = %v, want %v (%v)", status.Code(err), tt.code, err)
			}
			if err == nil && got != tt.wantUID {
				t.Errorf("uid = %v, want %q", got, tt.wantUID)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := middleware.NewRateLimiter(ctx, 0.001, 2)
	intercept := middleware.RateLimit(rl)
	pctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 4000}})

	for i := 0; i < 2; i++ {
		if _, err := intercept(pctx, nil, info("Login"), echoUID); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	_, err := intercept(pctx, nil, info("Register"), echoUID)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}

	// appointment methods are not limited
	if _, err := intercept(pctx, nil, info("ListAppointments"), echoUID); err != nil {
		t.Fatalf("unlimited method: %v", err)
	}

	// another peer has its own bucket
	other := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 2), Port: 4000}})
	if _, err := intercept(other, nil, info("Login"), echoUID); err != nil {
		t.Fatalf("second peer: %v", err)
	}
}

func fromPeer(ip net.IP, forwarded string) context.Context {
	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: ip, Port: 4000}})
	if forwarded != "" {
		ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(middleware.ForwardedFor, forwarded))
	}
	return ctx
}

func TestRateLimitForwardedFor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := middleware.NewRateLimiter(ctx, 0.001, 1)
	intercept := middleware.RateLimit(rl)
	login := func(c context.Context) codes.Code {
		_, err := intercept(c, nil, info("Login"), echoUID)
		return status.Code(err)
	}

	// the bridge relays from loopback: one bucket per forwarded browser
	if c := login(fromPeer(net.IPv4(127, 0, 0, 1), "198.51.100.7")); c != codes.OK {
		t.Fatalf("first browser: %v", c)
	}
	if c := login(fromPeer(net.IPv4(127, 0, 0, 1), "203.0.113.9")); c != codes.OK {
		t.Fatalf("second browser: %v", c)
	}
	if c := login(fromPeer(net.IPv4(127, 0, 0, 1), "198.51.100.7")); c != codes.ResourceExhausted {
		t.Fatalf("repeat browser: %v", c)
	}

	// remote peers cannot pick their own bucket with the header
	remote := net.IPv4(10, 0, 0, 9)
	if c := login(fromPeer(remote, "1.1.1.1")); c != codes.OK {
		t.Fatalf("remote first: %v", c)
	}
	if c := login(fromPeer(remote, "2.2.2.2")); c != codes.ResourceExhausted {
		t.Fatalf("remote with rotated header: %v", c)
	}

	// and the port is not part of the key
	if c := login(peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: remote, Port: 4001}})); c != codes.ResourceExhausted {
		t.Fatalf("remote new port: %v", c)
	}
}
