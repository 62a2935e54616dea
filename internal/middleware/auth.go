package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"medical-booking/internal/auth"
	"medical-booking/internal/rpc"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// skip auth for these
var open = map[string]bool{
	rpc.FullMethod("Register"): true,
	rpc.FullMethod("Login"):    true,
}

// WithUser checks an "Authorization: Bearer <jwt>" value and stores the
// token's user id in ctx.
func WithUser(ctx context.Context, header, secret string) (context.Context, error) {
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == "" {
		return nil, status.Error(codes.Unauthenticated, "no token")
	}
	claims, err := auth.ParseToken(raw, secret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "bad token")
	}
	return context.WithValue(ctx, UserIDKey, claims.UserID), nil
}

func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		header := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			header = vals[0]
		}

		ctx, err := WithUser(ctx, header, secret)
		if err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}
