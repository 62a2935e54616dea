package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"medical-booking/internal/events"
	"medical-booking/internal/middleware"
	"medical-booking/internal/rpc"
	"medical-booking/internal/service"
)

var _ rpc.BookingServiceServer = (*Handler)(nil)

type Handler struct {
	dir    *service.Directory
	apts   *service.Appointments
	events events.Publisher
	secret string
	log    *slog.Logger
	now    func() time.Time
}

func New(dir *service.Directory, apts *service.Appointments, pub events.Publisher, secret string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if pub == nil {
		pub = events.NewLog(log)
	}
	return &Handler{dir: dir, apts: apts, events: pub, secret: secret, log: log, now: time.Now}
}

func uid(ctx context.Context) (string, error) {
	id, _ := ctx.Value(middleware.UserIDKey).(string)
	if id == "" {
		return "", status.Error(codes.Unauthenticated, "no token")
	}
	return id, nil
}

// fail turns a service error into a status. Unexpected errors are logged
// here and hidden from the client.
func (h *Handler) fail(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	h.log.ErrorContext(ctx, op+" failed", "err", err)
	return status.Error(codes.Internal, "internal error")
}

func (h *Handler) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = h.now()
	if err := h.events.Publish(ctx, e); err != nil {
		h.log.WarnContext(ctx, "publish event", "type", e.Type, "appointment", e.AppointmentID, "err", err)
	}
}
