package handler

import (
	"context"
	"time"

	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"medical-booking/internal/events"
	"medical-booking/internal/rpc"
)

// today is the UTC calendar date, whatever the server's zone.
func (h *Handler) today() string { return h.now().UTC().Format(time.DateOnly) }

func (h *Handler) ListAppointments(ctx context.Context, _ *rpc.Empty) (*rpc.ListAppointmentsResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	apts, err := h.apts.ListByUser(ctx, userID)
	if err != nil {
		return nil, h.fail(ctx, "list appointments", err)
	}
	return &rpc.ListAppointmentsResponse{Appointments: apts}, nil
}

// CreateAppointment books a slot for the caller. Contact fields left empty
// are copied from the caller's profile.
func (h *Handler) CreateAppointment(ctx context.Context, req *rpc.CreateAppointmentRequest) (*rpc.AppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	d := req.AppointmentDetails
	if err := required(lo.T2("date", d.Date), lo.T2("time", d.Time), lo.T2("specialty", d.Specialty)); err != nil {
		return nil, err
	}
	if err := checkSlot(&d.Date, &d.Time, &d.Specialty, h.today()); err != nil {
		return nil, err
	}

	if d.Name == "" || d.Phone == "" || d.Email == "" {
		u, err := h.dir.User(ctx, userID)
		if err != nil {
			return nil, h.fail(ctx, "create appointment", err)
		}
		d.Name = lo.Ternary(d.Name != "", d.Name, u.Name)
		d.Phone = lo.Ternary(d.Phone != "", d.Phone, u.Phone)
		d.Email = lo.Ternary(d.Email != "", d.Email, u.Email)
	}

	a, err := h.apts.Create(ctx, userID, d)
	if err != nil {
		return nil, h.fail(ctx, "create appointment", err)
	}

	h.publish(ctx, events.Event{
		Type:          events.AppointmentBooked,
		AppointmentID: a.ID,
		UserID:        userID,
		Date:          a.Date,
		Time:          a.Time,
		Specialty:     a.Specialty,
	})
	return &rpc.AppointmentResponse{Appointment: a}, nil
}

func (h *Handler) UpdateAppointment(ctx context.Context, req *rpc.UpdateAppointmentRequest) (*rpc.AppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	p := req.Patch
	if err := present(lo.T2("date", p.Date), lo.T2("time", p.Time), lo.T2("specialty", p.Specialty)); err != nil {
		return nil, err
	}
	if err := checkSlot(p.Date, p.Time, p.Specialty, h.today()); err != nil {
		return nil, err
	}

	a, err := h.apts.Update(ctx, req.ID, userID, p)
	if err != nil {
		return nil, h.fail(ctx, "update appointment", err)
	}
	// someone else's appointment looks the same as a missing one
	if a == nil {
		return nil, status.Error(codes.NotFound, "appointment not found")
	}
	return &rpc.AppointmentResponse{Appointment: *a}, nil
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *rpc.DeleteAppointmentRequest) (*rpc.DeleteAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	ok, err := h.apts.Delete(ctx, req.ID, userID)
	if err != nil {
		return nil, h.fail(ctx, "delete appointment", err)
	}
	if !ok {
		return nil, status.Error(codes.NotFound, "appointment not found")
	}

	h.publish(ctx, events.Event{Type: events.AppointmentCancelled, AppointmentID: req.ID, UserID: userID})
	return &rpc.DeleteAppointmentResponse{Deleted: true}, nil
}
