package service

import (
	"context"

	"github.com/samber/lo"

	"medical-booking/internal/model"
	"medical-booking/internal/store"
)

// Appointments owns the appointments collection. Every operation is scoped by
// owner; records of other users are never returned or touched.
type Appointments struct {
	store *store.Store
	opts  options
}

func NewAppointments(st *store.Store, opts ...Option) *Appointments {
	return &Appointments{store: st, opts: buildOptions(opts)}
}

func owned(id, userID string) func(model.Appointment) bool {
	return func(a model.Appointment) bool { return a.ID == id && a.UserID == userID }
}

// ListByUser returns the user's appointments in booking order.
func (s *Appointments) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	apts, err := s.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(apts, func(a model.Appointment, _ int) bool { return a.UserID == userID }), nil
}

// Create books an appointment for userID. Details are stored as given.
func (s *Appointments) Create(ctx context.Context, userID string, d model.AppointmentDetails) (model.Appointment, error) {
	apts, err := s.store.Appointments(ctx)
	if err != nil {
		return model.Appointment{}, err
	}

	a := model.Appointment{
		ID:                 s.opts.newID(),
		UserID:             userID,
		AppointmentDetails: d,
		CreatedAt:          s.opts.now(),
	}
	if err := s.store.SaveAppointments(ctx, append(apts, a)); err != nil {
		return model.Appointment{}, err
	}
	return a, nil
}

// Delete removes the appointment if userID owns it. An unknown id and someone
// else's appointment both report false.
func (s *Appointments) Delete(ctx context.Context, id, userID string) (bool, error) {
	apts, err := s.store.Appointments(ctx)
	if err != nil {
		return false, err
	}
	match := owned(id, userID)
	kept := lo.Reject(apts, func(a model.Appointment, _ int) bool { return match(a) })
	if len(kept) == len(apts) {
		return false, nil
	}
	if err := s.store.SaveAppointments(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Update merges patch over the owned appointment. It returns nil, nil when
// there is no such appointment for userID.
func (s *Appointments) Update(ctx context.Context, id, userID string, patch model.AppointmentPatch) (*model.Appointment, error) {
	apts, err := s.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	_, i, ok := lo.FindIndexOf(apts, owned(id, userID))
	if !ok {
		return nil, nil
	}

	apts[i] = patch.Apply(apts[i])
	if err := s.store.SaveAppointments(ctx, apts); err != nil {
		return nil, err
	}
	merged := apts[i]
	return &merged, nil
}
