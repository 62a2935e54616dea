package store

import (
	"context"

	"medical-booking/internal/model"
	"medical-booking/internal/storage"
)

func (s *Store) Appointments(ctx context.Context) ([]model.Appointment, error) {
	apts, _, err := load[[]model.Appointment](ctx, s, storage.KeyAppointments)
	if err != nil {
		return nil, err
	}
	if apts == nil {
		apts = []model.Appointment{}
	}
	return apts, nil
}

func (s *Store) SaveAppointments(ctx context.Context, apts []model.Appointment) error {
	if apts == nil {
		apts = []model.Appointment{}
	}
	return s.save(ctx, storage.KeyAppointments, apts)
}
