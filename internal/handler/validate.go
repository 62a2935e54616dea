package handler

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"medical-booking/internal/model"
)

type field = lo.Tuple2[string, string]

// required reports every blank field by name, in the order given.
func required(fields ...field) error {
	blank := lo.FilterMap(fields, func(f field, _ int) (string, bool) {
		return f.A, strings.TrimSpace(f.B) == ""
	})
	if len(blank) > 0 {
		return status.Errorf(codes.InvalidArgument, "required: %s", strings.Join(blank, ", "))
	}
	return nil
}

// present is required for optional fields: only the ones that are set.
func present(fields ...lo.Tuple2[string, *string]) error {
	set := lo.FilterMap(fields, func(f lo.Tuple2[string, *string], _ int) (field, bool) {
		if f.B == nil {
			return field{}, false
		}
		return lo.T2(f.A, *f.B), true
	})
	return required(set...)
}

func profileFields(p model.Profile) []field {
	return []field{
		lo.T2("name", p.Name),
		lo.T2("email", p.Email),
		lo.T2("phone", p.Phone),
		lo.T2("cedula", p.NationalID),
		lo.T2("birthDate", p.BirthDate),
		lo.T2("address", p.Address),
		lo.T2("emergencyContact", p.EmergencyContact),
		lo.T2("emergencyPhone", p.EmergencyPhone),
	}
}

// checkSlot validates the booking fields that are set. today is YYYY-MM-DD.
func checkSlot(date, slot, specialty *string, today string) error {
	if date != nil {
		if _, err := time.Parse(time.DateOnly, *date); err != nil {
			return status.Errorf(codes.InvalidArgument, "date %q is not YYYY-MM-DD", *date)
		}
		if *date < today {
			return status.Error(codes.InvalidArgument, "date is in the past")
		}
	}
	if slot != nil && !model.IsTimeSlot(*slot) {
		return status.Errorf(codes.InvalidArgument, "time %q is not a bookable slot", *slot)
	}
	if specialty != nil && !model.IsSpecialty(*specialty) {
		return status.Errorf(codes.InvalidArgument, "unknown specialty %q", *specialty)
	}
	return nil
}
