package rpc

import (
	"google.golang.org/protobuf/encoding/protowire"

	"medical-booking/internal/model"
)

// Message is implemented by every request and response of BookingService.
// The encoding is the protobuf wire format of api/booking/v1/booking.proto.
type Message interface {
	AppendWire(b []byte) []byte
	UnmarshalWire(b []byte) error
}

// Empty is google.protobuf.Empty.
type Empty struct{}

func (*Empty) AppendWire(b []byte) []byte { return b }

func (*Empty) UnmarshalWire(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil })
}

type RegisterRequest struct {
	model.Profile
	Password string
}

func (m *RegisterRequest) AppendWire(b []byte) []byte {
	b = appendStrings(b, 1, profileFields(&m.Profile))
	return appendString(b, 9, m.Password)
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 9 {
			return consumeString(typ, b, &m.Password)
		}
		return consumeStrings(num, typ, b, 1, profileFields(&m.Profile))
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	return appendString(b, 2, m.Password)
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		return consumeStrings(num, typ, b, 1, []*string{&m.Email, &m.Password})
	})
}

type AuthResponse struct {
	User  model.User
	Token string
}

func (m *AuthResponse) AppendWire(b []byte) []byte {
	b = appendMessage(b, 1, appendUser(nil, &m.User))
	return appendString(b, 2, m.Token)
}

func (m *AuthResponse) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeUser(typ, b, &m.User)
		case 2:
			return consumeString(typ, b, &m.Token)
		}
		return 0, nil
	})
}

// CurrentUserResponse leaves User nil when nobody is signed in.
type CurrentUserResponse struct {
	User *model.User
}

func (m *CurrentUserResponse) AppendWire(b []byte) []byte {
	if m.User == nil {
		return b
	}
	return appendMessage(b, 1, appendUser(nil, m.User))
}

func (m *CurrentUserResponse) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		if m.User == nil {
			m.User = &model.User{}
		}
		return consumeUser(typ, b, m.User)
	})
}

type UpdateProfileRequest struct {
	model.UserPatch
}

func (m *UpdateProfileRequest) AppendWire(b []byte) []byte {
	return appendOptionals(b, 1, patchFields(&m.UserPatch))
}

func (m *UpdateProfileRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		return consumeOptionals(num, typ, b, 1, patchFields(&m.UserPatch))
	})
}

type UserResponse struct {
	User model.User
}

func (m *UserResponse) AppendWire(b []byte) []byte {
	return appendMessage(b, 1, appendUser(nil, &m.User))
}

func (m *UserResponse) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeUser(typ, b, &m.User)
	})
}

type ListAppointmentsResponse struct {
	Appointments []model.Appointment
}

func (m *ListAppointmentsResponse) AppendWire(b []byte) []byte {
	for i := range m.Appointments {
		b = appendMessage(b, 1, appendAppointment(nil, &m.Appointments[i]))
	}
	return b
}

func (m *ListAppointmentsResponse) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		var a model.Appointment
		n, err := consumeAppointment(typ, b, &a)
		if n > 0 && err == nil {
			m.Appointments = append(m.Appointments, a)
		}
		return n, err
	})
}

type CreateAppointmentRequest struct {
	model.AppointmentDetails
}

func (m *CreateAppointmentRequest) AppendWire(b []byte) []byte {
	return appendStrings(b, 1, detailFields(&m.AppointmentDetails))
}

func (m *CreateAppointmentRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		return consumeStrings(num, typ, b, 1, detailFields(&m.AppointmentDetails))
	})
}

type UpdateAppointmentRequest struct {
	ID    string
	Patch model.AppointmentPatch
}

func (m *UpdateAppointmentRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	return appendOptionals(b, 2, appointmentPatchFields(&m.Patch))
}

func (m *UpdateAppointmentRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.ID)
		}
		return consumeOptionals(num, typ, b, 2, appointmentPatchFields(&m.Patch))
	})
}

type AppointmentResponse struct {
	Appointment model.Appointment
}

func (m *AppointmentResponse) AppendWire(b []byte) []byte {
	return appendMessage(b, 1, appendAppointment(nil, &m.Appointment))
}

func (m *AppointmentResponse) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeAppointment(typ, b, &m.Appointment)
	})
}

type DeleteAppointmentRequest struct {
	ID string
}

func (m *DeleteAppointmentRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.ID) }

func (m *DeleteAppointmentRequest) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeString(typ, b, &m.ID)
	})
}

type DeleteAppointmentResponse struct {
	Deleted bool
}

func (m *DeleteAppointmentResponse) AppendWire(b []byte) []byte { return appendBool(b, 1, m.Deleted) }

func (m *DeleteAppointmentResponse) UnmarshalWire(b []byte) error {
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeBool(typ, b, &m.Deleted)
	})
}

// Field tables, in field-number order.

func profileFields(p *model.Profile) []*string {
	return []*string{&p.Name, &p.Email, &p.Phone, &p.NationalID, &p.BirthDate,
		&p.Address, &p.EmergencyContact, &p.EmergencyPhone}
}

func patchFields(p *model.UserPatch) []**string {
	return []**string{&p.Name, &p.Email, &p.Phone, &p.NationalID, &p.BirthDate,
		&p.Address, &p.EmergencyContact, &p.EmergencyPhone}
}

func detailFields(d *model.AppointmentDetails) []*string {
	return []*string{&d.Name, &d.Phone, &d.Email, &d.Date, &d.Time, &d.Specialty, &d.Notes}
}

func appointmentPatchFields(p *model.AppointmentPatch) []**string {
	return []**string{&p.Name, &p.Phone, &p.Email, &p.Date, &p.Time, &p.Specialty, &p.Notes}
}

// User: 1 id, 2-9 profile, 10 created_at.
func appendUser(b []byte, u *model.User) []byte {
	b = appendString(b, 1, u.ID)
	b = appendStrings(b, 2, profileFields(&u.Profile))
	return appendTime(b, 10, u.CreatedAt)
}

func consumeUser(typ protowire.Type, b []byte, u *model.User) (int, error) {
	v, n := consumeBytes(typ, b)
	if n <= 0 {
		return n, nil
	}
	err := decode(v, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &u.ID)
		case 10:
			return consumeTime(typ, b, &u.CreatedAt)
		}
		return consumeStrings(num, typ, b, 2, profileFields(&u.Profile))
	})
	return n, err
}

// Appointment: 1 id, 2 user_id, 3-9 details, 10 created_at.
func appendAppointment(b []byte, a *model.Appointment) []byte {
	b = appendString(b, 1, a.ID)
	b = appendString(b, 2, a.UserID)
	b = appendStrings(b, 3, detailFields(&a.AppointmentDetails))
	return appendTime(b, 10, a.CreatedAt)
}

func consumeAppointment(typ protowire.Type, b []byte, a *model.Appointment) (int, error) {
	v, n := consumeBytes(typ, b)
	if n <= 0 {
		return n, nil
	}
	err := decode(v, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &a.ID)
		case 2:
			return consumeString(typ, b, &a.UserID)
		case 10:
			return consumeTime(typ, b, &a.CreatedAt)
		}
		return consumeStrings(num, typ, b, 3, detailFields(&a.AppointmentDetails))
	})
	return n, err
}
