package model

import "time"

// Profile is everything a user fills in on the registration form.
type Profile struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	NationalID       string `json:"cedula"`
	BirthDate        string `json:"birthDate"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
}

type User struct {
	ID string `json:"id"`
	Profile
	CreatedAt time.Time `json:"createdAt"`
}

// UserPatch carries the profile fields to overwrite. Nil fields are kept.
type UserPatch struct {
	Name             *string `json:"name,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	NationalID       *string `json:"cedula,omitempty"`
	BirthDate        *string `json:"birthDate,omitempty"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
	EmergencyPhone   *string `json:"emergencyPhone,omitempty"`
}

// Apply returns u with every non-nil patch field written over it.
func (p UserPatch) Apply(u User) User {
	set(&u.Name, p.Name)
	set(&u.Email, p.Email)
	set(&u.Phone, p.Phone)
	set(&u.NationalID, p.NationalID)
	set(&u.BirthDate, p.BirthDate)
	set(&u.Address, p.Address)
	set(&u.EmergencyContact, p.EmergencyContact)
	set(&u.EmergencyPhone, p.EmergencyPhone)
	return u
}

// AppointmentDetails is an appointment without its identity and owner.
// Name, Phone and Email are a snapshot of the owner's contact at booking time.
type AppointmentDetails struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Specialty string `json:"specialty"`
	Notes     string `json:"notes"`
}

type Appointment struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	AppointmentDetails
	CreatedAt time.Time `json:"createdAt"`
}

type AppointmentPatch struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (p AppointmentPatch) Apply(a Appointment) Appointment {
	set(&a.Name, p.Name)
	set(&a.Phone, p.Phone)
	set(&a.Email, p.Email)
	set(&a.Date, p.Date)
	set(&a.Time, p.Time)
	set(&a.Specialty, p.Specialty)
	set(&a.Notes, p.Notes)
	return a
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
