package model

import "github.com/samber/lo"

// Specialties offered on the booking form.
var Specialties = []string{
	"Medicina General",
	"Cardiología",
	"Dermatología",
	"Ginecología",
	"Neurología",
	"Pediatría",
	"Psicología",
	"Traumatología",
}

// TimeSlots are the bookable half-hour starts, morning and afternoon.
var TimeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

func IsSpecialty(s string) bool { return lo.Contains(Specialties, s) }

func IsTimeSlot(s string) bool { return lo.Contains(TimeSlots, s) }
