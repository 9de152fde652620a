package model

import "time"

// AvailabilitySlot is a meeting time a professor has opened for booking.
//
// MeetingTime is stored and compared as an opaque string (minute granularity,
// e.g. "2024-05-01T10:00"). Booking matches on the exact string, so the value
// is never parsed into a time.Time; two different spellings of the same
// instant are two different slots.
//
// Slots are immutable: no cancellation or edit flow exists. A professor may
// publish the same time twice; the duplicates are distinct records that share
// one derived booking state.
type AvailabilitySlot struct {
	MeetingID   string    `json:"meetingId"   db:"meeting_id"`
	ProfessorID string    `json:"professorId" db:"professor_id"`
	MeetingTime string    `json:"meetingTime" db:"meeting_time"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
}

// SlotStatus is a slot annotated with its derived booking state.
//
// IsBooked is computed, never stored: a slot is booked iff an appointment
// exists with the same professor and the same meeting-time string. Embedding
// flattens the slot fields into the JSON alongside isBooked, matching the
// shape the dashboard consumes.
type SlotStatus struct {
	AvailabilitySlot
	IsBooked bool `json:"isBooked"`
}
