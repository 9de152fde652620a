package model

import "time"

// Appointment records a student's booking of a professor's time slot.
//
// TimeSlot repeats the slot's meeting-time string rather than referencing a
// slot ID. The invariant lives on the (ProfessorID, TimeSlot) pair: at most
// one appointment may exist for it, enforced by a unique index in the store
// so that concurrent bookings cannot both succeed.
//
// Appointments are never mutated or deleted.
type Appointment struct {
	AppointmentID string    `json:"appointmentId" db:"appointment_id"`
	StudentID     string    `json:"studentId"     db:"student_id"`
	ProfessorID   string    `json:"professorId"   db:"professor_id"`
	TimeSlot      string    `json:"timeSlot"      db:"time_slot"`
	CreatedAt     time.Time `json:"createdAt"     db:"created_at"`
}
