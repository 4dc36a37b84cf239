package model

import (
	"time"

	"gorm.io/gorm"
)

// Appointment statuses. Cancelled appointments do not block their time slot.
const (
	AppointmentStatusScheduled = "Scheduled"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
	AppointmentStatusNoShow    = "NoShow"
)

// ValidAppointmentStatuses lists the accepted values for Appointment.Status.
var ValidAppointmentStatuses = []string{
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

// Appointment represents a scheduled visit
// @Description Appointment slot for a patient
type Appointment struct {
	gorm.Model
	PatientID           uint      `json:"patient_id" gorm:"not null;index" example:"1"`
	AppointmentDateTime time.Time `json:"appointment_date_time" gorm:"index"`
	Type                string    `json:"type" example:"Consult"`
	Notes               string    `json:"notes" example:"First visit"`
	Status              string    `json:"status" gorm:"type:varchar(16);default:Scheduled" example:"Scheduled"`
}
