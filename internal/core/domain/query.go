package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

// SlotQuery - запрос проверки доступности конкретного слота
type SlotQuery struct {
	DoctorID             *uuid.UUID           `json:"doctorId,omitempty"`
	Date                 json_types.Date      `json:"date"`
	StartTime            json_types.TimeOfDay `json:"start"`
	EndTime              json_types.TimeOfDay `json:"end"`
	PatientID            uuid.UUID            `json:"patientId"`
	ExcludeAppointmentID *uuid.UUID           `json:"excludeAppointmentId,omitempty"`
	IsWalkIn             bool                 `json:"isWalkIn"`
}

type UnavailableReason string

const (
	ReasonPastTime            UnavailableReason = "past_time"
	ReasonOutsideWorkingHours UnavailableReason = "outside_working_hours"
	ReasonDoctorConflict      UnavailableReason = "doctor_conflict"
)

type SlotAvailabilityResult struct {
	Available bool              `json:"available"`
	Reason    UnavailableReason `json:"reason,omitempty"`
	// ConflictIDS - записи, из-за которых слот занят (при ReasonDoctorConflict)
	ConflictIDS []uuid.UUID `json:"conflictIds,omitempty"`
}

// ActiveAppointmentCheck - результат проверки "одна активная запись на пациента"
type ActiveAppointmentCheck struct {
	HasAppointment      bool         `json:"hasAppointment"`
	CanCreateNew        bool         `json:"canCreateNew"`
	ExistingAppointment *Appointment `json:"existingAppointment,omitempty"`
	Reason              string       `json:"reason,omitempty"`
}
