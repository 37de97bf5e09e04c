package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID        uuid.UUID            `json:"id"`
	DoctorID  uuid.UUID            `json:"doctorId"`
	PatientID uuid.UUID            `json:"patientId"`
	Date      json_types.Date      `json:"date"`
	StartTime json_types.TimeOfDay `json:"start"`
	EndTime   json_types.TimeOfDay `json:"end"`
	Status    AppointmentStatus    `json:"status"`
}

// Occupies - занимает ли запись слот в расписании
// Отмененная запись слот не занимает
func (a Appointment) Occupies() bool {
	return a.Status != AppointmentStatusCancelled
}

// IsTerminal - завершена ли запись (прием состоялся или отменен)
func (a Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// Overlaps проверяет пересечение полуоткрытых интервалов [start, end)
// Смежные записи (конец одной равен началу другой) не пересекаются
func (a Appointment) Overlaps(start, end json_types.TimeOfDay) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}
