package slot_engine_service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

// HasActiveAppointment проверяет политику "одна активная запись на пациента".
// Активной считается запись в статусе scheduled или in_progress
// на дату не раньше referenceDate.
func HasActiveAppointment(
	patientID uuid.UUID,
	referenceDate json_types.Date,
	snapshot []domain.Appointment,
) (domain.ActiveAppointmentCheck, error) {
	if referenceDate.IsZero() {
		return domain.ActiveAppointmentCheck{}, domain.ErrInvalidDate
	}

	for _, appointment := range snapshot {
		if appointment.PatientID != patientID {
			continue
		}
		if appointment.IsTerminal() {
			continue
		}
		if appointment.Date.Before(referenceDate) {
			continue
		}

		existing := appointment
		return domain.ActiveAppointmentCheck{
			HasAppointment:      true,
			CanCreateNew:        false,
			ExistingAppointment: &existing,
			Reason: fmt.Sprintf("patient already has an active appointment on %s at %s",
				existing.Date, existing.StartTime),
		}, nil
	}

	return domain.ActiveAppointmentCheck{
		HasAppointment: false,
		CanCreateNew:   true,
	}, nil
}
