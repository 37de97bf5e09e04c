package slot_engine_service

import (
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

// CheckSlotAvailability проверяет, свободен ли конкретный слот.
// Результат совещательный: авторитетная проверка конфликтов остается за бэкендом клиники.
// doctor может быть nil - тогда проверка по рабочим часам и по конфликтам врача не выполняется.
func CheckSlotAvailability(
	query domain.SlotQuery,
	doctor *domain.Doctor,
	snapshot []domain.Appointment,
	bufferMinutes int,
	now time.Time,
) (domain.SlotAvailabilityResult, error) {
	if query.Date.IsZero() {
		return domain.SlotAvailabilityResult{}, domain.ErrInvalidDate
	}
	if !query.StartTime.Valid() || !query.EndTime.Valid() || !query.StartTime.Before(query.EndTime) {
		return domain.SlotAvailabilityResult{}, domain.ErrInvalidTimeRange
	}
	if bufferMinutes < 0 {
		return domain.SlotAvailabilityResult{}, domain.ErrInvalidBuffer
	}

	// Walk-in начинается сейчас, буфер записи к нему не применяется
	if !query.IsWalkIn && isPastSlot(query.Date, query.EndTime, bufferMinutes, now) {
		return domain.SlotAvailabilityResult{
			Available: false,
			Reason:    domain.ReasonPastTime,
		}, nil
	}

	// Рабочие часы проверяем, только если врач не отмечен присутствующим в отделении
	if doctor != nil && doctor.Schedule != nil && !doctor.ActiveInBranch {
		hours := doctor.Schedule.ForWeekday(query.Date.Weekday())
		if !withinWorkingHours(hours, query.StartTime, query.EndTime) {
			return domain.SlotAvailabilityResult{
				Available: false,
				Reason:    domain.ReasonOutsideWorkingHours,
			}, nil
		}
	}

	// Без привязки к врачу конфликтов по врачу не бывает
	if query.DoctorID != nil {
		conflictIDS := conflictingAppointmentIDS(query, snapshot)
		if len(conflictIDS) > 0 {
			return domain.SlotAvailabilityResult{
				Available:   false,
				Reason:      domain.ReasonDoctorConflict,
				ConflictIDS: conflictIDS,
			}, nil
		}
	}

	return domain.SlotAvailabilityResult{Available: true}, nil
}

func withinWorkingHours(hours domain.WorkingHours, start, end json_types.TimeOfDay) bool {
	if !hours.IsAvailable {
		return false
	}
	return !start.Before(hours.StartTime) && !hours.EndTime.Before(end)
}

func conflictingAppointmentIDS(query domain.SlotQuery, snapshot []domain.Appointment) []uuid.UUID {
	ids := make([]uuid.UUID, 0)

	for _, appointment := range snapshot {
		if appointment.DoctorID != *query.DoctorID {
			continue
		}
		if !appointment.Date.Equal(query.Date) {
			continue
		}
		if !appointment.Occupies() {
			continue
		}
		// Перенос записи: собственный слот записи не считается занятым
		if query.ExcludeAppointmentID != nil && appointment.ID == *query.ExcludeAppointmentID {
			continue
		}
		if appointment.Overlaps(query.StartTime, query.EndTime) {
			ids = append(ids, appointment.ID)
		}
	}

	return ids
}
