package slot_engine_service

import (
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

// GenerateDaySlots генерирует аннотированные слоты врача на день в пределах рабочих часов.
// Если день недоступен по графику, возвращается пустой список.
// Чистая функция: текущее время передается явно, входные данные не изменяются.
func GenerateDaySlots(
	date json_types.Date,
	hours domain.WorkingHours,
	durationMinutes int,
	bufferMinutes int,
	now time.Time,
	appointments []domain.Appointment,
) ([]domain.Slot, error) {
	if !hours.IsAvailable {
		return []domain.Slot{}, nil
	}

	return GenerateWindowSlots(date, hours.StartTime, hours.EndTime, durationMinutes, bufferMinutes, now, appointments, false)
}

// GenerateWindowSlots генерирует слоты в произвольном окне [windowStart, windowEnd).
// Используется напрямую, когда врач отмечен присутствующим в отделении
// и его график на этот день игнорируется (outsideWorkingHours = true).
func GenerateWindowSlots(
	date json_types.Date,
	windowStart, windowEnd json_types.TimeOfDay,
	durationMinutes int,
	bufferMinutes int,
	now time.Time,
	appointments []domain.Appointment,
	outsideWorkingHours bool,
) ([]domain.Slot, error) {
	if date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if durationMinutes <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	if bufferMinutes < 0 {
		return nil, domain.ErrInvalidBuffer
	}
	if !windowStart.Valid() || !windowEnd.Valid() || !windowStart.Before(windowEnd) {
		return nil, domain.ErrInvalidTimeRange
	}

	slots := make([]domain.Slot, 0)

	// Неполный последний слот отбрасываем: конец слота не должен выходить за окно
	for slotStart := windowStart; !windowEnd.Before(slotStart.Add(durationMinutes)); slotStart = slotStart.Add(durationMinutes) {
		slotEnd := slotStart.Add(durationMinutes)

		appointmentIDS := slotAppointmentIDS(appointments, date, slotStart, slotEnd)

		isPast := isPastSlot(date, slotEnd, bufferMinutes, now)

		slot := domain.Slot{
			StartTime:             slotStart,
			EndTime:               slotEnd,
			IsPast:                isPast,
			IsOutsideWorkingHours: outsideWorkingHours,
			AppointmentIDS:        appointmentIDS,
			IsAvailable:           !isPast && len(appointmentIDS) == 0,
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// isPastSlot проверяет правило буфера записи на сегодняшнюю дату.
// Слот считается прошедшим, если он целиком заканчивается до now + буфер;
// слот, внутрь которого попадает граница буфера, еще подлежит записи
func isPastSlot(date json_types.Date, slotEnd json_types.TimeOfDay, bufferMinutes int, now time.Time) bool {
	today := json_types.DateOf(now)

	if date.Before(today) {
		return true
	}
	if !date.Equal(today) {
		return false
	}

	cutoff := now.Add(time.Duration(bufferMinutes) * time.Minute)

	// Буфер перевалил за полночь - весь остаток дня уже недоступен
	if !json_types.DateOf(cutoff).Equal(today) {
		return true
	}

	cutoffMinutes := cutoff.Hour()*60 + cutoff.Minute()

	return slotEnd.Minutes() <= cutoffMinutes
}

func slotAppointmentIDS(appointments []domain.Appointment, date json_types.Date, start, end json_types.TimeOfDay) []uuid.UUID {
	ids := make([]uuid.UUID, 0)

	for _, appointment := range appointments {
		if !appointment.Occupies() {
			continue
		}
		if !appointment.Date.Equal(date) {
			continue
		}
		if appointment.Overlaps(start, end) {
			ids = append(ids, appointment.ID)
		}
	}

	return ids
}
