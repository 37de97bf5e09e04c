package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

type SlotEngineUseCase interface {
	// Аннотированные слоты врача на день
	GetDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Slot, []domain.DebugInfo, error)

	// Проверка доступности конкретного слота
	CheckAvailability(ctx context.Context, query domain.SlotQuery) (domain.SlotAvailabilityResult, error)

	// Проверка "одна активная запись на пациента"
	CheckActiveAppointment(ctx context.Context, patientID uuid.UUID, from json_types.Date) (domain.ActiveAppointmentCheck, error)

	// Обслуживание кэша при событиях изменения записей
	InvalidateAppointmentsCache(ctx context.Context, doctorID uuid.UUID, date json_types.Date) error
	InvalidateDoctorCache(ctx context.Context, doctorID uuid.UUID) error
	InvalidateAllCache(ctx context.Context) error
}
