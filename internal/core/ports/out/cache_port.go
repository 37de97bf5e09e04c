package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

type CachePort interface {
	// Кэширование снимков записей врача на день
	GetAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Appointment, bool)
	StoreAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date, appointments []domain.Appointment)
	InvalidateAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date)
	InvalidateAllAppointments(ctx context.Context)

	// Кэширование карточек врачей
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, bool)
	StoreDoctor(ctx context.Context, doctor domain.Doctor)
	InvalidateDoctor(ctx context.Context, doctorID uuid.UUID)
}
