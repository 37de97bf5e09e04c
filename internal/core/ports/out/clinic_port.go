package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

// ClinicPort - снимки данных клиники (REST-бэкенд)
// Движок не является источником истины по конфликтам записи,
// авторитетная проверка остается за бэкендом клиники
type ClinicPort interface {
	// Карточка врача с графиком работы и флагом присутствия в отделении
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error)

	// Записи врача на конкретную дату
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Appointment, error)

	// Записи пациента начиная с указанной даты
	GetPatientAppointments(ctx context.Context, patientID uuid.UUID, from json_types.Date) ([]domain.Appointment, error)
}
