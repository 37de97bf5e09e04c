package slot_engine_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
	"github.com/suchimauz/dental-slots-engine/internal/core/ports/out"
)

// Обслуживание кэша по событиям изменения записей из RabbitMQ

func (s *SlotEngineService) InvalidateAppointmentsCache(ctx context.Context, doctorID uuid.UUID, date json_types.Date) error {
	if s.cachePort == nil {
		return nil
	}

	s.logger.Debug("cache.appointments.invalidate", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})
	s.cachePort.InvalidateAppointments(ctx, doctorID, date)

	return nil
}

func (s *SlotEngineService) InvalidateDoctorCache(ctx context.Context, doctorID uuid.UUID) error {
	if s.cachePort == nil {
		return nil
	}

	s.logger.Debug("cache.doctor.invalidate", out.LogFields{
		"doctorId": doctorID,
	})
	s.cachePort.InvalidateDoctor(ctx, doctorID)

	return nil
}

func (s *SlotEngineService) InvalidateAllCache(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}

	s.logger.Debug("cache.invalidate_all", out.LogFields{})
	s.cachePort.InvalidateAllAppointments(ctx)

	return nil
}
