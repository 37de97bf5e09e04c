package slot_engine_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/config"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
	"github.com/suchimauz/dental-slots-engine/internal/core/ports/out"
)

type SlotEngineService struct {
	clinicPort out.ClinicPort
	cachePort  out.CachePort
	logger     out.LoggerPort
	cfg        *config.Config
	clock      func() time.Time
	location   *time.Location
}

// NewSlotEngineService собирает сервис движка слотов.
// clock передается извне, чтобы правила буфера и прошедшего времени
// были детерминированы в тестах; nil означает time.Now
func NewSlotEngineService(
	clinicPort out.ClinicPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
	clock func() time.Time,
) *SlotEngineService {
	if clock == nil {
		clock = time.Now
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		location = time.UTC
	}

	return &SlotEngineService{
		clinicPort: clinicPort,
		cachePort:  cachePort,
		logger:     logger.WithModule("SlotEngineService"),
		cfg:        cfg,
		clock:      clock,
		location:   location,
	}
}

// now - текущее время в таймзоне клиники
func (s *SlotEngineService) now() time.Time {
	return s.clock().In(s.location)
}

func (s *SlotEngineService) GetDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Slot, []domain.DebugInfo, error) {
	debugInfo := SlotEngineServiceDebug{
		data: make([]domain.DebugInfo, 0),
	}
	s.logger.Info("slots.day.started", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})

	if date.IsZero() {
		return nil, nil, domain.ErrInvalidDate
	}

	get_doctor_debug := domain.DebugInfo{
		Event: "slots.day.doctor.fetch",
	}
	get_doctor_debug.Start()

	doctor, err := s.getDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("slots.day.doctor.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, nil, fmt.Errorf("slots.day.doctor.fetch_failed: %w", err)
	}
	get_doctor_debug.Elapse()
	debugInfo.AddDebugInfo(get_doctor_debug)

	get_appointments_debug := domain.DebugInfo{
		Event: "slots.day.appointments.fetch",
	}
	get_appointments_debug.Start()

	appointments, err := s.getDoctorAppointments(ctx, doctorID, date)
	if err != nil {
		s.logger.Error("slots.day.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		return nil, nil, fmt.Errorf("slots.day.appointments.fetch_failed: %w", err)
	}
	get_appointments_debug.Elapse()
	debugInfo.AddDebugInfo(get_appointments_debug)

	generate_debug := domain.DebugInfo{
		Event: "slots.day.generate",
	}
	generate_debug.Start()

	slots, err := s.generateDoctorDaySlots(doctor, date, appointments)
	if err != nil {
		return nil, nil, err
	}

	generate_debug.Elapse()
	generate_debug.AddOption("slotsCount", fmt.Sprintf("%d", len(slots)))
	debugInfo.AddDebugInfo(generate_debug)

	return slots, debugInfo.data, nil
}

func (s *SlotEngineService) generateDoctorDaySlots(doctor *domain.Doctor, date json_types.Date, appointments []domain.Appointment) ([]domain.Slot, error) {
	now := s.now()

	hours := s.doctorSchedule(doctor).ForWeekday(date.Weekday())

	// Врач в отделении вне графика: генерируем по окну клиники
	// и помечаем слоты как вне рабочих часов
	if !hours.IsAvailable && doctor.ActiveInBranch {
		return GenerateWindowSlots(
			date,
			s.cfg.Engine.WorkDayStart, s.cfg.Engine.WorkDayEnd,
			s.cfg.Engine.SlotDurationMinutes, s.cfg.Engine.BookingBufferMinutes,
			now, appointments, true,
		)
	}

	return GenerateDaySlots(
		date, hours,
		s.cfg.Engine.SlotDurationMinutes, s.cfg.Engine.BookingBufferMinutes,
		now, appointments,
	)
}

func (s *SlotEngineService) CheckAvailability(ctx context.Context, query domain.SlotQuery) (domain.SlotAvailabilityResult, error) {
	s.logger.Info("slots.check.started", out.LogFields{
		"doctorId":  query.DoctorID,
		"date":      query.Date.String(),
		"start":     query.StartTime.String(),
		"end":       query.EndTime.String(),
		"patientId": query.PatientID,
		"isWalkIn":  query.IsWalkIn,
	})

	var doctor *domain.Doctor
	var snapshot []domain.Appointment

	if query.DoctorID != nil {
		fetched, err := s.getDoctor(ctx, *query.DoctorID)
		if err != nil {
			s.logger.Error("slots.check.doctor.fetch_failed", out.LogFields{
				"doctorId": *query.DoctorID,
				"error":    err.Error(),
			})
			return domain.SlotAvailabilityResult{}, fmt.Errorf("slots.check.doctor.fetch_failed: %w", err)
		}

		// Врач без собственного графика проверяется по окну клиники,
		// так же как при генерации слотов на день
		withSchedule := *fetched
		withSchedule.Schedule = s.doctorSchedule(fetched)
		doctor = &withSchedule

		snapshot, err = s.getDoctorAppointments(ctx, *query.DoctorID, query.Date)
		if err != nil {
			s.logger.Error("slots.check.appointments.fetch_failed", out.LogFields{
				"doctorId": *query.DoctorID,
				"error":    err.Error(),
			})
			return domain.SlotAvailabilityResult{}, fmt.Errorf("slots.check.appointments.fetch_failed: %w", err)
		}
	}

	result, err := CheckSlotAvailability(query, doctor, snapshot, s.cfg.Engine.BookingBufferMinutes, s.now())
	if err != nil {
		return domain.SlotAvailabilityResult{}, err
	}

	s.logger.Debug("slots.check.finished", out.LogFields{
		"available": result.Available,
		"reason":    result.Reason,
	})

	return result, nil
}

func (s *SlotEngineService) CheckActiveAppointment(ctx context.Context, patientID uuid.UUID, from json_types.Date) (domain.ActiveAppointmentCheck, error) {
	s.logger.Info("appointments.active_check.started", out.LogFields{
		"patientId": patientID,
		"from":      from.String(),
	})

	if from.IsZero() {
		from = json_types.DateOf(s.now())
	}

	snapshot, err := s.clinicPort.GetPatientAppointments(ctx, patientID, from)
	if err != nil {
		s.logger.Error("appointments.active_check.fetch_failed", out.LogFields{
			"patientId": patientID,
			"error":     err.Error(),
		})
		return domain.ActiveAppointmentCheck{}, fmt.Errorf("appointments.active_check.fetch_failed: %w", err)
	}

	return HasActiveAppointment(patientID, from, snapshot)
}

// doctorSchedule возвращает график врача,
// при его отсутствии - расписание клиники по умолчанию
func (s *SlotEngineService) doctorSchedule(doctor *domain.Doctor) *domain.WeekSchedule {
	if doctor.Schedule != nil {
		return doctor.Schedule
	}

	defaultSchedule := domain.DefaultWeekSchedule(s.cfg.Engine.WorkDayStart, s.cfg.Engine.WorkDayEnd)
	return &defaultSchedule
}

// getDoctor запрашивает карточку врача, сначала проверяя кэш
func (s *SlotEngineService) getDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error) {
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if doctor, exists := s.cachePort.GetDoctor(ctx, doctorID); exists {
			s.logger.Debug("doctor.cache.hit", out.LogFields{
				"doctorId": doctorID,
			})
			return doctor, nil
		}
	}

	doctor, err := s.clinicPort.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreDoctor(ctx, *doctor)
	}

	return doctor, nil
}

// getDoctorAppointments запрашивает снимок записей врача на день, сначала проверяя кэш
func (s *SlotEngineService) getDoctorAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Appointment, error) {
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if appointments, exists := s.cachePort.GetAppointments(ctx, doctorID, date); exists {
			s.logger.Debug("appointments.cache.hit", out.LogFields{
				"doctorId":          doctorID,
				"date":              date.String(),
				"appointmentsCount": len(appointments),
			})
			return appointments, nil
		}
	}

	s.logger.Debug("appointments.cache.miss", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})

	appointments, err := s.clinicPort.GetDoctorAppointments(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreAppointments(ctx, doctorID, date, appointments)
	}

	return appointments, nil
}
