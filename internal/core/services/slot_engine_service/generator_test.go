package slot_engine_service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

func fullDayHours() domain.WorkingHours {
	return domain.WorkingHours{
		IsAvailable: true,
		StartTime:   json_types.NewTimeOfDay(9, 0),
		EndTime:     json_types.NewTimeOfDay(18, 0),
	}
}

func TestGenerateDaySlotsFullWindow(t *testing.T) {
	date := json_types.NewDate(2025, time.June, 2)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	slots, err := GenerateDaySlots(date, fullDayHours(), 30, 30, now, nil)
	require.NoError(t, err)
	require.Len(t, slots, 18)

	// Слоты ровно по 30 минут, смежные, без пересечений, по возрастанию
	for i, slot := range slots {
		assert.Equal(t, 30, slot.EndTime.Minutes()-slot.StartTime.Minutes())
		if i > 0 {
			assert.Equal(t, slots[i-1].EndTime, slot.StartTime)
		}
	}
	assert.Equal(t, json_types.NewTimeOfDay(9, 0), slots[0].StartTime)
	assert.Equal(t, json_types.NewTimeOfDay(18, 0), slots[17].EndTime)
}

func TestGenerateDaySlotsPastTimeBuffer(t *testing.T) {
	date := json_types.NewDate(2025, time.June, 2)
	// Сегодняшний день, 14:05, буфер 30 минут - граница 14:35
	now := time.Date(2025, time.June, 2, 14, 5, 0, 0, time.UTC)

	slots, err := GenerateDaySlots(date, fullDayHours(), 30, 30, now, nil)
	require.NoError(t, err)

	byStart := make(map[json_types.TimeOfDay]domain.Slot)
	for _, slot := range slots {
		byStart[slot.StartTime] = slot
	}

	past := byStart[json_types.NewTimeOfDay(14, 0)]
	assert.True(t, past.IsPast)
	assert.False(t, past.IsAvailable)

	// Слот, внутрь которого попадает граница буфера, еще доступен
	eligible := byStart[json_types.NewTimeOfDay(14, 30)]
	assert.False(t, eligible.IsPast)
	assert.True(t, eligible.IsAvailable)

	// Прошедшие слоты остаются в аннотированном списке
	require.Len(t, slots, 18)
}

func TestGenerateDaySlotsUnavailableWeekday(t *testing.T) {
	// Воскресенье, по графику недоступно
	date := json_types.NewDate(2025, time.June, 1)
	require.Equal(t, time.Sunday, date.Weekday())

	hours := domain.WorkingHours{
		IsAvailable: false,
		StartTime:   json_types.NewTimeOfDay(9, 0),
		EndTime:     json_types.NewTimeOfDay(18, 0),
	}
	now := time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)

	slots, err := GenerateDaySlots(date, hours, 30, 30, now, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDaySlotsDropsPartialSlot(t *testing.T) {
	date := json_types.NewDate(2025, time.June, 2)
	hours := domain.WorkingHours{
		IsAvailable: true,
		StartTime:   json_types.NewTimeOfDay(9, 0),
		EndTime:     json_types.NewTimeOfDay(10, 45),
	}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	slots, err := GenerateDaySlots(date, hours, 30, 30, now, nil)
	require.NoError(t, err)

	// 09:00-09:30, 09:30-10:00, 10:00-10:30; неполный хвост 10:30-10:45 отброшен
	require.Len(t, slots, 3)
	assert.Equal(t, json_types.NewTimeOfDay(10, 30), slots[2].EndTime)
}

func TestGenerateDaySlotsMondayScenario(t *testing.T) {
	// Понедельник 09:00-13:00, запросили накануне - 8 слотов, все доступны
	date := json_types.NewDate(2025, time.June, 2)
	require.Equal(t, time.Monday, date.Weekday())

	hours := domain.WorkingHours{
		IsAvailable: true,
		StartTime:   json_types.NewTimeOfDay(9, 0),
		EndTime:     json_types.NewTimeOfDay(13, 0),
	}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	slots, err := GenerateDaySlots(date, hours, 30, 30, now, nil)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	assert.Equal(t, json_types.NewTimeOfDay(9, 0), slots[0].StartTime)
	assert.Equal(t, json_types.NewTimeOfDay(12, 30), slots[7].StartTime)
	assert.Equal(t, json_types.NewTimeOfDay(13, 0), slots[7].EndTime)

	for _, slot := range slots {
		assert.True(t, slot.IsAvailable)
		assert.False(t, slot.IsPast)
		assert.False(t, slot.IsOutsideWorkingHours)
	}
}

func TestGenerateDaySlotsOccupiedByAppointment(t *testing.T) {
	date := json_types.NewDate(2025, time.June, 2)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	appointmentID := uuid.New()
	appointments := []domain.Appointment{
		{
			ID:        appointmentID,
			DoctorID:  uuid.New(),
			PatientID: uuid.New(),
			Date:      date,
			StartTime: json_types.NewTimeOfDay(10, 0),
			EndTime:   json_types.NewTimeOfDay(10, 30),
			Status:    domain.AppointmentStatusScheduled,
		},
	}

	slots, err := GenerateDaySlots(date, fullDayHours(), 30, 30, now, appointments)
	require.NoError(t, err)

	byStart := make(map[json_types.TimeOfDay]domain.Slot)
	for _, slot := range slots {
		byStart[slot.StartTime] = slot
	}

	occupied := byStart[json_types.NewTimeOfDay(10, 0)]
	assert.False(t, occupied.IsAvailable)
	require.Len(t, occupied.AppointmentIDS, 1)
	assert.Equal(t, appointmentID, occupied.AppointmentIDS[0])

	// Смежный слот не затронут: интервалы полуоткрытые
	adjacent := byStart[json_types.NewTimeOfDay(10, 30)]
	assert.True(t, adjacent.IsAvailable)
	assert.Empty(t, adjacent.AppointmentIDS)
}

func TestGenerateDaySlotsCancelledDoesNotOccupy(t *testing.T) {
	date := json_types.NewDate(2025, time.June, 2)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	appointments := []domain.Appointment{
		{
			ID:        uuid.New(),
			Date:      date,
			StartTime: json_types.NewTimeOfDay(10, 0),
			EndTime:   json_types.NewTimeOfDay(10, 30),
			Status:    domain.AppointmentStatusCancelled,
		},
	}

	slots, err := GenerateDaySlots(date, fullDayHours(), 30, 30, now, appointments)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.Empty(t, slot.AppointmentIDS)
	}
}

func TestGenerateWindowSlotsValidation(t *testing.T) {
	date := json_types.NewDate(2025, time.June, 2)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	start := json_types.NewTimeOfDay(9, 0)
	end := json_types.NewTimeOfDay(18, 0)

	_, err := GenerateWindowSlots(json_types.Date{}, start, end, 30, 30, now, nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = GenerateWindowSlots(date, start, end, 0, 30, now, nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = GenerateWindowSlots(date, start, end, -15, 30, now, nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = GenerateWindowSlots(date, start, end, 30, -1, now, nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidBuffer)

	_, err = GenerateWindowSlots(date, end, start, 30, 30, now, nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestGenerateDaySlotsEarlierDateAllPast(t *testing.T) {
	date := json_types.NewDate(2025, time.June, 2)
	now := time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)

	slots, err := GenerateDaySlots(date, fullDayHours(), 30, 30, now, nil)
	require.NoError(t, err)
	require.Len(t, slots, 18)

	for _, slot := range slots {
		assert.True(t, slot.IsPast)
		assert.False(t, slot.IsAvailable)
	}
}
