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

func patientAppointment(patientID uuid.UUID, date json_types.Date, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		PatientID: patientID,
		Date:      date,
		StartTime: json_types.NewTimeOfDay(10, 0),
		EndTime:   json_types.NewTimeOfDay(10, 30),
		Status:    status,
	}
}

func TestHasActiveAppointmentBlocksScheduled(t *testing.T) {
	patientID := uuid.New()
	from := json_types.NewDate(2025, time.June, 1)

	snapshot := []domain.Appointment{
		patientAppointment(patientID, json_types.NewDate(2025, time.June, 3), domain.AppointmentStatusScheduled),
	}

	check, err := HasActiveAppointment(patientID, from, snapshot)
	require.NoError(t, err)
	assert.True(t, check.HasAppointment)
	assert.False(t, check.CanCreateNew)
	require.NotNil(t, check.ExistingAppointment)
	assert.Equal(t, snapshot[0].ID, check.ExistingAppointment.ID)
	assert.NotEmpty(t, check.Reason)
}

func TestHasActiveAppointmentBlocksInProgress(t *testing.T) {
	patientID := uuid.New()
	from := json_types.NewDate(2025, time.June, 1)

	snapshot := []domain.Appointment{
		patientAppointment(patientID, from, domain.AppointmentStatusInProgress),
	}

	check, err := HasActiveAppointment(patientID, from, snapshot)
	require.NoError(t, err)
	assert.True(t, check.HasAppointment)
	assert.False(t, check.CanCreateNew)
}

func TestHasActiveAppointmentTerminalAllowsNew(t *testing.T) {
	patientID := uuid.New()
	from := json_types.NewDate(2025, time.June, 1)

	snapshot := []domain.Appointment{
		patientAppointment(patientID, json_types.NewDate(2025, time.June, 3), domain.AppointmentStatusCompleted),
		patientAppointment(patientID, json_types.NewDate(2025, time.June, 5), domain.AppointmentStatusCancelled),
	}

	check, err := HasActiveAppointment(patientID, from, snapshot)
	require.NoError(t, err)
	assert.False(t, check.HasAppointment)
	assert.True(t, check.CanCreateNew)
	assert.Nil(t, check.ExistingAppointment)
}

func TestHasActiveAppointmentIgnoresEarlierDates(t *testing.T) {
	patientID := uuid.New()
	from := json_types.NewDate(2025, time.June, 1)

	// Запись раньше опорной даты не блокирует создание новой
	snapshot := []domain.Appointment{
		patientAppointment(patientID, json_types.NewDate(2025, time.May, 20), domain.AppointmentStatusScheduled),
	}

	check, err := HasActiveAppointment(patientID, from, snapshot)
	require.NoError(t, err)
	assert.True(t, check.CanCreateNew)
}

func TestHasActiveAppointmentIgnoresOtherPatients(t *testing.T) {
	patientID := uuid.New()
	from := json_types.NewDate(2025, time.June, 1)

	snapshot := []domain.Appointment{
		patientAppointment(uuid.New(), json_types.NewDate(2025, time.June, 3), domain.AppointmentStatusScheduled),
	}

	check, err := HasActiveAppointment(patientID, from, snapshot)
	require.NoError(t, err)
	assert.True(t, check.CanCreateNew)
}

func TestHasActiveAppointmentRequiresReferenceDate(t *testing.T) {
	_, err := HasActiveAppointment(uuid.New(), json_types.Date{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
