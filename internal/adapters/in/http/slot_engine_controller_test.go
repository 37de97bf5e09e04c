package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/dental-slots-engine/internal/config"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

type stubUseCase struct {
	slots  []domain.Slot
	result domain.SlotAvailabilityResult
	check  domain.ActiveAppointmentCheck
	err    error
}

func (u *stubUseCase) GetDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Slot, []domain.DebugInfo, error) {
	return u.slots, nil, u.err
}

func (u *stubUseCase) CheckAvailability(ctx context.Context, query domain.SlotQuery) (domain.SlotAvailabilityResult, error) {
	return u.result, u.err
}

func (u *stubUseCase) CheckActiveAppointment(ctx context.Context, patientID uuid.UUID, from json_types.Date) (domain.ActiveAppointmentCheck, error) {
	return u.check, u.err
}

func (u *stubUseCase) InvalidateAppointmentsCache(ctx context.Context, doctorID uuid.UUID, date json_types.Date) error {
	return nil
}

func (u *stubUseCase) InvalidateDoctorCache(ctx context.Context, doctorID uuid.UUID) error {
	return nil
}

func (u *stubUseCase) InvalidateAllCache(ctx context.Context) error {
	return nil
}

func testRouter(useCase *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "ui", Password: "secret"},
	}

	router := gin.New()
	controller := NewSlotEngineController(useCase, cfg)
	controller.RegisterRoutes(router)
	return router
}

func TestGetDaySlotsRequiresAuth(t *testing.T) {
	router := testRouter(&stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/"+uuid.NewString()+"?date=2025-06-02", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetDaySlotsOK(t *testing.T) {
	start := json_types.NewTimeOfDay(9, 0)
	useCase := &stubUseCase{
		slots: []domain.Slot{
			{StartTime: start, EndTime: start.Add(30), IsAvailable: true, AppointmentIDS: []uuid.UUID{}},
			{StartTime: start.Add(30), EndTime: start.Add(60), IsPast: true, AppointmentIDS: []uuid.UUID{}},
		},
	}
	router := testRouter(useCase)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/"+uuid.NewString()+"?date=2025-06-02", nil)
	req.SetBasicAuth("ui", "secret")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Slots          []domain.Slot `json:"slots"`
		AvailableSlots []domain.Slot `json:"availableSlots"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Slots, 2)
	assert.Len(t, response.AvailableSlots, 1)
}

func TestGetDaySlotsBadDoctorID(t *testing.T) {
	router := testRouter(&stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/not-a-uuid?date=2025-06-02", nil)
	req.SetBasicAuth("ui", "secret")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckAvailabilityOK(t *testing.T) {
	useCase := &stubUseCase{
		result: domain.SlotAvailabilityResult{
			Available: false,
			Reason:    domain.ReasonDoctorConflict,
		},
	}
	router := testRouter(useCase)

	doctorID := uuid.New()
	query := domain.SlotQuery{
		DoctorID:  &doctorID,
		Date:      json_types.NewDate(2025, time.June, 1),
		StartTime: json_types.NewTimeOfDay(10, 0),
		EndTime:   json_types.NewTimeOfDay(10, 30),
		PatientID: uuid.New(),
	}
	body, err := json.Marshal(query)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("ui", "secret")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var result domain.SlotAvailabilityResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.False(t, result.Available)
	assert.Equal(t, domain.ReasonDoctorConflict, result.Reason)
}

func TestCheckAvailabilityValidationError(t *testing.T) {
	useCase := &stubUseCase{err: domain.ErrInvalidTimeRange}
	router := testRouter(useCase)

	query := domain.SlotQuery{
		Date:      json_types.NewDate(2025, time.June, 1),
		StartTime: json_types.NewTimeOfDay(10, 0),
		EndTime:   json_types.NewTimeOfDay(10, 0),
		PatientID: uuid.New(),
	}
	body, err := json.Marshal(query)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("ui", "secret")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckActiveAppointmentOK(t *testing.T) {
	useCase := &stubUseCase{
		check: domain.ActiveAppointmentCheck{
			HasAppointment: true,
			CanCreateNew:   false,
			Reason:         "patient already has an active appointment on 2025-06-03 at 10:00",
		},
	}
	router := testRouter(useCase)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+uuid.NewString()+"/active-appointment?from=2025-06-01", nil)
	req.SetBasicAuth("ui", "secret")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var check domain.ActiveAppointmentCheck
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &check))
	assert.True(t, check.HasAppointment)
	assert.False(t, check.CanCreateNew)
}
