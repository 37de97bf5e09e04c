package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/config"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
	"github.com/suchimauz/dental-slots-engine/internal/core/ports/out"
)

// ClinicAdapter - клиент REST-бэкенда клиники
// Бэкенд остается источником истины по записям, движок только читает снимки
type ClinicAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

// Ответ бэкенда клиники на списочные запросы
type clinicListResponse struct {
	Data []json.RawMessage `json:"data"`
}

func NewClinicAdapter(cfg *config.Config, logger out.LoggerPort) *ClinicAdapter {
	return &ClinicAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.Clinic.URL,
		username: cfg.Clinic.Username,
		password: cfg.Clinic.Password,
		logger:   logger,
	}
}

func (a *ClinicAdapter) getJSON(ctx context.Context, url string, event string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error(event+".request_failed", out.LogFields{
			"url":   url,
			"error": err.Error(),
		})
		return err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error(event+".fetch_failed", out.LogFields{
			"url":   url,
			"error": err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error(event+".fetch_failed", out.LogFields{
			"url":    url,
			"status": resp.StatusCode,
		})
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		a.logger.Error(event+".decode_failed", out.LogFields{
			"url":   url,
			"error": err.Error(),
		})
		return err
	}

	return nil
}

func (a *ClinicAdapter) decodeAppointments(event string, list clinicListResponse) ([]domain.Appointment, error) {
	appointments := make([]domain.Appointment, 0, len(list.Data))
	for _, raw := range list.Data {
		var appointment domain.Appointment
		if err := json.Unmarshal(raw, &appointment); err != nil {
			a.logger.Error(event+".decode_resource_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (a *ClinicAdapter) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error) {
	a.logger.Info("clinic.doctor.fetch", out.LogFields{
		"doctorId": doctorID,
	})

	url := fmt.Sprintf("%s/api/doctors/%s", a.baseURL, doctorID)

	var doctor domain.Doctor
	if err := a.getJSON(ctx, url, "clinic.doctor", &doctor); err != nil {
		return nil, err
	}

	a.logger.Debug("clinic.doctor.fetch_success", out.LogFields{
		"doctorId":       doctor.ID,
		"activeInBranch": doctor.ActiveInBranch,
	})

	return &doctor, nil
}

func (a *ClinicAdapter) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Appointment, error) {
	a.logger.Info("clinic.doctor_appointments.fetch", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})

	url := fmt.Sprintf("%s/api/appointments?doctorId=%s&date=%s", a.baseURL, doctorID, date)

	var list clinicListResponse
	if err := a.getJSON(ctx, url, "clinic.doctor_appointments", &list); err != nil {
		return nil, err
	}

	appointments, err := a.decodeAppointments("clinic.doctor_appointments", list)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("clinic.doctor_appointments.fetch_success", out.LogFields{
		"doctorId":          doctorID,
		"date":              date.String(),
		"appointmentsCount": len(appointments),
	})

	return appointments, nil
}

func (a *ClinicAdapter) GetPatientAppointments(ctx context.Context, patientID uuid.UUID, from json_types.Date) ([]domain.Appointment, error) {
	a.logger.Info("clinic.patient_appointments.fetch", out.LogFields{
		"patientId": patientID,
		"from":      from.String(),
	})

	url := fmt.Sprintf("%s/api/appointments?patientId=%s&dateFrom=%s", a.baseURL, patientID, from)

	var list clinicListResponse
	if err := a.getJSON(ctx, url, "clinic.patient_appointments", &list); err != nil {
		return nil, err
	}

	appointments, err := a.decodeAppointments("clinic.patient_appointments", list)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("clinic.patient_appointments.fetch_success", out.LogFields{
		"patientId":         patientID,
		"appointmentsCount": len(appointments),
	})

	return appointments, nil
}
