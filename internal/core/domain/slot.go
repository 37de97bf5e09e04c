package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

type Slot struct {
	StartTime json_types.TimeOfDay `json:"start"`
	EndTime   json_types.TimeOfDay `json:"end"`
	// IsAvailable - итоговая доступность слота для записи
	IsAvailable bool `json:"isAvailable"`
	// IsPast - слот целиком заканчивается до now + буфер записи
	IsPast bool `json:"isPast"`
	// IsOutsideWorkingHours - слот вне рабочих часов врача
	IsOutsideWorkingHours bool `json:"isOutsideWorkingHours"`
	// AppointmentIDS - записи, занимающие слот
	AppointmentIDS []uuid.UUID `json:"appointmentIds"`
}

// AvailableSlots отфильтровывает слоты, доступные для записи
// Полный аннотированный список остается у вызывающей стороны для отрисовки
func AvailableSlots(slots []Slot) []Slot {
	available := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAvailable {
			available = append(available, slot)
		}
	}
	return available
}
