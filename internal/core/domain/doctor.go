package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
)

type WorkingHours struct {
	IsAvailable bool                 `json:"isAvailable"`
	StartTime   json_types.TimeOfDay `json:"start"`
	EndTime     json_types.TimeOfDay `json:"end"`
}

type WeekSchedule struct {
	Monday    WorkingHours `json:"monday"`
	Tuesday   WorkingHours `json:"tuesday"`
	Wednesday WorkingHours `json:"wednesday"`
	Thursday  WorkingHours `json:"thursday"`
	Friday    WorkingHours `json:"friday"`
	Saturday  WorkingHours `json:"saturday"`
	Sunday    WorkingHours `json:"sunday"`
}

func (s WeekSchedule) ForWeekday(weekday time.Weekday) WorkingHours {
	switch weekday {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

// DefaultWeekSchedule - расписание клиники по умолчанию,
// используется когда у врача нет собственного графика
func DefaultWeekSchedule(start, end json_types.TimeOfDay) WeekSchedule {
	wh := WorkingHours{IsAvailable: true, StartTime: start, EndTime: end}
	return WeekSchedule{
		Monday:    wh,
		Tuesday:   wh,
		Wednesday: wh,
		Thursday:  wh,
		Friday:    wh,
		Saturday:  wh,
		Sunday:    wh,
	}
}

type Doctor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	// ActiveInBranch - операционный флаг "врач сейчас в отделении"
	// Если флаг установлен, ограничение по рабочим часам не применяется
	ActiveInBranch bool          `json:"activeInBranch"`
	Schedule       *WeekSchedule `json:"schedule,omitempty"`
}
