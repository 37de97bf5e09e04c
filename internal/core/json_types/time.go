package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const MinutesPerDay = 1440

// TimeOfDay - время суток в минутах от полуночи, без секунд
// Храним минуты, чтобы арифметика слотов не зависела от даты и таймзоны
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay парсит время из строки в формате "15:04".
// Строка должна совпадать с форматом целиком, хвост не допускается
func ParseTimeOfDay(str string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse time of day: %v", err)
	}
	return NewTimeOfDay(parsed.Hour(), parsed.Minute()), nil
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return TimeOfDay(int(t) + minutes)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t > other
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	// Ожидаем строковый токен, иначе срез по кавычкам уронит процесс
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("time of day must be a JSON string, got: %s", data)
	}

	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])
	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
