package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	// Если не удалось, пробуем дату со временем, но без таймзоны
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, time.UTC)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation("2006-01-02", str, time.UTC)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}

// Date - календарная дата без времени
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf обрезает время, оставляя только календарную дату
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(str string) (Date, error) {
	parsedDate, err := parseDate(str)
	if err != nil {
		return Date{}, err
	}
	return DateOf(parsedDate), nil
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

func (d Date) Weekday() time.Weekday {
	return d.Date.Weekday()
}

func (d Date) Equal(other Date) bool {
	return d.Date.Equal(other.Date)
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

func (d Date) String() string {
	return d.Date.Format("2006-01-02")
}

func (d *Date) UnmarshalJSON(data []byte) error {
	// Ожидаем строковый токен, иначе срез по кавычкам уронит процесс
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date must be a JSON string, got: %s", data)
	}

	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*d = DateOf(parsedDate)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
