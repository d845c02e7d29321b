package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты (YYYY-MM-DD)
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var (
	// ErrInvalidDateFormat возвращается, когда строка не соответствует формату YYYY-MM-DD
	ErrInvalidDateFormat = errors.New("invalid calendar date format")

	// ErrUnsupportedDateSource возвращается при сканировании неподдерживаемого типа из БД
	ErrUnsupportedDateSource = errors.New("unsupported calendar date source")
)

// CalendarDate представляет календарную дату без времени суток
// Значение сравнимо через == и может использоваться как ключ map
type CalendarDate struct {
	year  int
	month time.Month
	day   int
}

// NewCalendarDate создает дату из года, месяца и дня
// Переполнения нормализуются (32 января -> 1 февраля)
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf возвращает календарный день момента времени в его собственной локации
// Время суток отбрасывается
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{year: y, month: m, day: d}
}

// ParseCalendarDate парсит дату в формате YYYY-MM-DD
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return DateOf(t), nil
}

// Year возвращает год
func (d CalendarDate) Year() int { return d.year }

// Month возвращает месяц
func (d CalendarDate) Month() time.Month { return d.month }

// Day возвращает день месяца
func (d CalendarDate) Day() int { return d.day }

// IsZero возвращает true для незаполненной даты
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// Time возвращает полночь даты в UTC
func (d CalendarDate) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays возвращает дату, смещенную на n дней
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before возвращает true, если d раньше other
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

// After возвращает true, если d позже other
func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// Compare возвращает -1, 0 или 1
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше)
// Считается по Unix-секундам полуночей UTC: time.Duration ограничен ~292 годами
func (d CalendarDate) DaysUntil(other CalendarDate) int {
	return int((other.Time().Unix() - d.Time().Unix()) / secondsPerDay)
}

// String возвращает дату в формате YYYY-MM-DD
func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// MarshalJSON сериализует дату как строку YYYY-MM-DD
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON парсит дату из строки YYYY-MM-DD
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = CalendarDate{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	if s == "" {
		*d = CalendarDate{}
		return nil
	}

	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для колонок типа DATE
func (d CalendarDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan реализует sql.Scanner
// lib/pq возвращает DATE как time.Time, другие драйверы могут вернуть строку
func (d *CalendarDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = CalendarDate{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedDateSource, src)
	}
}

func (d *CalendarDate) scanString(s string) error {
	// Postgres может вернуть дату с временем, берем только первые 10 символов
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
