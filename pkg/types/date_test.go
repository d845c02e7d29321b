package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	night := time.Date(2025, 1, 7, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, DateOf(morning), DateOf(night))
	assert.Equal(t, NewCalendarDate(2025, time.January, 7), DateOf(night))
}

func TestDateOf_UsesValueLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 2025-01-07 02:00 в UTC+5 - это 2025-01-06 21:00 UTC, но календарный день гостя - 7 января
	local := time.Date(2025, 1, 7, 2, 0, 0, 0, loc)

	assert.Equal(t, NewCalendarDate(2025, time.January, 7), DateOf(local))
}

func TestCalendarDate_DaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from CalendarDate
		to   CalendarDate
		want int
	}{
		{"two nights", NewCalendarDate(2025, 1, 6), NewCalendarDate(2025, 1, 8), 2},
		{"same day", NewCalendarDate(2025, 1, 6), NewCalendarDate(2025, 1, 6), 0},
		{"inverted", NewCalendarDate(2025, 1, 8), NewCalendarDate(2025, 1, 6), -2},
		{"month boundary", NewCalendarDate(2025, 1, 31), NewCalendarDate(2025, 2, 1), 1},
		{"leap year", NewCalendarDate(2024, 2, 28), NewCalendarDate(2024, 3, 1), 2},
		{"year boundary", NewCalendarDate(2024, 12, 31), NewCalendarDate(2025, 1, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.DaysUntil(tt.to))
		})
	}
}

func TestCalendarDate_Compare(t *testing.T) {
	a := NewCalendarDate(2025, 1, 6)
	b := NewCalendarDate(2025, 1, 7)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, b, a.AddDays(1))
}

func TestParseCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", d.String())

	_, err = ParseCalendarDate("10.01.2025")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestCalendarDate_JSON(t *testing.T) {
	type payload struct {
		CheckIn  CalendarDate `json:"checkIn"`
		CheckOut CalendarDate `json:"checkOut"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"checkIn":"2025-01-10","checkOut":null}`), &p))
	assert.Equal(t, NewCalendarDate(2025, 1, 10), p.CheckIn)
	assert.True(t, p.CheckOut.IsZero())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkIn":"2025-01-10","checkOut":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"checkIn":"tomorrow"}`), &p))
}

func TestCalendarDate_Scan(t *testing.T) {
	var d CalendarDate

	require.NoError(t, d.Scan(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewCalendarDate(2025, 1, 10), d)

	require.NoError(t, d.Scan([]byte("2025-01-11T00:00:00Z")))
	assert.Equal(t, NewCalendarDate(2025, 1, 11), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.ErrorIs(t, d.Scan(42), ErrUnsupportedDateSource)

	v, err := NewCalendarDate(2025, 1, 12).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-12", v)
}

func TestMoney(t *testing.T) {
	total, err := Money(1500).MulInt(2)
	require.NoError(t, err)
	assert.Equal(t, Money(3000), total)

	zero, err := Money(2000).MulInt(0)
	require.NoError(t, err)
	assert.Equal(t, Money(0), zero)

	_, err = Money(1 << 62).MulInt(4)
	assert.ErrorIs(t, err, ErrMoneyOverflow)

	assert.Equal(t, "15.00", Money(1500).String())
	assert.Equal(t, "-0.05", Money(-5).String())
}
