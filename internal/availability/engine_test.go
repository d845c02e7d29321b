package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

func date(month time.Month, day int) types.CalendarDate {
	return types.NewCalendarDate(2025, month, day)
}

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  types.CalendarDate
		checkOut types.CalendarDate
		want     int
	}{
		{"two nights", date(1, 6), date(1, 8), 2},
		{"one night", date(1, 6), date(1, 7), 1},
		{"same day", date(1, 6), date(1, 6), 0},
		{"inverted range", date(1, 8), date(1, 6), 0},
		{"across month", date(1, 30), date(2, 2), 3},
		{"zero dates", types.CalendarDate{}, types.CalendarDate{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NightsBetween(tt.checkIn, tt.checkOut))
		})
	}
}

func TestNightsBetween_NeverNegative(t *testing.T) {
	base := date(3, 15)
	for offset := -40; offset <= 40; offset++ {
		got := NightsBetween(base, base.AddDays(offset))
		if offset <= 0 {
			assert.Equal(t, 0, got, "offset %d", offset)
		} else {
			assert.Equal(t, offset, got, "offset %d", offset)
		}
	}
}

func TestNightsBetween_MultiCenturySpan(t *testing.T) {
	checkIn := types.NewCalendarDate(2000, time.January, 1)
	checkOut := types.NewCalendarDate(2400, time.January, 1)

	// 400 григорианских лет = 146097 дней
	assert.Equal(t, 146097, NightsBetween(checkIn, checkOut))

	quote, err := Quote(NightsBetween(checkIn, checkOut), 100)
	require.NoError(t, err)
	assert.Equal(t, types.Money(14609700), quote.TotalCost)
}

func TestQuote(t *testing.T) {
	q, err := Quote(2, 1500)
	require.NoError(t, err)
	assert.Equal(t, StayQuote{Nights: 2, TotalCost: 3000}, q)
	assert.True(t, q.Ready())

	for n := 0; n <= 30; n++ {
		for _, rate := range []types.Money{0, 1, 999, 2000, 123456} {
			q, err := Quote(n, rate)
			require.NoError(t, err)
			assert.Equal(t, types.Money(int64(n)*int64(rate)), q.TotalCost)
		}
	}
}

func TestQuote_IncompleteForm(t *testing.T) {
	nights := NightsBetween(date(1, 10), date(1, 10))
	q, err := Quote(nights, 2000)

	require.NoError(t, err)
	assert.Equal(t, 0, q.Nights)
	assert.Equal(t, types.Money(0), q.TotalCost)
	assert.False(t, q.Ready())
}

func TestQuote_FreeStayIsReady(t *testing.T) {
	q, err := Quote(3, 0)

	require.NoError(t, err)
	assert.True(t, q.Ready())
	assert.Equal(t, types.Money(0), q.TotalCost)
}

func TestQuote_NegativeRate(t *testing.T) {
	_, err := Quote(2, -1)
	assert.ErrorIs(t, err, ErrNegativeRate)
}

func TestExpandToBlockedDates_Inclusive(t *testing.T) {
	blocked := ExpandToBlockedDates([]Interval{{CheckIn: date(1, 6), CheckOut: date(1, 8)}}, CheckoutInclusive)

	assert.Equal(t, 3, blocked.Len())
	assert.True(t, blocked.Contains(date(1, 6)))
	assert.True(t, blocked.Contains(date(1, 7)))
	assert.True(t, blocked.Contains(date(1, 8)))
	assert.False(t, blocked.Contains(date(1, 5)))
	assert.False(t, blocked.Contains(date(1, 9)))
}

func TestExpandToBlockedDates_Exclusive(t *testing.T) {
	blocked := ExpandToBlockedDates([]Interval{{CheckIn: date(1, 6), CheckOut: date(1, 8)}}, CheckoutExclusive)

	assert.Equal(t, []types.CalendarDate{date(1, 6), date(1, 7)}, blocked.Sorted())
}

func TestExpandToBlockedDates_MergesOverlappingIntervals(t *testing.T) {
	intervals := []Interval{
		{CheckIn: date(1, 6), CheckOut: date(1, 8)},
		{CheckIn: date(1, 7), CheckOut: date(1, 10)},
		{CheckIn: date(2, 1), CheckOut: date(2, 1)},
	}

	blocked := ExpandToBlockedDates(intervals, CheckoutInclusive)

	assert.Equal(t, []types.CalendarDate{
		date(1, 6), date(1, 7), date(1, 8), date(1, 9), date(1, 10), date(2, 1),
	}, blocked.Sorted())
}

func TestExpandToBlockedDates_InvertedIntervalBlocksNothing(t *testing.T) {
	blocked := ExpandToBlockedDates([]Interval{{CheckIn: date(1, 10), CheckOut: date(1, 8)}}, CheckoutInclusive)
	assert.Equal(t, 0, blocked.Len())
}

func TestExpandToBlockedDates_Idempotent(t *testing.T) {
	intervals := []Interval{
		{CheckIn: date(1, 6), CheckOut: date(1, 8)},
		{CheckIn: date(3, 1), CheckOut: date(3, 4)},
	}

	first := ExpandToBlockedDates(intervals, CheckoutInclusive)
	second := ExpandToBlockedDates(intervals, CheckoutInclusive)

	assert.Equal(t, first, second)
}

func TestIsDateBlocked_IgnoresTimeOfDay(t *testing.T) {
	blocked := ExpandToBlockedDates([]Interval{{CheckIn: date(1, 6), CheckOut: date(1, 8)}}, CheckoutInclusive)

	lateNight := time.Date(2025, 1, 7, 23, 59, 0, 0, time.UTC)
	midnight := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsDateBlocked(lateNight, blocked))
	assert.Equal(t, IsDateBlocked(midnight, blocked), IsDateBlocked(lateNight, blocked))
	assert.False(t, IsDateBlocked(time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC), blocked))
}

func TestIsRangeBookable_TwinRoomScenario(t *testing.T) {
	twinRoom := uuid.New()
	existing := []Interval{{RoomID: twinRoom, CheckIn: date(1, 10), CheckOut: date(1, 12)}}

	tests := []struct {
		name     string
		policy   CheckoutPolicy
		checkIn  types.CalendarDate
		checkOut types.CalendarDate
		want     bool
	}{
		{"overlap inclusive", CheckoutInclusive, date(1, 11), date(1, 13), false},
		{"overlap exclusive", CheckoutExclusive, date(1, 11), date(1, 13), false},
		{"check-in on checkout day inclusive", CheckoutInclusive, date(1, 12), date(1, 14), false},
		{"check-in on checkout day exclusive", CheckoutExclusive, date(1, 12), date(1, 14), true},
		{"check-out on existing check-in day", CheckoutInclusive, date(1, 8), date(1, 10), true},
		{"spanning whole booking", CheckoutExclusive, date(1, 9), date(1, 13), false},
		{"empty range", CheckoutInclusive, date(1, 20), date(1, 20), false},
		{"inverted range", CheckoutInclusive, date(1, 22), date(1, 20), false},
		{"free later", CheckoutInclusive, date(1, 20), date(1, 25), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocked := ExpandToBlockedDates(existing, tt.policy)
			assert.Equal(t, tt.want, IsRangeBookable(tt.checkIn, tt.checkOut, blocked))
		})
	}
}

func TestIsRangeBookable_SpanningBlockedDay(t *testing.T) {
	// Заезд и выезд свободны, но внутри диапазона есть занятый день
	blocked := ExpandToBlockedDates([]Interval{{CheckIn: date(1, 15), CheckOut: date(1, 15)}}, CheckoutInclusive)

	assert.False(t, IsRangeBookable(date(1, 14), date(1, 17), blocked))
	conflict, ok := FirstConflict(date(1, 14), date(1, 17), blocked)
	assert.True(t, ok)
	assert.Equal(t, date(1, 15), conflict)
}

func TestParseCheckoutPolicy(t *testing.T) {
	p, err := ParseCheckoutPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCheckoutPolicy, p)

	p, err = ParseCheckoutPolicy("exclusive")
	require.NoError(t, err)
	assert.Equal(t, CheckoutExclusive, p)

	_, err = ParseCheckoutPolicy("sometimes")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestEngine_Check(t *testing.T) {
	existing := []Interval{{CheckIn: date(1, 10), CheckOut: date(1, 12)}}

	inclusive := NewEngine(CheckoutInclusive)
	verdict, err := inclusive.Check(date(1, 12), date(1, 14), 1500, existing)
	require.NoError(t, err)
	assert.False(t, verdict.Bookable)
	require.NotNil(t, verdict.ConflictDate)
	assert.Equal(t, date(1, 12), *verdict.ConflictDate)
	assert.Equal(t, StayQuote{Nights: 2, TotalCost: 3000}, verdict.Quote)

	exclusive := NewEngine(CheckoutExclusive)
	verdict, err = exclusive.Check(date(1, 12), date(1, 14), 1500, existing)
	require.NoError(t, err)
	assert.True(t, verdict.Bookable)
	assert.Nil(t, verdict.ConflictDate)

	assert.Equal(t, DefaultCheckoutPolicy, NewEngine("").Policy())
}
