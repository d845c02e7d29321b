package booking

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// snapshotColumns колонки бронирования, общие для bookings, booking_history и declined_bookings
var snapshotColumns = []string{
	"room_id",
	"room_name",
	"check_in",
	"check_out",
	"nights",
	"rate_per_day",
	"total_cost",
	"source",
	"guest_first_name",
	"guest_last_name",
	"guest_email",
	"guest_phone",
	"adults",
	"children",
	"payment_method",
	"amount_paid",
	"payment_reference",
	"notes",
	"created_by",
}

func snapshotValues(b *domain.Booking) []interface{} {
	return []interface{}{
		b.RoomID,
		b.RoomName,
		b.CheckIn,
		b.CheckOut,
		b.Nights,
		b.RatePerDay,
		b.TotalCost,
		b.Source,
		b.Guest.FirstName,
		b.Guest.LastName,
		b.Guest.Email,
		b.Guest.Phone,
		b.Guest.Adults,
		b.Guest.Children,
		b.Payment.Method,
		b.Payment.AmountPaid,
		b.Payment.Reference,
		b.Notes,
		b.CreatedBy,
	}
}

func snapshotDest(b *domain.Booking) []interface{} {
	return []interface{}{
		&b.RoomID,
		&b.RoomName,
		&b.CheckIn,
		&b.CheckOut,
		&b.Nights,
		&b.RatePerDay,
		&b.TotalCost,
		&b.Source,
		&b.Guest.FirstName,
		&b.Guest.LastName,
		&b.Guest.Email,
		&b.Guest.Phone,
		&b.Guest.Adults,
		&b.Guest.Children,
		&b.Payment.Method,
		&b.Payment.AmountPaid,
		&b.Payment.Reference,
		&b.Notes,
		&b.CreatedBy,
	}
}

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
func bookingColumns() []string {
	cols := make([]string, 0, len(snapshotColumns)+3)
	cols = append(cols, "id")
	cols = append(cols, snapshotColumns...)
	cols = append(cols, "created_at", "updated_at")
	return cols
}

func bookingDest(b *domain.Booking) []interface{} {
	dest := make([]interface{}, 0, len(snapshotColumns)+3)
	dest = append(dest, &b.ID)
	dest = append(dest, snapshotDest(b)...)
	dest = append(dest, &b.CreatedAt, &b.UpdatedAt)
	return dest
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
