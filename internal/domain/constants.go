package domain

// Business validation constants
const (
	MaxRoomNameLength        = 100
	MaxRoomDescriptionLength = 2000
	MinRoomCapacity          = 1
	MaxRoomCapacity          = 20
	MaxNotesLength           = 500
	MaxDeclineReasonLength   = 500
	MaxStayNights            = 90 // Максимальная длительность одного проживания
	MaxReportSubjectLength   = 200
	MaxReportMessageLength   = 5000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RoomStatuses все допустимые статусы номера
var RoomStatuses = []RoomStatus{
	RoomAvailable,
	RoomUnavailable,
	RoomLimitedAvailability,
	RoomOccupied,
	RoomClosedMaintenance,
}

// BookableRoomStatuses статусы, при которых номер предлагается гостям
// Используется при поиске свободных номеров
var BookableRoomStatuses = []RoomStatus{
	RoomAvailable,
	RoomLimitedAvailability,
}
