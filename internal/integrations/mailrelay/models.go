package mailrelay

// BookingConfirmation данные письма с подтверждением бронирования
type BookingConfirmation struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	SelectedRoom string `json:"selectedRoom"`
	CheckInDate  string `json:"checkInDate"`  // YYYY-MM-DD
	CheckOutDate string `json:"checkOutDate"` // YYYY-MM-DD
	Nights       int    `json:"nights"`
	TotalCost    string `json:"totalCost"` // форматированная сумма, например "3000.00"
	BookingID    int64  `json:"bookingId"`
}

// Email простое текстовое письмо гостю
type Email struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}
