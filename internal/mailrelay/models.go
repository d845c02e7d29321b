package mailrelay

// Message письмо для отправки
type Message struct {
	To       string
	Subject  string
	Body     string
	HTMLBody bool
}

// EmailRequest запрос на отправку простого письма
type EmailRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=10000"`
	Name    string `json:"name" validate:"omitempty,max=200"`
}

// BookingConfirmationRequest запрос на отправку подтверждения бронирования
type BookingConfirmationRequest struct {
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	SelectedRoom string `json:"selectedRoom" validate:"required,max=100"`
	CheckInDate  string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	Nights       int    `json:"nights" validate:"min=0"`
	TotalCost    string `json:"totalCost" validate:"required,max=32"`
	BookingID    int64  `json:"bookingId" validate:"min=0"`
}
