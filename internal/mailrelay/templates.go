package mailrelay

import (
	"bytes"
	"fmt"
	"html/template"
)

const confirmationSubject = "Your booking is confirmed"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Booking confirmation</h2>
  <p>Dear {{.FirstName}} {{.LastName}},</p>
  <p>Thank you for your reservation. Here are your booking details:</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    {{if .BookingID}}<tr><td><b>Booking number</b></td><td>{{.BookingID}}</td></tr>{{end}}
    <tr><td><b>Room</b></td><td>{{.SelectedRoom}}</td></tr>
    <tr><td><b>Check-in</b></td><td>{{.CheckInDate}}</td></tr>
    <tr><td><b>Check-out</b></td><td>{{.CheckOutDate}}</td></tr>
    {{if .Nights}}<tr><td><b>Nights</b></td><td>{{.Nights}}</td></tr>{{end}}
    <tr><td><b>Total cost</b></td><td>{{.TotalCost}}</td></tr>
  </table>
  <p>We look forward to welcoming you.</p>
</body>
</html>`))

// renderConfirmation формирует HTML письмо подтверждения
func renderConfirmation(req BookingConfirmationRequest) (Message, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, req); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}

	return Message{
		To:       req.Email,
		Subject:  confirmationSubject,
		Body:     buf.String(),
		HTMLBody: true,
	}, nil
}

// renderEmail формирует простое текстовое письмо
func renderEmail(req EmailRequest) Message {
	subject := req.Subject
	if subject == "" {
		subject = "Message from the hotel"
	}

	body := req.Message
	if req.Name != "" {
		body = fmt.Sprintf("Dear %s,\n\n%s", req.Name, req.Message)
	}

	return Message{
		To:      req.Email,
		Subject: subject,
		Body:    body,
	}
}
