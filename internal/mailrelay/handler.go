package mailrelay

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const (
	msgSent           = "Email sent successfully"
	msgInvalidPayload = "Invalid request payload"
	msgSendFailed     = "Failed to send email"

	maxBodyBytes = 1 << 20
)

// Handler HTTP обработчик почтового релея
type Handler struct {
	sender   Sender
	validate *validator.Validate
	logger   Logger
}

// NewHandler создает обработчик релея
func NewHandler(sender Sender, logger Logger) *Handler {
	return &Handler{
		sender:   sender,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register регистрирует маршруты релея
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/send-email", h.SendEmail).Methods(http.MethodPost)
	r.HandleFunc("/send-booking-confirmation", h.SendBookingConfirmation).Methods(http.MethodPost)
}

// SendEmail обрабатывает POST /send-email
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.send(w, renderEmail(req))
}

// SendBookingConfirmation обрабатывает POST /send-booking-confirmation
func (h *Handler) SendBookingConfirmation(w http.ResponseWriter, r *http.Request) {
	var req BookingConfirmationRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, err := renderConfirmation(req)
	if err != nil {
		h.logger.Error("SendBookingConfirmation: %v", err)
		respond(w, http.StatusInternalServerError, msgSendFailed)
		return
	}

	h.send(w, msg)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Warn("%s %s: decode payload: %v", r.Method, r.URL.Path, err)
		respond(w, http.StatusBadRequest, msgInvalidPayload)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		h.logger.Warn("%s %s: validate payload: %v", r.Method, r.URL.Path, err)
		respond(w, http.StatusBadRequest, msgInvalidPayload)
		return false
	}

	return true
}

func (h *Handler) send(w http.ResponseWriter, msg Message) {
	if err := h.sender.Send(msg); err != nil {
		h.logger.Error("Failed to send email to %s: %v", msg.To, err)
		respond(w, http.StatusInternalServerError, msgSendFailed)
		return
	}

	h.logger.Info("Email '%s' sent to %s", msg.Subject, msg.To)
	respond(w, http.StatusOK, msgSent)
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
