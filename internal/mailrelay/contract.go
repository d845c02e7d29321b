package mailrelay

// Sender отправляет сформированное письмо
type Sender interface {
	Send(msg Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
