package mailrelay

import "errors"

var (
	// ErrInternal возвращается при ошибке формирования или отправки запроса
	ErrInternal = errors.New("mailrelay: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе релея
	ErrInvalidResponse = errors.New("mailrelay: invalid response")

	// ErrRejected возвращается, когда релей отклонил данные письма (4xx)
	ErrRejected = errors.New("mailrelay: payload rejected")

	// ErrUnavailable возвращается, когда circuit breaker разомкнут
	ErrUnavailable = errors.New("mailrelay: service unavailable")
)
