package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// ParsePage читает limit и offset из query параметров
// Отсутствующие параметры возвращаются нулями, нормализацию делает сервис
func ParsePage(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()

	if s := q.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			return 0, 0, fmt.Errorf("invalid limit: %w", err)
		}
	}

	if s := q.Get("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			return 0, 0, fmt.Errorf("invalid offset: %w", err)
		}
		if offset < 0 {
			return 0, 0, fmt.Errorf("offset must not be negative")
		}
	}

	return limit, offset, nil
}

// PathInt64 читает числовой параметр пути
func PathInt64(vars map[string]string, name string) (int64, error) {
	return strconv.ParseInt(vars[name], 10, 64)
}
