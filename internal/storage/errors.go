package storage

import "fmt"

// FormatError сигнализирует о поврежденном или чужом документе на диске.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, args...)}
}
