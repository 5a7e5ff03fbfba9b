package validation

import "fmt"

// Error описывает отклоненный payload с понятным сообщением.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf создает ошибку валидации с форматированным сообщением.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
