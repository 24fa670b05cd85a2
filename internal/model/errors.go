package model

import "errors"

var (
	// ErrValidation возвращается при некорректных или незаполненных данных формы.
	ErrValidation = errors.New("validation failed")
	// ErrNotAuthenticated возвращается при попытке выполнить действие без входа в аккаунт.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAccountNotFound возвращается при входе, если аккаунт ещё не зарегистрирован.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials возвращается при несовпадении email или пароля.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden возвращается при попытке удалить чужой отзыв.
	ErrForbidden = errors.New("forbidden")
	// ErrMenuItemNotFound возвращается, если позиции меню с таким идентификатором нет.
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// ValidationError описывает ошибку проверки ввода с сообщением для пользователя.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// Is позволяет сравнивать ошибку с ErrValidation через errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError создаёт ошибку проверки ввода.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
