package domain

import "strings"

// FieldError описание ошибки одного поля
type FieldError struct {
	Field   string
	Message string
}

// ValidationError накапливает ошибки полей.
// Unwrap возвращает sentinel пакета-владельца, поэтому errors.Is(err, pkg.ErrInvalidInput) работает.
type ValidationError struct {
	kind   error
	Fields []FieldError
}

// NewValidationError kind — sentinel ErrInvalidInput вызывающего пакета
func NewValidationError(kind error) *ValidationError {
	return &ValidationError{kind: kind}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Messages сообщения по полям в порядке добавления
func (e *ValidationError) Messages() []string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return messages
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	prefix := "validation failed"
	if e.kind != nil {
		prefix = e.kind.Error()
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// OrNil возвращает nil, если ошибок нет
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
