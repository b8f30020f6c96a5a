package serrors

import "fmt"

// Base is an error carrying a stable machine-readable code alongside the
// human message. Codes cross the engine boundary; messages may not.
type Base struct {
	Code    string
	Message string
	Details string
}

func NewError(code, message, details string) *Base {
	return &Base{Code: code, Message: message, Details: details}
}

func (e *Base) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetails returns a copy of the error with the details replaced. The
// original registered sentinel stays untouched so errors.Is keeps working.
func (e *Base) WithDetails(details string) *Base {
	return &Base{Code: e.Code, Message: e.Message, Details: details}
}

// Is matches by code, so a detailed copy still matches its sentinel.
func (e *Base) Is(target error) bool {
	t, ok := target.(*Base)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
