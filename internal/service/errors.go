package service

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation such as a taken username.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthError reports rejected credentials without saying which one was wrong.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError reports a reference to a record the caller cannot see.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

var (
	// ErrInvalidCredentials is returned by Authenticate for any credential mismatch.
	ErrInvalidCredentials = &AuthError{Message: "invalid username or password"}
	// ErrUsernameTaken is returned by Register when the username already exists.
	ErrUsernameTaken = &ConflictError{Message: "username already taken"}
	// ErrHabitNotFound is returned by Track for habits the caller does not own.
	ErrHabitNotFound = &NotFoundError{Message: "habit not found"}
)

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
