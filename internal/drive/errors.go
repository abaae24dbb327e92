package drive

import "errors"

// Error is a failed dashboard operation. Message is the short text shown in
// a notification; Err, when set, is the underlying cause.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage is the notification text, without the cause.
func (e *Error) UserMessage() string {
	return e.Message
}

// Input validation errors.
var (
	ErrEmptyFolderName = &Error{Message: "Folder name cannot be empty"}
	ErrEmptyFileName   = &Error{Message: "File name cannot be empty"}
)

func wrap(message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}

// Toast returns the notification text for err: the operation message for
// dashboard errors, the error text otherwise.
func Toast(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
