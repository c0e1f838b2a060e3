package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrMissingField = errors.New("missing field")
	ErrInternal     = errors.New("internal error")
)

// Error carries a client-facing message together with one of the sentinel
// kinds above, so callers can branch with errors.Is and still render Msg.
type Error struct {
	Kind error
	Msg  string
	Err  error // optional cause
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func InvalidInput(msg string) error { return &Error{Kind: ErrInvalidInput, Msg: msg} }

func MissingField(msg string) error { return &Error{Kind: ErrMissingField, Msg: msg} }

// Internal wraps err keeping its raw message.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: ErrInternal, Msg: err.Error(), Err: err}
}

const (
	MsgInvalidLocation = "Invalid location"
	MsgRequiredFields  = "ReviewBody and Location are required fields"
)
