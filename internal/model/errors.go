package model

import "errors"

// Error kinds. Wrap them with *Error to attach a user-facing message.
var (
	ErrParse      = errors.New("parse error")
	ErrNoData     = errors.New("no data")
	ErrValidation = errors.New("validation error")
)

// Messages shared by the reader, the store and request validation.
const (
	MsgEmptyFile        = "Excel file is empty"
	MsgUnreadableFile   = "unable to parse spreadsheet"
	MsgNoData           = "No data available. Please upload a file first."
	MsgInvalidPanelType = "invalid panel type %q: expected Deposit or Withdrawal"
)

// Error carries an error kind and a human readable message.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Is reports kind equality so errors.Is(err, ErrParse) works on wrapped errors.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewParseError(msg string, err error) error {
	return &Error{Kind: ErrParse, Message: msg, Err: err}
}

func NewNoDataError(msg string) error {
	return &Error{Kind: ErrNoData, Message: msg}
}

func NewValidationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}
