package booking

import (
	"errors"
	"fmt"
)

var (
	ErrSessionID          = errors.New("session id not found in context")
	ErrSessionNotFound    = errors.New("session not found")
	ErrFlowNotFound       = errors.New("no booking in progress")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrVehicleUnavailable = errors.New("vehicle is not available")
	ErrInvalidTransition  = errors.New("invalid step transition")
	ErrMissingInformation = errors.New("booking information is missing")
)

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
