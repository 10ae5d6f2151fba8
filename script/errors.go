package script

import (
	"errors"
	"fmt"
)

// ErrMissingTemplateField indicates a placeholder without a field map entry.
var ErrMissingTemplateField = errors.New("missing template field")

// ErrMissingColumn indicates a mapped column the result table does not declare.
var ErrMissingColumn = errors.New("missing column")

// ErrInvalidTemplate indicates a template that cannot be scanned, e.g. one holding a NUL byte.
var ErrInvalidTemplate = errors.New("invalid template")

type MissingTemplateFieldError struct {
	Placeholder string
}

func (e *MissingTemplateFieldError) Error() string {
	return fmt.Sprintf("placeholder '{%s}' has no field mapping", e.Placeholder)
}

func (e *MissingTemplateFieldError) Unwrap() error {
	return ErrMissingTemplateField
}

type MissingColumnError struct {
	Placeholder string
	Column      string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column '%s' mapped by placeholder '{%s}' not found in result table", e.Column, e.Placeholder)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

type InvalidTemplateError struct {
	Err error
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("invalid template: %v", e.Err)
}

// Is lets errors.Is match both ErrInvalidTemplate and the scanner error.
func (e *InvalidTemplateError) Is(target error) bool {
	return target == ErrInvalidTemplate
}

func (e *InvalidTemplateError) Unwrap() error {
	return e.Err
}
