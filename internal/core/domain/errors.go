package domain

import "errors"

// Sentinel errors shared between services and handlers. Services return
// these so handlers can map them to the right HTTP status without
// matching on message strings.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrStudentNotFound        = errors.New("student not found")
	ErrInvalidApplicationType = errors.New("invalid application type")
	ErrInvalidCategory        = errors.New("invalid program category")
	ErrProgramNotFound        = errors.New("program not found")
)
