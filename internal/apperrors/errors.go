package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a conditional write lost a race and may be retried.
var ErrConflict = errors.New("persistence conflict")

// ErrInvalidTransition indicates that a document status change is not allowed
// by the document kind's transition table.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInsufficientStock indicates that a stock reservation would drive a
// product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")
