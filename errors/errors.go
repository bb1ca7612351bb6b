/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidLinkageType is returned when a linkage type is not allow-listed
	ErrInvalidLinkageType = errors.New("invalid linkage type")

	// ErrEntityInactive is returned when an operation requires an active entity
	ErrEntityInactive = errors.New("entity is not active")

	// ErrTargetDeleted is returned when a linkage target has been soft-deleted
	ErrTargetDeleted = errors.New("linkage target is deleted")

	// ErrLinkageAlreadySet is returned when a linkage slot is already occupied
	ErrLinkageAlreadySet = errors.New("linkage already set")

	// ErrUnsupportedQueryShape is returned when a query cannot be served by the chosen index
	ErrUnsupportedQueryShape = errors.New("unsupported query shape")

	// ErrConflict is returned when a conditional update loses to a concurrent writer
	ErrConflict = errors.New("conditional update conflict")

	// ErrNoSchema is returned when no table schema is registered for a type
	ErrNoSchema = errors.New("no schema registered for type")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidLinkageTypeError reports a linkage type outside the allow-list
type InvalidLinkageTypeError struct {
	Type    string
	Allowed []string
}

func (e *InvalidLinkageTypeError) Error() string {
	return fmt.Sprintf("unsupported linkage type %q, available options: %s",
		e.Type, strings.Join(e.Allowed, ", "))
}

func (e *InvalidLinkageTypeError) Is(target error) bool {
	return target == ErrInvalidLinkageType
}

// EntityInactiveError reports an operation attempted on an inactive entity
type EntityInactiveError struct {
	Type string
	Name string
}

func (e *EntityInactiveError) Error() string {
	return fmt.Sprintf("%s %q is not active", e.Type, e.Name)
}

func (e *EntityInactiveError) Is(target error) bool {
	return target == ErrEntityInactive
}

// TargetDeletedError reports a linkage target that has been soft-deleted
type TargetDeletedError struct {
	Type string
	Key  string
}

func (e *TargetDeletedError) Error() string {
	return fmt.Sprintf("%s %q is deleted", e.Type, e.Key)
}

func (e *TargetDeletedError) Is(target error) bool {
	return target == ErrTargetDeleted
}

// LinkageAlreadySetError reports an occupied linkage slot
type LinkageAlreadySetError struct {
	Entity      string
	LinkageType string
}

func (e *LinkageAlreadySetError) Error() string {
	return fmt.Sprintf("entity %q already has %q linkage type", e.Entity, e.LinkageType)
}

func (e *LinkageAlreadySetError) Is(target error) bool {
	return target == ErrLinkageAlreadySet
}

// UnsupportedQueryShapeError reports a query that the chosen index cannot serve
type UnsupportedQueryShapeError struct {
	Index  string
	Reason string
}

func (e *UnsupportedQueryShapeError) Error() string {
	if e.Index == "" {
		return fmt.Sprintf("unsupported query shape: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported query shape for index %q: %s", e.Index, e.Reason)
}

func (e *UnsupportedQueryShapeError) Is(target error) bool {
	return target == ErrUnsupportedQueryShape
}

// ConflictError reports a conditional update that lost to a concurrent writer
type ConflictError struct {
	Operation string
	Key       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conditional %s on %q failed: concurrent update", e.Operation, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// SchemaError reports a misconfigured or missing table schema.
// Schema errors are precondition violations and should surface at startup.
type SchemaError struct {
	Type    string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for %s: %s", e.Type, e.Message)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrNoSchema
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Re-exports so callers need a single errors import.

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text
func New(text string) error {
	return errors.New(text)
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a concurrent-update conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnsupportedQueryShape checks if an error is an unsupported query shape error
func IsUnsupportedQueryShape(err error) bool {
	return errors.Is(err, ErrUnsupportedQueryShape)
}
