// Package apierror provides standardized error response structures for the API
// and the domain error taxonomy shared by all services. All errors returned to
// clients go through this package to ensure consistency and to prevent leaking
// internal details (stack traces, DB errors, etc.).
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Domain errors ────────────────────────────────────────────────────────────
// Services return these typed errors; handlers translate them to HTTP statuses
// with errors.As. Messages are user-facing (Spanish, like the rest of the API).

// InsufficientStockError signals a decrement larger than the available stock.
// Callers must not retry automatically.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente para %s. Disponible: %d", e.Product, e.Available)
}

// InvalidStatusError signals a status value outside the defined enumeration.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("Estado invalido: %s", e.Status)
}

// InvalidOperationError signals an operation not applicable to the entity's
// current state (e.g. adding a payment to a non-account order).
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string { return e.Reason }

// ReferentialConflictError signals a delete blocked by dependent records.
// Count lets the caller tell the user how many records block the delete;
// CountKey is the JSON key the count is reported under (e.g. "orders_count").
type ReferentialConflictError struct {
	Detail   string
	CountKey string
	Count    int64
}

func (e *ReferentialConflictError) Error() string { return e.Detail }

// NotFoundError signals a missing entity by a user-facing name.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " no encontrado" }
