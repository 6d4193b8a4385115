package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores centinela del dominio (sin dependencias externas).
// Los tipos de abajo envuelven estos centinelas para que los llamadores
// puedan clasificar con errors.Is sin perder el detalle.
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrValidation = errors.New("entrada inválida")
	ErrRemote     = errors.New("fallo remoto")
	ErrConflict   = errors.New("conflicto con el estado actual")
)

// ValidationError entrada rechazada por el cliente o por el backend,
// con detalle por campo cuando está disponible.
type ValidationError struct {
	Message string
	Fields  map[string]string // campo -> mensaje; puede ser nil
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return "invalid request"
		}
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// WithField agrega un mensaje de validación para un campo.
func (e *ValidationError) WithField(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
	return e
}

// NotFoundError el id referenciado no existe en el backend.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// RemoteError fallo de red, timeout o 5xx del backend. Reintentable
// a criterio del llamador; el adaptador nunca reintenta solo.
// Reason es legible para humanos: "invalid request", "not found",
// "server error", "timeout" o "network error".
type RemoteError struct {
	Reason string
	Status int   // código HTTP; 0 si no hubo respuesta
	Err    error // causa de transporte, puede ser nil
}

func (e *RemoteError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("remote API: %s (HTTP %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("remote API: %s", e.Reason)
}

func (e *RemoteError) Unwrap() error { return ErrRemote }

// ConflictError reservado para control de concurrencia optimista.
// El backend actual no lo emite; se traduce desde un HTTP 409 si llegara.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return "conflict with the current remote state"
	}
	return e.Message
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
