package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/jhoicas/inventario-panel/internal/domain"
)

// Traducción de fallos de transporte y de status HTTP a la taxonomía de
// errores del dominio. Ninguna excepción cruda de transporte sube de aquí.

// remoteErrorBody forma del cuerpo de error que emite el backend:
// {"success": false, "error": "..."} con un posible detalle por campo.
type remoteErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (b remoteErrorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// translateStatus convierte una respuesta no-2xx en el error de dominio
// que corresponde. resource nombra lo que se estaba pidiendo ("product",
// "restock"), para mensajes accionables.
func translateStatus(resource string, status int, body []byte) error {
	var parsed remoteErrorBody
	_ = json.Unmarshal(body, &parsed) // cuerpo ilegible = sin detalle, no es fatal

	switch {
	case status == http.StatusBadRequest:
		msg := parsed.text()
		if msg == "" {
			msg = "invalid request"
		}
		ve := domain.NewValidationError(msg)
		for field, detail := range parsed.Errors {
			ve.WithField(field, detail)
		}
		return ve
	case status == http.StatusNotFound:
		return &domain.NotFoundError{Resource: resource}
	case status == http.StatusConflict:
		return &domain.ConflictError{Message: parsed.text()}
	default:
		return &domain.RemoteError{Reason: reasonForStatus(status), Status: status}
	}
}

// reasonForStatus razón legible según el código de estado.
func reasonForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "invalid request"
	case status == http.StatusNotFound:
		return "not found"
	case status >= 500:
		return "server error"
	default:
		return http.StatusText(status)
	}
}

// translateTransport convierte un error de red en RemoteError. Un deadline
// vencido (del context o del http.Client) es "timeout"; lo demás es
// "network error".
func translateTransport(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.RemoteError{Reason: "timeout", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.RemoteError{Reason: "timeout", Err: err}
	}
	return &domain.RemoteError{Reason: "network error", Err: err}
}
