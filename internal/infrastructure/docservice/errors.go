package docservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/infrastructure/resilience"
)

const requestIDHeader = "X-Request-Id"

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "docservice status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("docservice %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("docservice %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}

type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newHTTPStatusError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
}

func setRequestID(req *http.Request) {
	req.Header.Set(requestIDHeader, uuid.NewString())
}

// wrapFailure maps a client error onto the domain taxonomy: a status
// rejection is ErrServerRejected, everything else is ErrTransportFailure.
func wrapFailure(operation string, err error) error {
	if resilience.IsCircuitOpen(err) {
		slog.Warn("docservice_circuit_open", "operation", operation, "error", err)
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return domain.WrapError(domain.ErrServerRejected, operation, err)
	}
	return domain.WrapError(domain.ErrTransportFailure, operation, err)
}

func classifyError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: false}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return resilience.ErrorClassification{RecordFailure: statusErr.StatusCode >= 500}
	}
	return resilience.ErrorClassification{RecordFailure: true}
}
