package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType  = errors.New("unsupported document type")
	ErrTransportFailure = errors.New("transport failure")
	ErrServerRejected   = errors.New("server rejected request")
	ErrQuestionInFlight = errors.New("question already in flight")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
