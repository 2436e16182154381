package services

import (
	"dbconsultor-ai/internal/apis/dtos"
	"dbconsultor-ai/internal/constants"
	"dbconsultor-ai/pkg/dbmanager"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoValidQuery is matched by every InvalidQueryError.
var ErrNoValidQuery = errors.New("model did not produce a valid SQL query")

// InvalidQueryError carries the sanitized model output that failed the
// read-only check.
type InvalidQueryError struct {
	Text string
	Err  error
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf(constants.MessageInvalidQuery, e.Text)
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrNoValidQuery
}

func (e *InvalidQueryError) Unwrap() error {
	return e.Err
}

// IsTableNotFound matches the MySQL "Table ... doesn't exist" failure.
func IsTableNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1146") && strings.Contains(msg, "doesn't exist")
}

// classifyStageError maps a synthesize, execute or narrate failure to the
// message shown to the user.
func classifyStageError(err error) *dtos.ConsultError {
	var invalid *InvalidQueryError
	switch {
	case errors.As(err, &invalid):
		return &dtos.ConsultError{Kind: constants.ErrorKindInvalidQuery, Message: invalid.Error()}
	case IsTableNotFound(err):
		return &dtos.ConsultError{Kind: constants.ErrorKindTableNotFound, Message: constants.MessageTableNotFound}
	default:
		return &dtos.ConsultError{Kind: constants.ErrorKindExecutionFailed, Message: fmt.Sprintf(constants.MessageFatalError, err)}
	}
}

// classifyConnectionError maps a failure to obtain a connection.
func classifyConnectionError(backend string, err error) *dtos.ConsultError {
	displayName := constants.GetDatabaseDisplayName(backend)
	switch {
	case errors.Is(err, dbmanager.ErrUnsupportedBackend):
		return &dtos.ConsultError{Kind: constants.ErrorKindUnsupportedBackend, Message: fmt.Sprintf(constants.MessageUnsupportedBackend, backend)}
	case errors.Is(err, dbmanager.ErrBackendNotConfigured):
		return &dtos.ConsultError{Kind: constants.ErrorKindConfigMissing, Message: fmt.Sprintf(constants.MessageURINotFound, displayName)}
	default:
		var connErr *dbmanager.ConnectionError
		if errors.As(err, &connErr) {
			err = connErr.Err
		}
		return &dtos.ConsultError{Kind: constants.ErrorKindConnectionFailed, Message: fmt.Sprintf(constants.MessageConnectionFailed, displayName, err)}
	}
}

// StatusForKind is the HTTP status a consult error is reported with.
func StatusForKind(kind string) uint32 {
	switch kind {
	case constants.ErrorKindEmptyQuestion, constants.ErrorKindUnsupportedBackend:
		return http.StatusBadRequest
	case constants.ErrorKindConfigMissing:
		return http.StatusServiceUnavailable
	case constants.ErrorKindConnectionFailed:
		return http.StatusBadGateway
	case constants.ErrorKindInvalidQuery, constants.ErrorKindTableNotFound:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
