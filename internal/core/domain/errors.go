package domain

import (
	"errors"
	"fmt"

	"github.com/yndnr/multiagent-go/pkg/message"
)

// DomainError is an error with a stable code of the form
// MA-<AREA>-<NNNN>. Two DomainErrors match under errors.Is when their
// codes are equal.
type DomainError struct {
	Code    string // Error code (e.g., "MA-RUN-5001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface. The cause, when present, is
// appended after the details.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Channel Errors (CHAN)
// ============================================================================

var (
	// ErrChannelFull indicates a bounded message channel was at capacity.
	ErrChannelFull = NewDomainError("MA-CHAN-4290", "message channel full").WithCause(message.ErrFull)

	// ErrChannelDisconnected indicates the other half of a channel is gone.
	ErrChannelDisconnected = NewDomainError("MA-CHAN-4100", "message channel disconnected").WithCause(message.ErrDisconnected)
)

// IsChannelFull reports whether err is a full-channel error from either
// pkg/message or this package.
func IsChannelFull(err error) bool {
	return errors.Is(err, message.ErrFull) || IsDomainError(err, ErrChannelFull.Code)
}

// IsChannelDisconnected reports whether err is a disconnected-channel error.
func IsChannelDisconnected(err error) bool {
	return errors.Is(err, message.ErrDisconnected) || IsDomainError(err, ErrChannelDisconnected.Code)
}

// ============================================================================
// Runtime Errors (RUN)
// ============================================================================

var (
	// ErrSimulationPanic indicates the simulation goroutine panicked.
	// Details carry the panic payload.
	ErrSimulationPanic = NewDomainError("MA-RUN-5001", "simulation panicked")

	// ErrShutdownTimeout indicates the simulation did not stop in time.
	ErrShutdownTimeout = NewDomainError("MA-RUN-5040", "simulation did not stop within shutdown timeout")

	// ErrAlreadyRunning indicates a manager was started a second time.
	ErrAlreadyRunning = NewDomainError("MA-RUN-4090", "runtime already started")
)

// ============================================================================
// Simulation / Presentation Errors (SIM, PRES)
// ============================================================================

var (
	// ErrSimulationFailed indicates the simulation factory or a step
	// returned an error.
	ErrSimulationFailed = NewDomainError("MA-SIM-5000", "simulation failed")

	// ErrPresentation indicates the presentation host failed.
	ErrPresentation = NewDomainError("MA-PRES-5000", "presentation error")
)

// ============================================================================
// Scenario Errors (SCEN)
// ============================================================================

var (
	// ErrScenarioExists indicates a scenario name is already registered.
	ErrScenarioExists = NewDomainError("MA-SCEN-4090", "scenario already registered")

	// ErrScenarioNotFound indicates no scenario has the requested name.
	ErrScenarioNotFound = NewDomainError("MA-SCEN-4040", "scenario not found")
)

// ============================================================================
// Configuration Errors (CONF)
// ============================================================================

var (
	// ErrInvalidConfig indicates configuration verification failed.
	ErrInvalidConfig = NewDomainError("MA-CONF-4000", "invalid configuration")
)

// ============================================================================
// Recording Errors (REC)
// ============================================================================

var (
	// ErrRunNotFound indicates no recorded run matches the request.
	ErrRunNotFound = NewDomainError("MA-REC-4040", "recorded run not found")

	// ErrRecorderClosed indicates a write after the recorder finished.
	ErrRecorderClosed = NewDomainError("MA-REC-4100", "recorder closed")
)
