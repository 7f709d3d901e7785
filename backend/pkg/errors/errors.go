package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph document and store errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeLoad represents failures fetching or decoding the graph document
	ErrorTypeLoad ErrorType = "load"
	// ErrorTypeDatabase represents Neo4j source errors
	ErrorTypeDatabase ErrorType = "database"
	// ErrorTypeSession represents view session errors
	ErrorTypeSession ErrorType = "session"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind reports the error category. Every typed error below embeds
// *BaseError and so satisfies the kinded interface.
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Graph Errors

// ErrGraphNotReady is returned while the graph document is still loading
var ErrGraphNotReady = NewBaseError(ErrorTypeGraph, "graph not loaded yet", nil)

// ErrNodeNotFound is returned when a node identifier is not in the graph
type ErrNodeNotFound struct {
	*BaseError
	NodeID int
}

func NewNodeNotFound(nodeID int) *ErrNodeNotFound {
	return &ErrNodeNotFound{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("node not found: %d", nodeID), nil),
		NodeID:    nodeID,
	}
}

// ErrGraphInvalid is returned when a graph document violates a structural rule
type ErrGraphInvalid struct {
	*BaseError
	Reason string
}

func NewGraphInvalid(reason string) *ErrGraphInvalid {
	return &ErrGraphInvalid{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("invalid graph: %s", reason), nil),
		Reason:    reason,
	}
}

// ErrUnknownTheme is returned when a theme name is not one of the fixed categories
type ErrUnknownTheme struct {
	*BaseError
	Theme string
}

func NewUnknownTheme(theme string) *ErrUnknownTheme {
	return &ErrUnknownTheme{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("unknown theme: %q", theme), nil),
		Theme:     theme,
	}
}

// Load Errors

// ErrGraphLoadFailed is returned when the graph document cannot be fetched or decoded
type ErrGraphLoadFailed struct {
	*BaseError
	Source string
}

func NewGraphLoadFailed(source string, err error) *ErrGraphLoadFailed {
	return &ErrGraphLoadFailed{
		BaseError: NewBaseError(ErrorTypeLoad, fmt.Sprintf("failed to load graph from %s", source), err),
		Source:    source,
	}
}

// Database Errors

// ErrDatabaseConnectionFailed is returned when Neo4j connection fails
type ErrDatabaseConnectionFailed struct {
	*BaseError
	URI string
}

func NewDatabaseConnectionFailed(uri string, err error) *ErrDatabaseConnectionFailed {
	return &ErrDatabaseConnectionFailed{
		BaseError: NewBaseError(ErrorTypeDatabase, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrDatabaseQueryFailed is returned when a Cypher query fails
type ErrDatabaseQueryFailed struct {
	*BaseError
	Operation string
}

func NewDatabaseQueryFailed(operation string, err error) *ErrDatabaseQueryFailed {
	return &ErrDatabaseQueryFailed{
		BaseError: NewBaseError(ErrorTypeDatabase, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// Session Errors

// ErrSessionNotFound is returned when a view session id is unknown or expired
type ErrSessionNotFound struct {
	*BaseError
	SessionID string
}

func NewSessionNotFound(sessionID string) *ErrSessionNotFound {
	return &ErrSessionNotFound{
		BaseError: NewBaseError(ErrorTypeSession, fmt.Sprintf("session not found: %s", sessionID), nil),
		SessionID: sessionID,
	}
}

// ErrUnknownEvent is returned when a client sends an event type the dispatcher does not handle
type ErrUnknownEvent struct {
	*BaseError
	EventType string
}

func NewUnknownEvent(eventType string) *ErrUnknownEvent {
	return &ErrUnknownEvent{
		BaseError: NewBaseError(ErrorTypeSession, fmt.Sprintf("unknown event type: %q", eventType), nil),
		EventType: eventType,
	}
}

// ErrInvalidEvent is returned when an event is missing a field its type needs
type ErrInvalidEvent struct {
	*BaseError
	EventType string
}

func NewInvalidEvent(eventType, reason string) *ErrInvalidEvent {
	return &ErrInvalidEvent{
		BaseError: NewBaseError(ErrorTypeSession, fmt.Sprintf("invalid %s event: %s", eventType, reason), nil),
		EventType: eventType,
	}
}

// Context Errors

// ErrContextTimeout is returned when context times out
type ErrContextTimeout struct {
	*BaseError
	Operation string
	Timeout   time.Duration
}

func NewContextTimeout(operation string, timeout time.Duration) *ErrContextTimeout {
	return &ErrContextTimeout{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context timeout: %s (timeout: %v)", operation, timeout), nil),
		Operation: operation,
		Timeout:   timeout,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type kinded interface {
	Kind() ErrorType
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var k kinded
	if stderrors.As(err, &k) {
		return k.Kind() == errType
	}
	return false
}

// IsRetryable checks if an error is worth retrying. Timeouts, cancellation
// and malformed documents anywhere in the chain rule a retry out.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var timeout *ErrContextTimeout
	var invalid *ErrGraphInvalid
	if stderrors.As(err, &timeout) || stderrors.As(err, &invalid) ||
		stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var queryErr *ErrDatabaseQueryFailed
	var connErr *ErrDatabaseConnectionFailed
	var loadErr *ErrGraphLoadFailed
	return stderrors.As(err, &queryErr) || stderrors.As(err, &connErr) || stderrors.As(err, &loadErr)
}
