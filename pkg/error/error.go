package error

import (
	"fmt"
	"runtime"
	"strings"
)

// ErrorCategory classifies errors by their nature and the appropriate reaction.
type ErrorCategory int

const (
	// ErrCategoryUser represents failures raised by caller-supplied functions
	// (key extractors, predicates, mappers) or by invalid caller input.
	ErrCategoryUser ErrorCategory = iota

	// ErrCategoryPrecondition represents a violated precondition of an aggregator,
	// such as averaging a group that received no records. These are logic errors
	// to fix upstream, not conditions to recover from.
	ErrCategoryPrecondition

	// ErrCategorySystem represents environment failures: unreadable files,
	// malformed documents, unavailable outputs.
	ErrCategorySystem
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryUser:
		return "user"
	case ErrCategoryPrecondition:
		return "precondition"
	case ErrCategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Error codes.
const (
	CodeDivisionUndefined   = "DIVISION_UNDEFINED"
	CodeKeyExtractionFailed = "KEY_EXTRACTION_FAILED"
	CodeFoldFailed          = "FOLD_FAILED"
	CodeKeyCollision        = "KEY_COLLISION"
	CodeInvalidQuery        = "INVALID_QUERY"
	CodeLoadFailed          = "LOAD_FAILED"
)

// Sentinels for errors.Is. Matching is by Code, so any GroupError carrying the
// same code matches regardless of message or context.
var (
	ErrDivisionUndefined   = &GroupError{Code: CodeDivisionUndefined, Category: ErrCategoryPrecondition}
	ErrKeyExtractionFailed = &GroupError{Code: CodeKeyExtractionFailed, Category: ErrCategoryUser}
	ErrFoldFailed          = &GroupError{Code: CodeFoldFailed, Category: ErrCategoryUser}
	ErrKeyCollision        = &GroupError{Code: CodeKeyCollision, Category: ErrCategoryUser}
	ErrInvalidQuery        = &GroupError{Code: CodeInvalidQuery, Category: ErrCategoryUser}
	ErrLoadFailed          = &GroupError{Code: CodeLoadFailed, Category: ErrCategorySystem}
)

// GroupError is a structured error with context about where a grouping or
// aggregation failed.
type GroupError struct {
	// Code is a stable identifier for this error type (e.g. "DIVISION_UNDEFINED").
	Code string

	// Category classifies the error for handling.
	Category ErrorCategory

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail adds context about the specific instance, e.g. the offending group key.
	Detail string

	// Operation names the operation that was running, e.g. "GroupBy", "Averaging".
	Operation string

	// Component names the subsystem the error originated in.
	Component string

	// Cause is the underlying error, if any.
	Cause error

	// Stack is captured by New and Wrap.
	Stack []uintptr
}

// New creates a GroupError with the given category, code and message.
func New(category ErrorCategory, code, message string) *GroupError {
	return &GroupError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
}

// Wrap attaches grouping context to err. If err already is a *GroupError a
// copy is returned with operation and component filled in only when unset;
// err itself is never modified, so the Err* sentinels stay intact.
func Wrap(err error, code, operation, component string) *GroupError {
	if err == nil {
		return nil
	}

	if ge, ok := err.(*GroupError); ok {
		c := *ge
		if c.Operation == "" {
			c.Operation = operation
		}
		if c.Component == "" {
			c.Component = component
		}
		return &c
	}

	return &GroupError{
		Code:      code,
		Category:  ErrCategoryUser,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// WithDetail sets Detail and returns the receiver.
func (e *GroupError) WithDetail(format string, args ...any) *GroupError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithOperation sets Operation and Component and returns the receiver.
func (e *GroupError) WithOperation(operation, component string) *GroupError {
	e.Operation = operation
	e.Component = component
	return e
}

// captureStack skips runtime.Callers, captureStack and New/Wrap.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error formats as:
// [CODE] Message: Detail (operation: Operation, component: Component) caused by: cause
func (e *GroupError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}

	if e.Operation != "" {
		fmt.Fprintf(&b, " (operation: %s", e.Operation)
		if e.Component != "" {
			fmt.Fprintf(&b, ", component: %s", e.Component)
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, " caused by: %v", e.Cause)
	}

	return b.String()
}

func (e *GroupError) Unwrap() error {
	return e.Cause
}

// Is matches any *GroupError with the same Code.
func (e *GroupError) Is(target error) bool {
	t, ok := target.(*GroupError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// FormatStack returns a human-readable stack trace.
func (e *GroupError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "  %s\n    %s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}

	return b.String()
}

// DivisionUndefined reports an average requested over zero values.
func DivisionUndefined(operation string) *GroupError {
	return &GroupError{
		Code:      CodeDivisionUndefined,
		Category:  ErrCategoryPrecondition,
		Message:   "average of zero values is undefined",
		Operation: operation,
		Component: "aggregation",
		Stack:     captureStack(),
	}
}

// InvalidQuery reports a rejected query or CLI configuration.
func InvalidQuery(format string, args ...any) *GroupError {
	return &GroupError{
		Code:      CodeInvalidQuery,
		Category:  ErrCategoryUser,
		Message:   fmt.Sprintf(format, args...),
		Component: "query",
		Stack:     captureStack(),
	}
}
