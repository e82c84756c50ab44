package errors

import (
	"fmt"
	"strings"
)

// IndexingError occurs when a selection or assignment key has the wrong
// shape, such as more than a row/column pair or a missing index
type IndexingError struct {
	Op      string
	Message string
}

// Error returns a textual representation of this IndexingError
func (e IndexingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// UnsupportedSelectionError occurs when a selection uses a construct this
// layer deliberately does not translate, such as a stepped range or a bare
// scalar row key
type UnsupportedSelectionError struct {
	Op          string
	Construct   string
	Alternative string
}

// Error returns a textual representation of this UnsupportedSelectionError
func (e UnsupportedSelectionError) Error() string {
	if e.Alternative == "" {
		return fmt.Sprintf("%s: %s is not supported", e.Op, e.Construct)
	}
	return fmt.Sprintf("%s: %s is not supported; use %s instead", e.Op, e.Construct, e.Alternative)
}

// ColumnNotFoundError occurs when a selected or assigned column label is
// absent from the underlying schema
type ColumnNotFoundError struct {
	Labels []string
}

// Error returns a textual representation of this ColumnNotFoundError
func (e ColumnNotFoundError) Error() string {
	return fmt.Sprintf("[%s] don't exist in columns", strings.Join(e.Labels, ", "))
}

// ConfigurationError occurs when an operation is invoked with a malformed
// specification, such as an empty aggregation spec or a grouped-map call
// without a declared return schema
type ConfigurationError struct {
	Op      string
	Message string
}

// Error returns a textual representation of this ConfigurationError
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TypeMismatchError occurs when an operation receives a value of the wrong
// kind, such as a nil grouped function or a multi-column assignment value
type TypeMismatchError struct {
	Op      string
	Message string
}

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// ComputationError occurs when a job fails while the engine is evaluating a
// plan, such as a non-positive value reaching a running product
type ComputationError struct {
	Op    string
	Cause error
}

// Error returns a textual representation of this ComputationError
func (e ComputationError) Error() string {
	return fmt.Sprintf("%s failed during execution: %s", e.Op, e.Cause)
}

// Unwrap returns the underlying cause of this ComputationError
func (e ComputationError) Unwrap() error {
	return e.Cause
}

// UnsupportedOperationError occurs when a recognized but unimplemented API
// name is requested
type UnsupportedOperationError struct {
	Name       string
	Kind       string
	Suggestion string
}

// Error returns a textual representation of this UnsupportedOperationError
func (e UnsupportedOperationError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("the %s %s is not implemented", e.Kind, e.Name)
	}
	return fmt.Sprintf("the %s %s is not implemented; %s", e.Kind, e.Name, e.Suggestion)
}
