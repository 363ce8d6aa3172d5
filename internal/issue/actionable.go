// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with context for user-facing error messages.
	//
	// When Operation is empty the message is the cause's message unchanged, so
	// errors that already read "could not ..." can be annotated with
	// suggestions without being reworded:
	//
	//	err := issue.NewErrorContext().
	//		WithIssue(issue.StoreNotFoundId).
	//		WithSuggestion("Run 'spit --init' to create one").
	//		Wrap(storeErr).
	//		BuildError()
	ActionableError struct {
		// Operation describes what was being attempted (e.g., "resolve home directory").
		Operation string

		// Resource identifies the file, path, or entity involved (optional).
		Resource string

		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string

		// Issue optionally points at a catalog entry with longer help.
		Issue Id

		// Cause is the underlying error that triggered this error (optional).
		Cause error
	}

	// ErrorContext is a builder for constructing ActionableError instances.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       Id
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	if e.Operation == "" {
		if e.Cause == nil {
			return "unknown error"
		}
		return e.Cause.Error()
	}

	var msg strings.Builder
	msg.WriteString("could not ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(" '")
		msg.WriteString(e.Resource)
		msg.WriteString("'")
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause error for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the message followed by suggestions. In verbose mode the
// full error chain is appended:
//
//	could not open '.spitconfig': open .spitconfig: no such file or directory
//	  • Run 'spit --init' to create one
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder
	msg.WriteString(e.Error())

	if e.HasSuggestions() {
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = unwrapOne(err) {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}

	return msg.String()
}

// HasSuggestions returns true if the error has any suggestions.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource (file, path, entity) involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion adds a suggestion for how to fix the issue.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithIssue links a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// Wrap wraps an underlying error as the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates an ActionableError from the context.
// Returns nil if neither an operation nor a cause is set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" && c.cause == nil {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}

// BuildError is Build returned through the error interface, keeping a nil
// result a true nil error.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}

// unwrapOne follows single and joined error chains, taking the last branch
// of a join since store errors place their cause after the kind sentinel.
func unwrapOne(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) > 0 {
			return errs[len(errs)-1]
		}
	}
	return nil
}
