// Package domainerrors carries the coded error type shared by every layer.
//
// Services return *Error values so callers can branch on a Code without string
// matching. Causes are preserved through Wrap and remain reachable with
// errors.Is and errors.As.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeInternal     Code = "internal_error"

	// CodePoolNotConfigured means the registry holds no pools.
	CodePoolNotConfigured Code = "pool_not_configured"
	// CodePoolNotFound means no pool matched the requested namespace, or every
	// queried pool reported the identifier absent.
	CodePoolNotFound Code = "pool_not_found"
	// CodeDidNotFound is the resolution flavour of CodePoolNotFound.
	CodeDidNotFound Code = "did_not_found"
	// CodeResolution means no pool answered and at least one failed for a
	// reason other than not-found.
	CodeResolution Code = "resolution_error"

	CodeTaaConfigurationRequired Code = "taa_configuration_required"
	CodeTaaMismatch              Code = "taa_mismatch"

	// CodeLedgerClient wraps a failure raised by the ledger client or signer.
	CodeLedgerClient Code = "ledger_client_error"
)

// parents records specialisations: a code matches its parent in HasCode.
var parents = map[Code]Code{
	CodeDidNotFound: CodePoolNotFound,
}

// Is reports whether c equals target or specialises it.
func (c Code) Is(target Code) bool {
	for cur := c; cur != ""; cur = parents[cur] {
		if cur == target {
			return true
		}
	}
	return false
}

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given code.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err. A nil err yields nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the outermost *Error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether any *Error in err's chain carries code, directly or
// through specialisation.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code.Is(code) {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is errors.Is, re-exported so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
