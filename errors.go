package arazzo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies the structural failures a document build can hit.
type ErrorCode string

const (
	// ErrorCodeShapeMismatch: a node is not the kind a field requires.
	ErrorCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"
	// ErrorCodeMissingField: a required field is absent.
	ErrorCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrorCodeTypeMismatch: a field is present but its scalar type is wrong.
	ErrorCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrorCodeInvalidUnion: a polymorphic field matched zero or several
	// candidate shapes.
	ErrorCodeInvalidUnion ErrorCode = "AMBIGUOUS_OR_INVALID_UNION"
	// ErrorCodeDuplicateIdentifier: a uniqueness invariant is violated.
	ErrorCodeDuplicateIdentifier ErrorCode = "DUPLICATE_IDENTIFIER"
	// ErrorCodeDanglingReference: a reusable-object reference does not
	// resolve inside components.
	ErrorCodeDanglingReference ErrorCode = "DANGLING_REFERENCE"
	// ErrorCodeUnsupportedVersion: the document declares a specification
	// version this module does not handle.
	ErrorCodeUnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
)

// DecodeError is the canonical error returned while building a typed
// model from a document tree. Every occurrence is fatal to the build;
// Path locates the offending field from the document root.
type DecodeError struct {
	Code       ErrorCode `json:"code"`
	Path       string    `json:"path"`
	Key        string    `json:"key,omitempty"`
	Expected   string    `json:"expected,omitempty"`
	Actual     string    `json:"actual,omitempty"`
	Candidates []string  `json:"candidates,omitempty"`
	Name       string    `json:"name,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	Found      string    `json:"found,omitempty"`
	Supported  []string  `json:"supported,omitempty"`
}

func (e *DecodeError) Error() string {
	switch e.Code {
	case ErrorCodeShapeMismatch:
		return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, e.Actual)
	case ErrorCodeMissingField:
		return fmt.Sprintf("%s: missing required field %q", e.Path, e.Key)
	case ErrorCodeTypeMismatch:
		return fmt.Sprintf("%s: field %q: expected %s, got %s", e.Path, e.Key, e.Expected, e.Actual)
	case ErrorCodeInvalidUnion:
		return fmt.Sprintf("%s: value does not match exactly one of: %s", e.Path, strings.Join(e.Candidates, ", "))
	case ErrorCodeDuplicateIdentifier:
		return fmt.Sprintf("%s: duplicate identifier %q", e.Path, e.Name)
	case ErrorCodeDanglingReference:
		return fmt.Sprintf("%s: reference %q does not resolve to a %s in components", e.Path, e.Reference, e.Expected)
	case ErrorCodeUnsupportedVersion:
		return fmt.Sprintf("unsupported arazzo version %q (supported: %s)", e.Found, strings.Join(e.Supported, ", "))
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Path)
	}
}

// AsDecodeError unwraps err into a *DecodeError when one is in the chain.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func errShape(path string, expected kind, n node) *DecodeError {
	return &DecodeError{
		Code:     ErrorCodeShapeMismatch,
		Path:     path,
		Expected: expected.String(),
		Actual:   describe(n),
	}
}

func errMissing(path, key string) *DecodeError {
	return &DecodeError{Code: ErrorCodeMissingField, Path: path, Key: key}
}

func errType(path, key, expected, actual string) *DecodeError {
	return &DecodeError{
		Code:     ErrorCodeTypeMismatch,
		Path:     path,
		Key:      key,
		Expected: expected,
		Actual:   actual,
	}
}

func errUnion(path string, candidates ...string) *DecodeError {
	return &DecodeError{Code: ErrorCodeInvalidUnion, Path: path, Candidates: candidates}
}

func errDuplicate(path, name string) *DecodeError {
	return &DecodeError{Code: ErrorCodeDuplicateIdentifier, Path: path, Name: name}
}

func errDangling(path, reference, expectedKind string) *DecodeError {
	return &DecodeError{
		Code:      ErrorCodeDanglingReference,
		Path:      path,
		Reference: reference,
		Expected:  expectedKind,
	}
}

func errVersion(found string, supported []string) *DecodeError {
	return &DecodeError{
		Code:      ErrorCodeUnsupportedVersion,
		Path:      pathField(rootPath, "arazzo"),
		Found:     found,
		Supported: supported,
	}
}
