package loader

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes shared by the loader and the CLI.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeUnsupported   = "E002" // Unsupported file format
	ErrCodeDecodeFailed  = "E003" // JSON/YAML decode failed
	ErrCodeCompileFailed = "E004" // CUE compile failed
	ErrCodeNotFound      = "E005" // File not found
	ErrCodeInvalid       = "E006" // CUE schema validation failed
	ErrCodeEmpty         = "E007" // Diagram has no nodes
)

// LoadError is an input error with a code and, for CUE input, a position.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Code returns the code of a LoadError anywhere in err's chain, or
// ErrCodeGeneric.
func Code(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// cueError converts a CUE error, keeping the first reported position.
func cueError(code, path string, err error) *LoadError {
	le := &LoadError{Code: code, Message: err.Error(), Path: path}
	for _, e := range cueerrors.Errors(err) {
		if pos := e.Position(); pos.IsValid() {
			le.Pos = pos
			le.Message = cueerrors.Details(e, nil)
			break
		}
	}
	return le
}
