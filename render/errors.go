package render

import (
	"errors"
	"fmt"
)

// GerberError is a violation of the input format.
type GerberError struct {
	Msg string
}

func (e *GerberError) Error() string {
	return e.Msg
}

func newError(format string, args ...interface{}) error {
	return &GerberError{Msg: fmt.Sprintf(format, args...)}
}

// FileError attaches the location of the offending block.
type FileError struct {
	File string
	Line int
	Col  int
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("error in file %s, line %d, column %d: %v", e.File, e.Line, e.Col, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err is a Gerber format violation.
func IsFormatError(err error) bool {
	var ge *GerberError
	return errors.As(err, &ge)
}
