package errdef

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnknown      Code = ""
	CodeColor        Code = "malformed_color"
	CodeCyclicDef    Code = "cyclic_definition"
	CodeCyclicImport Code = "cyclic_import"
	CodeDirective    Code = "malformed_directive"
	CodeTheme        Code = "malformed_theme"
	CodeFilesystem   Code = "filesystem"
)

type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, format string, args ...interface{}) error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf walks the wrap chain and returns the first code it finds.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnknown
}

func Message(err error) string {
	var coded *Error
	if errors.As(err, &coded) && coded.Msg != "" {
		return coded.Msg
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
