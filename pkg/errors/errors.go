// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package errors provides an error type that pairs a message with a wrapped
// cause, so failures can carry the repository error vocabulary on top of
// the driver errors that triggered them.
package errors

import "encoding/json"

// Error specifies an API that must be fulfilled by error type.
type Error interface {
	// Error implements the error interface.
	Error() string

	// Msg returns error message.
	Msg() string

	// Err returns wrapped error.
	Err() Error

	// MarshalJSON returns a marshaled error.
	MarshalJSON() ([]byte, error)
}

var _ Error = (*chainedError)(nil)

// chainedError keeps a message and the cause it was wrapped around.
type chainedError struct {
	msg string
	err Error
}

// New returns an Error that formats as the given text.
func New(text string) Error {
	return &chainedError{msg: text}
}

// Wrap returns an Error carrying wrapper's message on top of err. A nil
// err leaves wrapper untouched.
func Wrap(wrapper, err error) error {
	if wrapper == nil || err == nil {
		return wrapper
	}

	return &chainedError{
		msg: messageOf(wrapper),
		err: cast(err),
	}
}

// Contains reports whether any layer of e1 carries e2's message.
func Contains(e1, e2 error) bool {
	if e1 == nil || e2 == nil {
		return e1 == e2
	}

	for {
		ce, ok := e1.(Error)
		if !ok {
			return e1.Error() == e2.Error()
		}
		if ce.Msg() == e2.Error() {
			return true
		}
		if e1 = ce.Err(); e1 == nil {
			return false
		}
	}
}

// Unwrap splits err into its top-level message and the cause underneath.
func Unwrap(err error) (error, error) {
	if ce, ok := err.(Error); ok {
		if ce.Err() == nil {
			return nil, New(ce.Msg())
		}
		return New(ce.Msg()), ce.Err()
	}

	return nil, err
}

func (ce *chainedError) Error() string {
	if ce == nil {
		return ""
	}
	if ce.err == nil {
		return ce.msg
	}

	return ce.msg + " : " + ce.err.Error()
}

func (ce *chainedError) Msg() string {
	return ce.msg
}

func (ce *chainedError) Err() Error {
	return ce.err
}

// Unwrap exposes the cause chain to the standard errors package, so
// errors.Is matches wrapped sentinel values by identity. Wrapper messages
// are flattened on Wrap; matching those takes Contains.
func (ce *chainedError) Unwrap() error {
	return ce.err
}

func (ce *chainedError) MarshalJSON() ([]byte, error) {
	var cause string
	if ce.err != nil {
		cause = ce.err.Msg()
	}

	return json.Marshal(&struct {
		Err string `json:"error"`
		Msg string `json:"message"`
	}{
		Err: cause,
		Msg: ce.msg,
	})
}

func messageOf(err error) string {
	if ce, ok := err.(Error); ok {
		return ce.Msg()
	}

	return err.Error()
}

func cast(err error) Error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(Error); ok {
		return ce
	}

	return &chainedError{msg: err.Error()}
}
