package internal

import "fmt"

// Kind identifies the reason an evaluation step failed. Kind values carry no
// payload of their own; context belongs in the wrapping Error's message.
type Kind int

const (
	// MethodNotFound means dispatch found no matching method or callable
	// member on the receiver or any of its ancestors.
	MethodNotFound Kind = iota
	// ObjectNotFound means a scope/global lookup failed, or an ObjectId was
	// missing from the heap.
	ObjectNotFound
	// MemberNotFound means a member read failed across the entire parent
	// chain.
	MemberNotFound
	// ArgumentError means a native method received too few, or
	// wrong-typed, arguments.
	ArgumentError
	// Runtime means a type mismatch in coercion, a nonsensical operand, or
	// dispatch on a non-object receiver.
	Runtime
)

var kindNames = [...]string{
	MethodNotFound: "MethodNotFound",
	ObjectNotFound: "ObjectNotFound",
	MemberNotFound: "MemberNotFound",
	ArgumentError:  "ArgumentError",
	Runtime:        "Runtime",
}

// String returns the kind's tag name.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the evaluator's error type. Every fallible step in eval, dispatch,
// and the native methods returns one of these rather than panicking; the
// source language itself has no construct to catch them, so the first one
// aborts the current statement (see Interpreter.Exec in package dolittle).
type Error struct {
	Kind    Kind
	Message string
}

// NewError builds an Error of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, &Error{Kind: Runtime}) works without comparing messages.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
