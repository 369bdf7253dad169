package simplicityerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// These values identify a specific SimplicityError.
var (
	// ErrTruncatedInput indicates the bit stream ended before a complete
	// program could be read.
	ErrTruncatedInput = newSimplicityError("ErrTruncatedInput")

	// ErrInvalidTag indicates a combinator tag that does not name any node,
	// such as the stop code.
	ErrInvalidTag = newSimplicityError("ErrInvalidTag")

	// ErrMalformedProgram indicates a structurally invalid program: a bad
	// back-reference, an unknown jet, trailing bits, misplaced hidden nodes
	// or a program that is not maximally shared.
	ErrMalformedProgram = newSimplicityError("ErrMalformedProgram")

	// ErrTypeMismatch indicates that type unification failed.
	ErrTypeMismatch = newSimplicityError("ErrTypeMismatch")

	// ErrWitnessLengthMismatch indicates a witness blob that does not carry
	// exactly the bits the witness nodes require.
	ErrWitnessLengthMismatch = newSimplicityError("ErrWitnessLengthMismatch")

	// ErrInputIndexOutOfRange indicates an input index past the end of the
	// transaction inputs.
	ErrInputIndexOutOfRange = newSimplicityError("ErrInputIndexOutOfRange")

	// ErrMissingInputUTXO indicates a transaction input without a matching
	// spent output.
	ErrMissingInputUTXO = newSimplicityError("ErrMissingInputUTXO")

	// ErrUTXOCountMismatch indicates more UTXOs were given than the
	// transaction has inputs.
	ErrUTXOCountMismatch = newSimplicityError("ErrUTXOCountMismatch")

	ErrInvalidHex = newSimplicityError("ErrInvalidHex")

	ErrInvalidEncoding = newSimplicityError("ErrInvalidEncoding")

	// ErrInvalidControlBlock indicates a taproot control block of the wrong
	// size or with an invalid internal key.
	ErrInvalidControlBlock = newSimplicityError("ErrInvalidControlBlock")

	// ErrInvalidUTXO indicates a malformed script:asset:amount descriptor.
	ErrInvalidUTXO = newSimplicityError("ErrInvalidUTXO")

	ErrInvalidTransaction = newSimplicityError("ErrInvalidTransaction")

	// ErrInvalidAddress indicates a string that is not an Elements address.
	ErrInvalidAddress = newSimplicityError("ErrInvalidAddress")

	ErrInvalidKey = newSimplicityError("ErrInvalidKey")

	ErrInvalidSignature = newSimplicityError("ErrInvalidSignature")

	// ErrPublicKeyMismatch indicates that the given public key does not
	// belong to the given secret key.
	ErrPublicKeyMismatch = newSimplicityError("ErrPublicKeyMismatch")

	// ErrSignatureWithoutPublicKey indicates a signature was supplied for
	// verification without a key to check it against.
	ErrSignatureWithoutPublicKey = newSimplicityError("ErrSignatureWithoutPublicKey")
)

// SimplicityError identifies a failure to decode, type, commit to or sign
// for a program. The caller can use errors.Is against the sentinel values
// above to determine the kind of failure.
type SimplicityError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e SimplicityError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e SimplicityError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e SimplicityError) Cause() error {
	return e.inner
}

// Is reports whether target is a SimplicityError of the same kind, so that
// errors carrying details still match their sentinel.
func (e SimplicityError) Is(target error) bool {
	var other SimplicityError
	if !errors.As(target, &other) {
		return false
	}
	return other.message == e.message
}

// Kind returns the name of the error kind, e.g. "ErrTypeMismatch".
func (e SimplicityError) Kind() string {
	return e.message
}

func newSimplicityError(message string) SimplicityError {
	return SimplicityError{message: message, inner: nil}
}

// Wrapf attaches a formatted detail message to the given sentinel.
func Wrapf(kind SimplicityError, format string, args ...interface{}) error {
	return errors.WithStack(SimplicityError{
		message: kind.message,
		inner:   errors.Errorf(format, args...),
	})
}

// ErrTypeMismatchDetails is carried by ErrTypeMismatch. It names the node at
// which unification failed, the child whose type it conflicts with (or -1)
// and the two types that could not be unified.
type ErrTypeMismatchDetails struct {
	NodeIndex  int
	ChildIndex int
	Left       string
	Right      string
}

func (e ErrTypeMismatchDetails) Error() string {
	if e.ChildIndex >= 0 {
		return fmt.Sprintf("node %d (child %d): cannot unify %s with %s", e.NodeIndex, e.ChildIndex, e.Left, e.Right)
	}
	return fmt.Sprintf("node %d: cannot unify %s with %s", e.NodeIndex, e.Left, e.Right)
}

// NewErrTypeMismatch creates a new ErrTypeMismatch error wrapped in a
// SimplicityError.
func NewErrTypeMismatch(nodeIndex, childIndex int, left, right string) error {
	return errors.WithStack(SimplicityError{
		message: "ErrTypeMismatch",
		inner:   ErrTypeMismatchDetails{NodeIndex: nodeIndex, ChildIndex: childIndex, Left: left, Right: right},
	})
}

// ErrWitnessLengthDetails is carried by ErrWitnessLengthMismatch.
type ErrWitnessLengthDetails struct {
	ExpectedBits int
	ActualBits   int
	Trailing     bool
}

func (e ErrWitnessLengthDetails) Error() string {
	if e.Trailing {
		return fmt.Sprintf("witness has unused data after the %d expected bits (%d bits given)",
			e.ExpectedBits, e.ActualBits)
	}
	return fmt.Sprintf("witness too short: needs at least %d bits, %d bits given", e.ExpectedBits, e.ActualBits)
}

// NewErrWitnessLengthMismatch creates a new ErrWitnessLengthMismatch error
// wrapped in a SimplicityError.
func NewErrWitnessLengthMismatch(expectedBits, actualBits int, trailing bool) error {
	return errors.WithStack(SimplicityError{
		message: "ErrWitnessLengthMismatch",
		inner:   ErrWitnessLengthDetails{ExpectedBits: expectedBits, ActualBits: actualBits, Trailing: trailing},
	})
}

// ErrInputIndexDetails is carried by ErrInputIndexOutOfRange.
type ErrInputIndexDetails struct {
	Index      uint32
	InputCount int
}

func (e ErrInputIndexDetails) Error() string {
	return fmt.Sprintf("input index %d out of range for a transaction with %d inputs", e.Index, e.InputCount)
}

// NewErrInputIndexOutOfRange creates a new ErrInputIndexOutOfRange error
// wrapped in a SimplicityError.
func NewErrInputIndexOutOfRange(index uint32, inputCount int) error {
	return errors.WithStack(SimplicityError{
		message: "ErrInputIndexOutOfRange",
		inner:   ErrInputIndexDetails{Index: index, InputCount: inputCount},
	})
}
