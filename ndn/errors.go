package ndn

import "errors"

var (
	// ErrInvalidValue is returned when a field value is out of range or
	// structurally wrong for the operation being attempted.
	ErrInvalidValue = errors.New("ndn: invalid value")
	// ErrNotSupported marks a required primitive (signature type, key
	// locator kind) that is not implemented. No function in this repository
	// returns it; the verifier reports unsupported cases as InterestResultBad.
	ErrNotSupported = errors.New("ndn: not supported")
	// ErrDeadlineExceed marks a deadline that passed with no result. No
	// function in this repository returns it.
	ErrDeadlineExceed = errors.New("ndn: deadline exceeded")
	// ErrFaceDown is returned by any Face operation attempted while the
	// transport is not connected.
	ErrFaceDown = errors.New("ndn: face down")
	// ErrNotOpen is returned by Close when the Face is not in the Opened state.
	ErrNotOpen = errors.New("ndn: face not open")
	// ErrMultipleHandlers is returned by RegisterPrefix when a prefix is
	// already registered on this Face.
	ErrMultipleHandlers = errors.New("ndn: prefix already has a handler")
)
