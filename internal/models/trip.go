package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// TripPost is the parsed view over a trip announcement message.
// RawLines keeps the original text verbatim: recalculation rewrites the two
// money substrings and leaves every other byte untouched.
type TripPost struct {
	Rate     decimal.Decimal // total rate, the first $ amount in the post
	PerMile  decimal.Decimal // second $ amount, carries the /mi suffix
	Miles    decimal.Decimal
	RawLines []string
}

// Sign says which way an adjustment moves the rate.
type Sign string

const (
	SignAdd   Sign = "add"
	SignMinus Sign = "minus"
)

// Adjustment is a parsed "Add N" / "Minus N" reply command.
type Adjustment struct {
	Sign   Sign
	Amount decimal.Decimal // non-negative; direction comes from Sign
}

// Delta returns the signed amount to add to the rate.
func (a *Adjustment) Delta() decimal.Decimal {
	if a.Sign == SignMinus {
		return a.Amount.Neg()
	}
	return a.Amount
}

// Reply is a message the transport shell should send back to the chat.
type Reply struct {
	Text     string
	Threaded bool // send as a reply to the triggering message
}

// FailKind classifies user-visible failures. "Not a trip post" and "not a
// command" are not failures at all; those cases return no reply.
type FailKind string

const (
	// FailMalformed: looks like a trip post or command but a required field
	// is missing or unreadable.
	FailMalformed FailKind = "malformed"
	// FailRejected: well-formed input whose result would be invalid, such as
	// an adjustment that drives the rate below zero.
	FailRejected FailKind = "rejected"
)

// Failure is a parse or computation failure whose diagnostic is sent to the
// chat as-is. The core never panics and never returns opaque errors.
type Failure struct {
	Kind       FailKind
	Diagnostic string
}

func (f *Failure) Error() string { return f.Diagnostic }

// Malformed builds a MalformedInput failure.
func Malformed(diag string) error { return &Failure{Kind: FailMalformed, Diagnostic: diag} }

// Rejected builds a ComputationRejected failure.
func Rejected(diag string) error { return &Failure{Kind: FailRejected, Diagnostic: diag} }

// KindOf extracts the failure kind when err is a Failure.
func KindOf(err error) (FailKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}
