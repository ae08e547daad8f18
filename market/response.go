package market

import (
	"fmt"
	"strings"
)

// Fault is one expected, user-correctable failure: the order field (or
// subsystem) it concerns and a stable rule code.
type Fault struct {
	Field string
	Code  string
}

func (f Fault) Error() string {
	return f.Field + ": " + f.Code
}

// Faults is the in-band error list carried by response envelopes.
// Validation and connection failures travel as Faults, never as panics.
type Faults []Fault

func (fs Faults) Error() string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.Error()
	}
	return strings.Join(parts, "; ")
}

// Fault codes shared across the engine.
const (
	CodeRequired           = "required"
	CodeMustBeEmpty        = "must-be-empty"
	CodePositive           = "must-be-positive"
	CodeBraceChildren      = "brace-cannot-have-children"
	CodeInstrumentMismatch = "instrument-mismatch"
	CodeDepthExceeded      = "depth-exceeded"
	CodeUnderAsk           = "must-be-at-or-above-ask"
	CodeOverAsk            = "must-be-at-or-below-ask"
	CodeUnderBid           = "must-be-at-or-above-bid"
	CodeOverBid            = "must-be-at-or-below-bid"
	CodeUnderActivation    = "must-be-at-or-above-activation"
	CodeOverActivation     = "must-be-at-or-below-activation"
	CodeNoQuote            = "no-quote"
	CodeNoConnection       = "no-connection"
	CodeUnknownOrder       = "unknown-order"
)

// NoConnection is the fault every operation against a torn-down session
// reports.
func NoConnection() Faults {
	return Faults{{Field: "connection", Code: CodeNoConnection}}
}

// StatusResponse is the envelope for session commands. Expected failures
// populate Errors and set StatusError instead of raising.
type StatusResponse struct {
	Status ConnectionStatus
	Errors Faults
}

func (r StatusResponse) Ok() bool {
	return len(r.Errors) == 0
}

// OrderResponse is the envelope for SendOrder / ClearOrder. Transaction is
// the engine-assigned id of the accepted order; Errors is non-empty when the
// request was rejected and no side effect took place.
type OrderResponse struct {
	Data        *Order
	Transaction string
	Errors      Faults
}

func (r OrderResponse) Ok() bool {
	return len(r.Errors) == 0
}

// Errorf builds a single-fault list for failures that carry dynamic context,
// e.g. broker session errors surfaced through Connect.
func Errorf(field, format string, args ...any) Faults {
	return Faults{{Field: field, Code: fmt.Sprintf(format, args...)}}
}
