package payment

import (
	"errors"
	"fmt"
)

var (
	ErrPaymentNotEligible     = errors.New("order is not eligible for online payment")
	ErrPaymentLinkUnavailable = errors.New("payment gateway returned no payment link")
	ErrPaymentGateway         = errors.New("payment gateway error")
)

// GatewayError carries the upstream failure. StatusCode is 0 when the gateway
// was never reached.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	var msg string
	switch {
	case e.StatusCode != 0 && e.Message != "":
		msg = fmt.Sprintf("payment gateway: %d %s", e.StatusCode, e.Message)
	case e.Message != "":
		msg = "payment gateway: " + e.Message
	case e.Err != nil:
		return "payment gateway: " + e.Err.Error()
	default:
		return ErrPaymentGateway.Error()
	}
	if e.Err != nil && e.Err.Error() != e.Message {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Is(target error) bool { return target == ErrPaymentGateway }

func (e *GatewayError) Unwrap() error { return e.Err }
