package api

import (
	"errors"
	"fmt"

	simplejson "github.com/bitly/go-simplejson"
)

// ExchangeError is a non-2xx response from the exchange. 4xx means the
// request shape is wrong and is never retried; 5xx is transient.
type ExchangeError struct {
	Status int
	Code   int64  // Binance error code, e.g. -2019
	Msg    string // Binance error message
	Body   string
}

func (e *ExchangeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("binance api status %d (code %d): %s", e.Status, e.Code, e.Msg)
	}
	return fmt.Sprintf("binance api status %d: %s", e.Status, e.Body)
}

// Retriable reports whether the response indicates a transient server fault.
func (e *ExchangeError) Retriable() bool {
	return e.Status >= 500
}

func newExchangeError(status int, body []byte) *ExchangeError {
	exErr := &ExchangeError{Status: status, Body: string(body)}
	if js, err := simplejson.NewJson(body); err == nil {
		exErr.Code = js.Get("code").MustInt64()
		exErr.Msg = js.Get("msg").MustString()
	}
	return exErr
}

// TransportError is a failure to complete the HTTP exchange at all
// (timeout, connection refused, DNS). Always retriable.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRetriable is the default retryable-error predicate for the retry policy.
func IsRetriable(err error) bool {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return true
	}
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr.Retriable()
	}
	return false
}
