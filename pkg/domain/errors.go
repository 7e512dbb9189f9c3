package domain

import "errors"

// ErrElementNotFound is returned when the host document lacks an element a component needs.
var ErrElementNotFound = errors.New("element not found")

// ErrTransport is returned when a request could not be sent or its response could not be read.
var ErrTransport = errors.New("transport failure")

// ErrMalformedResponse is returned when a response body is not JSON or a sequence field is not a sequence.
var ErrMalformedResponse = errors.New("malformed response")

// ErrUnrecognizedShape describes a conversion response with none of output, result or detail.
var ErrUnrecognizedShape = errors.New("unexpected response")
