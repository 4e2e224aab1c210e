// Package common contains shared constants and sentinel errors used across
// gophauth components.
package common

// RequestIDHeaderName is the gRPC metadata key and HTTP header that carries
// the request correlation id.
const RequestIDHeaderName = "x-request-id"
