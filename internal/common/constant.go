// Package common contains constants and helpers shared by the client packages.
package common

const (
	// AuthorizationHeader carries "Bearer <token>" on authenticated requests.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader carries a per-request uuid for correlating client and
	// server logs.
	RequestIDHeader = "X-Request-ID"

	BearerPrefix = "Bearer "
)
