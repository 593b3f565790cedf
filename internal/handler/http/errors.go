// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Adil Gabbasov

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request
	// does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidToken is returned when the bearer token fails signature,
	// issuer, or expiration checks.
	ErrInvalidToken = errors.New("invalid bearer token")
)
