// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Adil Gabbasov

package server

import "errors"

var (
	errNoAddressConfigured = errors.New("no listen address configured")
)
