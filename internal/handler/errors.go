// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration disables the control API. The runtime treats it as "run
// headless" rather than as a startup failure.
var errNoHandlersAreCreated = errors.New("no handlers are created")

// IsNoHandlers reports whether err means that no transport was configured.
func IsNoHandlers(err error) bool {
	return errors.Is(err, errNoHandlersAreCreated)
}
