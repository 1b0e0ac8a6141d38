package server

import "errors"

// errAPIDisabled is returned by [NewServer] when there is no control API to
// serve: the handler was not built or the listen address is empty.
var errAPIDisabled = errors.New("control api is disabled")
