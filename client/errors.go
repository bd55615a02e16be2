package client

import (
	"errors"
	"fmt"
)

// Remote error codes with special meaning to the sync engine.
const (
	CodeDuplicate   = 187 // duplicate content; idempotency rejection
	CodeAlreadyGone = 34  // resource no longer exists
)

// APIError is a coded remote failure as decoded from the service's error
// body. Transport failures are returned as plain errors, not APIErrors.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote call failed with code %d: %s", e.Code, e.Message)
}

// IsDuplicate reports whether err is the remote's duplicate-content
// rejection, which callers treat as already-succeeded.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeDuplicate
}

// IsAlreadyGone reports whether err means the resource was deleted before we
// got to it; success-equivalent for destroy-style operations.
func IsAlreadyGone(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeAlreadyGone
}
