package service

import "fmt"

// ErrResourceNotFound is the call-level failure channel: the transport
// surfaces it outside the structured validation payload.
type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(kind string, id any) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s: %v not found!", kind, id)}
}

func NewErrUserNotFound(id any) *ErrResourceNotFound {
	return NewErrResourceNotFound("User", id)
}

func NewErrOrgNotFound(id any) *ErrResourceNotFound {
	return NewErrResourceNotFound("Org", id)
}

// ErrInvalidRequest is the client-correctable failure channel.
type ErrInvalidRequest struct {
	error
}

func NewErrInvalidRequest(format string, args ...any) *ErrInvalidRequest {
	return &ErrInvalidRequest{fmt.Errorf(format, args...)}
}

// NewErrUserNotResolvable reports a missing user through the validation
// channel. Create and Update signal unknown users this way, unlike Destroy
// and List which fail at the call level.
func NewErrUserNotResolvable(id any) *ErrInvalidRequest {
	return NewErrInvalidRequest("User: %v not found!", id)
}

type ErrOrgUpdateForbidden struct {
	error
}

func NewErrOrgUpdateForbidden(userID, orgID int64) *ErrOrgUpdateForbidden {
	return &ErrOrgUpdateForbidden{fmt.Errorf("User: %d has no permission to update Org: %d", userID, orgID)}
}
