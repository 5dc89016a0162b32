package request

import (
	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/auth"
)

// CanView is the single read-access predicate: admin always, the assigned
// manager always, the requester always, everyone else denied. It guards the
// detail view and comment appends.
func CanView(actor *auth.User, req *Request) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsManager() && req.ManagerID != nil && *req.ManagerID == actor.ID {
		return true
	}
	return req.RequesterID == actor.ID
}

// CheckDecisionAccess is the stricter approve/reject predicate: admin, or the
// exact manager captured on the request at creation. A manager outside the
// reporting line is refused even though they may pass CanView elsewhere.
func CheckDecisionAccess(actor *auth.User, req *Request) *internal.AppError {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsManager() {
		return internal.NewForbiddenError("only managers can approve or reject requests", internal.ErrCodeAccessDenied)
	}
	if req.ManagerID == nil || *req.ManagerID != actor.ID {
		return internal.ErrNotAssignedApprover
	}
	return nil
}

// checkRequesterAccess gates the requester-only operations (update, cancel).
// Cancel stays requester-only even for admins; that mirrors the product
// behavior this engine replaces.
func checkRequesterAccess(actor *auth.User, req *Request) *internal.AppError {
	if req.RequesterID != actor.ID {
		return internal.ErrAccessDenied
	}
	return nil
}
