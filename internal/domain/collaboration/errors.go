package collaboration

import (
	"errors"
	"fmt"
)

// Domain errors for the collaboration module.
var (
	// Not found
	ErrTeamNotFound       = errors.New("team not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrUserNotFound       = errors.New("user not found")

	// Permission
	ErrInsufficientPermission = errors.New("insufficient permission")

	// Invariant
	ErrCannotDemoteOwner    = errors.New("cannot change the role of the team owner")
	ErrCannotRemoveOwner    = errors.New("cannot remove the team owner")
	ErrOwnerCannotLeave     = errors.New("team owner cannot leave the team; delete the team instead")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrInvitationExpired    = errors.New("invitation has expired")

	// Validation
	ErrInvalidID               = errors.New("invalid identifier")
	ErrInvalidEmail            = errors.New("invalid email address")
	ErrInvalidTeamRole         = errors.New("invalid team role")
	ErrOwnerRoleNotAssignable  = errors.New("owner role cannot be assigned")
	ErrInvalidTeamName         = errors.New("team name must be 1 to 100 characters")
	ErrInvalidDescription      = errors.New("description must be at most 1000 characters")
	ErrInvalidInvitationToken  = errors.New("invalid invitation token")
	ErrInvalidInvitationStatus = errors.New("invalid invitation status")

	// Conflict
	ErrAlreadyMember           = errors.New("user is already a member of this team")
	ErrInvitationAlreadyExists = errors.New("a pending invitation already exists for this email")
	ErrInvitationEmailMismatch = errors.New("invitation was sent to a different email address")
	ErrConcurrentUpdate        = errors.New("resource was modified concurrently")
)

// Kind categorizes an error for callers that render or map it.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPermission
	KindInvariant
	KindValidation
	KindConflict
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindInvariant:
		return "invariant"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ErrorInfo describes a categorized sentinel error.
type ErrorInfo struct {
	Err  error
	Kind Kind
	Code string
}

var errorTable = []ErrorInfo{
	{ErrTeamNotFound, KindNotFound, "team_not_found"},
	{ErrInvitationNotFound, KindNotFound, "invitation_not_found"},
	{ErrMembershipNotFound, KindNotFound, "membership_not_found"},
	{ErrUserNotFound, KindNotFound, "user_not_found"},

	{ErrInsufficientPermission, KindPermission, "insufficient_permission"},

	{ErrCannotDemoteOwner, KindInvariant, "cannot_demote_owner"},
	{ErrCannotRemoveOwner, KindInvariant, "cannot_remove_owner"},
	{ErrOwnerCannotLeave, KindInvariant, "owner_cannot_leave"},
	{ErrInvitationNotPending, KindInvariant, "invitation_not_pending"},
	{ErrInvitationExpired, KindInvariant, "invitation_expired"},

	{ErrInvalidID, KindValidation, "invalid_id"},
	{ErrInvalidEmail, KindValidation, "invalid_email"},
	{ErrInvalidTeamRole, KindValidation, "invalid_team_role"},
	{ErrOwnerRoleNotAssignable, KindValidation, "owner_role_not_assignable"},
	{ErrInvalidTeamName, KindValidation, "invalid_team_name"},
	{ErrInvalidDescription, KindValidation, "invalid_description"},
	{ErrInvalidInvitationToken, KindValidation, "invalid_invitation_token"},
	{ErrInvalidInvitationStatus, KindValidation, "invalid_invitation_status"},

	{ErrAlreadyMember, KindConflict, "already_member"},
	{ErrInvitationAlreadyExists, KindConflict, "invitation_already_exists"},
	{ErrInvitationEmailMismatch, KindConflict, "invitation_email_mismatch"},
	{ErrConcurrentUpdate, KindConflict, "concurrent_update"},
}

// Lookup finds the categorized error wrapped by err in table.
func Lookup(err error, table []ErrorInfo) (ErrorInfo, bool) {
	if err == nil {
		return ErrorInfo{}, false
	}
	for _, info := range table {
		if errors.Is(err, info.Err) {
			return info, true
		}
	}
	return ErrorInfo{}, false
}

// Classify finds the categorized collaboration error wrapped by err.
func Classify(err error) (ErrorInfo, bool) {
	return Lookup(err, errorTable)
}

// KindOf returns the category of err, or KindUnknown.
func KindOf(err error) Kind {
	info, _ := Classify(err)
	return info.Kind
}

// Code returns the stable machine code of err, or "" when uncategorized.
func Code(err error) string {
	info, _ := Classify(err)
	return info.Code
}

// Deny builds a permission error naming the attempted action.
func Deny(action string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientPermission, action)
}
