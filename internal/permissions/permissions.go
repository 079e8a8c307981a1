// Package permissions is the single place that decides who may do what.
// Decisions are pure functions over (actor, action, resource); handlers
// translate a false result into a forbidden response with no further detail.
package permissions

import (
	"inkwell/internal/models"
)

type Action int

const (
	ActionCreatePost Action = iota
	ActionEditPost
	ActionDeletePost
	ActionCreateComment
	ActionViewPost
	ActionViewComments
	ActionViewPostList
)

// EditPolicy controls who may edit posts. The historical behavior lets any
// logged-in user edit any post (and editing re-stamps authorship), so that is
// the default; owner-only and admin-only are available via EDIT_POLICY.
type EditPolicy int

const (
	EditAnyAuthenticated EditPolicy = iota
	EditOwnerOnly
	EditAdminOnly
)

// ParseEditPolicy maps an EDIT_POLICY env value to a policy, defaulting to
// any-authenticated for empty or unknown values.
func ParseEditPolicy(s string) EditPolicy {
	switch s {
	case "owner":
		return EditOwnerOnly
	case "admin":
		return EditAdminOnly
	default:
		return EditAnyAuthenticated
	}
}

// adminUserID: the first registered user is the administrator. Structural
// rather than a stored role, so it lives behind IsAdmin and nowhere else.
const adminUserID = 1

func IsAdmin(u *models.User) bool {
	return u != nil && u.ID == adminUserID
}

type Guard struct {
	editPolicy EditPolicy
}

func NewGuard(policy EditPolicy) *Guard {
	return &Guard{editPolicy: policy}
}

// Can reports whether actor may perform action on post. Rules are evaluated
// in order, first match wins; anything unrecognized is denied. actor is nil
// for anonymous requests, post is nil for actions without a target post.
func (g *Guard) Can(actor *models.User, action Action, post *models.Post) bool {
	switch action {
	case ActionCreatePost, ActionCreateComment:
		return actor != nil
	case ActionEditPost:
		if actor == nil {
			return false
		}
		switch g.editPolicy {
		case EditOwnerOnly:
			return post != nil && (post.UserID == actor.ID || IsAdmin(actor))
		case EditAdminOnly:
			return IsAdmin(actor)
		default:
			return true
		}
	case ActionDeletePost:
		return IsAdmin(actor)
	case ActionViewPost, ActionViewComments, ActionViewPostList:
		return true
	default:
		return false
	}
}
