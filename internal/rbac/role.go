// Package rbac implements the project-level role model and the
// authorization guard that gates project-scoped operations.
package rbac

import "errors"

// Role is a project membership role. The hierarchy is a total order:
// OWNER > EDITOR > VIEWER.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

var ErrInvalidRole = errors.New("invalid role")

// Level returns the hierarchy level of the role. Unknown roles map to 0,
// which never satisfies any requirement.
func (r Role) Level() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	}
	return 0
}

func (r Role) String() string {
	return string(r)
}

// ParseRole validates a role string received from an external caller.
// Roles are stored and compared verbatim, so arbitrary strings must be
// rejected here rather than coerced.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleEditor, RoleViewer:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// MinLevel returns the lowest hierarchy level among the given roles.
// Declaring {EDITOR, OWNER} therefore requires only EDITOR-level access:
// a required-role set expresses "at least this role", not "exactly one of
// these roles".
func MinLevel(roles []Role) int {
	min := 0
	for i, r := range roles {
		if lvl := r.Level(); i == 0 || lvl < min {
			min = lvl
		}
	}
	return min
}
