package domain

// Action is the closed set of operations a role can be granted.
type Action int

const (
	ActionCreate Action = iota
	ActionView
	ActionUpdate
	ActionDelete
)

// String returns the claim/header spelling of the action.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "CanCreate"
	case ActionView:
		return "CanView"
	case ActionUpdate:
		return "CanUpdate"
	case ActionDelete:
		return "CanDelete"
	default:
		return "unknown"
	}
}

// Verb returns the human spelling used in denial messages.
func (a Action) Verb() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionView:
		return "view"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "access"
	}
}

// Role defines a named bundle of four action permissions.
type Role struct {
	ID          int
	Name        string
	Description string
	CanView     bool
	CanCreate   bool
	CanUpdate   bool
	CanDelete   bool
}

// Allows resolves an action against the role's flags. Anything outside the
// closed enumeration is denied.
func (r Role) Allows(a Action) bool {
	switch a {
	case ActionCreate:
		return r.CanCreate
	case ActionView:
		return r.CanView
	case ActionUpdate:
		return r.CanUpdate
	case ActionDelete:
		return r.CanDelete
	default:
		return false
	}
}

// RoleMenu grants a role operational scope over a menu's resource path.
type RoleMenu struct {
	RoleID int
	MenuID int
}

// RoleWithMenus is a role joined with its accessible menu set.
type RoleWithMenus struct {
	Role
	Menus []Menu
}
