package domain

// Fixed role enumeration. Every principal carries exactly one.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Permission names granted through the role table.
const (
	PermRead           = "read"
	PermCreatePost     = "create_post"
	PermComment        = "comment"
	PermMessage        = "message"
	PermModerate       = "moderate"
	PermBanUser        = "ban_user"
	PermManageChannels = "manage_channels"
	PermSystemAdmin    = "system_admin"
)

// Role pairs a role name with its granted permission set, for listing.
type Role struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// DefaultPermissions returns the role→permission table. Each role's set is a
// superset of the previous one. The table is built once at startup and handed
// to the permission evaluator; it is never mutated afterwards.
func DefaultPermissions() map[string][]string {
	return map[string][]string{
		RoleUser:      {PermRead, PermCreatePost, PermComment, PermMessage},
		RoleModerator: {PermRead, PermCreatePost, PermComment, PermMessage, PermModerate, PermBanUser},
		RoleAdmin:     {PermRead, PermCreatePost, PermComment, PermMessage, PermModerate, PermBanUser, PermManageChannels, PermSystemAdmin},
	}
}

// ValidRole reports whether name is one of the fixed roles.
func ValidRole(name string) bool {
	switch name {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
