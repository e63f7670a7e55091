package user

// Role names seeded at bootstrap. Tokens carry these as role claims.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User is the authenticated principal attached to a request context. It is
// built entirely from validated token claims, so authorization checks never
// touch the database.
type User struct {
	ID       string
	Username string
	Roles    []string
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) HasAnyRole(roles []string) bool {
	for _, required := range roles {
		if u.HasRole(required) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
