package domain

const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type User struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Skills []string `json:"skills,omitempty"`
	Bio    string   `json:"bio,omitempty"`
	Avatar string   `json:"avatar,omitempty"`
}

// HomeRoute is where the UI shell lands a user after login.
func HomeRoute(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleProvider:
		return "/provider"
	case RoleUser:
		return "/dashboard"
	}
	return "/"
}
