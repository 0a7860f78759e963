package models

// Role is the authorization level carried in a session token.
type Role string

// RolePrivileged is the only non-anonymous role: the administrative account
// allowed to mutate camera records.
const RolePrivileged Role = "god"

type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
