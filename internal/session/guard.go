// AngelaMos | 2026
// guard.go

package session

const (
	UserLoginPath  = "/login"
	AdminLoginPath = "/admin/login"
)

// Require decides whether p may enter the given privilege domain. When
// it may not, the second result is the login page to send it to. This
// is a pure lookup on session state.
func Require(p Principal, role Role) (bool, string) {
	switch role {
	case RoleAdmin:
		return p.Role() == RoleAdmin, AdminLoginPath
	case RoleUser:
		return p.Role() == RoleUser, UserLoginPath
	default:
		return true, ""
	}
}
