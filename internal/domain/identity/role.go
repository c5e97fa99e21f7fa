package identity

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Numeric role codes as sent by the upstream API (`rol_id`). Legacy web
// clients disagreed on whether code 2 meant manager or admin; the upstream
// verify-token payload uses 1=user, 2=manager, 3=admin and that is the only
// mapping decoded here. Do not compare raw codes anywhere else.
const (
	WireRoleUser    = 1
	WireRoleManager = 2
	WireRoleAdmin   = 3
)

// RoleFromWire decodes an upstream rol_id. Unknown codes degrade to the
// ordinary user role rather than failing, so a drifted upstream can never
// grant elevated rights by accident.
func RoleFromWire(code int) Role {
	switch code {
	case WireRoleManager:
		return RoleManager
	case WireRoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

func (r Role) Elevated() bool {
	return r == RoleManager || r == RoleAdmin
}
