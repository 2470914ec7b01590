package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema (administrador o vendedor de mostrador).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendedor
}
