package model

import "time"

// Roles stored in the users.rol column.
const (
	RoleUser  = "usuario"
	RoleAdmin = "admin"
)

// User mirrors the 'users' table, including the login-lockout counters and
// the optional password-reset token.
type User struct {
	ID                uint64
	Nombre            string
	Correo            string
	Contrasena        string // bcrypt hash
	Rol               string
	IntentosFallidos  int
	CuentaBloqueada   *time.Time // unlock deadline; nil when not locked
	ResetToken        *string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
}
