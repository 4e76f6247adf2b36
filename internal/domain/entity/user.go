package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
)

// Estados de cuenta. Una cuenta inactiva no puede iniciar sesión.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un empleado con acceso al panel administrativo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, empleado
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active indica si la cuenta puede iniciar sesión.
func (u *User) Active() bool { return u.Status == UserStatusActive }
