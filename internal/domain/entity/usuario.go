package entity

import "time"

// Roles del sistema.
const (
	RolAdmin      = "Admin"
	RolSupervisor = "Supervisor"
	RolOperador   = "Operador"
)

// Usuario de la aplicación. PasswordHash es bcrypt; nunca se expone en DTOs.
type Usuario struct {
	ID           int64
	Nombre       string
	Email        string
	PasswordHash string
	Rol          string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
