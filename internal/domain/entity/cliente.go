package entity

import "time"

// Cliente es una empresa arrendataria, identificada por su RUT.
type Cliente struct {
	ID            int64
	Empresa       string
	RUT           string // formateado (12.345.678-5), validado al crear/actualizar
	Direccion     string
	Giro          string
	Activo        bool
	ResponsableID *int64 // usuario responsable de la cuenta
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Obra es una faena o sitio de trabajo que pertenece a un cliente.
type Obra struct {
	ID        int64
	ClienteID int64
	Nombre    string
	Direccion string
	Comuna    string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
