package dto

// CreateClienteRequest body para POST /api/v1/clientes.
type CreateClienteRequest struct {
	Empresa   string `json:"empresa"`
	RUT       string `json:"rut"`
	Direccion string `json:"direccion,omitempty"`
	Giro      string `json:"giro,omitempty"`
}

// UpdateClienteRequest body para PUT /api/v1/clientes/:id (parcial).
type UpdateClienteRequest struct {
	Empresa   *string `json:"empresa,omitempty"`
	RUT       *string `json:"rut,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Giro      *string `json:"giro,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID        int64  `json:"id"`
	Empresa   string `json:"empresa"`
	RUT       string `json:"rut"`
	Direccion string `json:"direccion,omitempty"`
	Giro      string `json:"giro,omitempty"`
	Activo    bool   `json:"activo"`
}

// CreateObraRequest body para POST /api/v1/obras.
type CreateObraRequest struct {
	ClienteID int64  `json:"cliente_id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Comuna    string `json:"comuna,omitempty"`
}

// ObraResponse obra en respuestas.
type ObraResponse struct {
	ID        int64  `json:"id"`
	ClienteID int64  `json:"cliente_id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Comuna    string `json:"comuna,omitempty"`
	Activo    bool   `json:"activo"`
}
