package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInvalidState        = errors.New("operación no permitida en el estado actual")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrInvalidRelationship = errors.New("la obra no pertenece al cliente especificado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)
