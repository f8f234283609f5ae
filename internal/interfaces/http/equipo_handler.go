package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/application/usecase"
)

// EquipoHandler maneja las peticiones HTTP para el catálogo de equipos (protegido).
type EquipoHandler struct {
	uc *usecase.EquipoUseCase
}

// NewEquipoHandler construye el handler.
func NewEquipoHandler(uc *usecase.EquipoUseCase) *EquipoHandler {
	return &EquipoHandler{uc: uc}
}

// Create crea un equipo en el catálogo.
func (h *EquipoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Codigo == "" || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo y nombre son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un equipo por ID.
func (h *EquipoHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List lista equipos con búsqueda y paginación.
func (h *EquipoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	items, total, err := h.uc.List(c.Query("search"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	page.DefaultPage()
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// ActualizarTarifa cambia la tarifa vigente de un equipo del catálogo.
func (h *EquipoHandler) ActualizarTarifa(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in struct {
		TarifaUF decimal.Decimal `json:"tarifa_uf"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ActualizarTarifa(int64(id), in.TarifaUF)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
