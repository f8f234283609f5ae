package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/rentalsur/edp-api/internal/application/dto"
	"github.com/rentalsur/edp-api/internal/application/usecase"
)

// TipoServicioHandler maneja el catálogo de tipos de servicio (protegido).
type TipoServicioHandler struct {
	uc *usecase.TipoServicioUseCase
}

// NewTipoServicioHandler construye el handler.
func NewTipoServicioHandler(uc *usecase.TipoServicioUseCase) *TipoServicioHandler {
	return &TipoServicioHandler{uc: uc}
}

// Create crea un tipo de servicio.
func (h *TipoServicioHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Nombre         string          `json:"nombre"`
		PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.uc.Create(in.Nombre, in.PrecioUnitario)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista los tipos de servicio.
func (h *TipoServicioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
