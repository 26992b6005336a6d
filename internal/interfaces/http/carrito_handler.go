package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/application/usecase"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// CarritoHandler maneja el carrito de compras.
type CarritoHandler struct {
	uc *usecase.CarritoUseCase
}

// NewCarritoHandler construye el handler.
func NewCarritoHandler(uc *usecase.CarritoUseCase) *CarritoHandler {
	return &CarritoHandler{uc: uc}
}

// GetOrCreate devuelve el carrito del usuario, creándolo vacío si no existe.
// El dueño se resuelve aquí: el cuerpo puede nombrar a otro usuario solo si
// el llamador es administrador; vacío significa el propio llamador.
func (h *CarritoHandler) GetOrCreate(c *fiber.Ctx) error {
	var in dto.CreateCarritoRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return badBody(c)
	}
	usuario := in.Usuario
	if usuario == "" {
		usuario = GetUserID(c)
	}
	if usuario != GetUserID(c) && GetRole(c) != entity.RolAdministrador {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "no puede operar sobre el carrito de otro usuario",
		})
	}
	out, err := h.uc.GetOrCreate(usuario)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByUsuario devuelve el carrito de un usuario sin crearlo.
func (h *CarritoHandler) GetByUsuario(c *fiber.Ctx) error {
	out, err := h.uc.GetByUsuario(c.Params("usuarioId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Totales calcula el total del carrito a precios vivos.
func (h *CarritoHandler) Totales(c *fiber.Ctx) error {
	out, err := h.uc.Totales(c.Params("usuarioId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem agrega un producto al carrito o acumula sobre la línea existente.
func (h *CarritoHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.Params("usuarioId"), in.ProductoID, in.Cantidad)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetItemCantidad reemplaza la cantidad de una línea existente.
func (h *CarritoHandler) SetItemCantidad(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetItemCantidad(c.Params("usuarioId"), in.ProductoID, in.Cantidad)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem quita una línea del carrito.
func (h *CarritoHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Params("usuarioId"), c.Params("productoId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear vacía el carrito conservando el documento.
func (h *CarritoHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.Params("usuarioId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
