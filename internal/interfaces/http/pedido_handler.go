package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/application/usecase"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// PedidoHandler maneja los pedidos.
type PedidoHandler struct {
	uc *usecase.PedidoUseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *usecase.PedidoUseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         ordenes
// @Produce      json
// @Param        estado  query  string  false  "Estados separados por coma"
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/ordenes [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	var estados []string
	if raw := c.Query("estado"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(e); e != "" {
				estados = append(estados, e)
			}
		}
	}
	out, err := h.uc.List(estados)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Statistics agrupa pedidos por estado con conteo y monto acumulado.
func (h *PedidoHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.Statistics()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByUsuario devuelve los pedidos de un usuario.
func (h *PedidoHandler) ListByUsuario(c *fiber.Ctx) error {
	out, err := h.uc.ListByUsuario(c.Params("userId"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve un pedido si el llamador es su dueño o administrador.
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create registra un pedido con subtotales congelados al precio actual.
// El dueño se resuelve aquí: sin usuarioId en el cuerpo, el pedido es del
// llamador; nombrar a otro usuario exige rol administrador.
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	usuario := in.UsuarioID
	if usuario == "" {
		usuario = GetUserID(c)
	}
	if usuario != GetUserID(c) && GetRole(c) != entity.RolAdministrador {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "no puede crear pedidos a nombre de otro usuario",
		})
	}
	out, err := h.uc.Create(usuario, in.Items, in.MetodoPago)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update aplica un parche parcial sobre el pedido.
func (h *PedidoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetEstado sobrescribe el estado del pedido.
func (h *PedidoHandler) SetEstado(c *fiber.Ctx) error {
	var in dto.SetEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetEstado(c.Params("id"), in.Estado)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete marca el pedido como eliminado. El stock no se restituye.
func (h *PedidoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pedido eliminado correctamente"})
}
