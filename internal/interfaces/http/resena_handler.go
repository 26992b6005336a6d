package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/application/usecase"
)

// ResenaHandler maneja las reseñas de productos.
type ResenaHandler struct {
	uc *usecase.ResenaUseCase
}

// NewResenaHandler construye el handler.
func NewResenaHandler(uc *usecase.ResenaUseCase) *ResenaHandler {
	return &ResenaHandler{uc: uc}
}

// List devuelve todas las reseñas vivas.
func (h *ResenaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Top devuelve los productos mejor calificados.
func (h *ResenaHandler) Top(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", usecase.DefaultTopResenas)
	out, err := h.uc.Top(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProducto devuelve las reseñas de un producto.
func (h *ResenaHandler) ListByProducto(c *fiber.Ctx) error {
	out, err := h.uc.ListByProducto(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve una reseña por su id.
func (h *ResenaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create registra una reseña. Solo compradores del producto pueden opinar.
func (h *ResenaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResenaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update modifica una reseña propia.
func (h *ResenaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateResenaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una reseña propia, o cualquiera si es administrador.
func (h *ResenaHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.uc.Delete(c.Params("id"), GetUserID(c), GetRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reseña eliminada correctamente"})
}
