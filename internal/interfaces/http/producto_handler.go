package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/application/usecase"
)

// ProductoHandler maneja el catálogo de productos.
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Filter godoc
// @Summary      Filtrar productos
// @Tags         productos
// @Produce      json
// @Param        categoria  query  string   false  "Id de categoría"
// @Param        precioMin  query  number   false  "Precio mínimo"
// @Param        precioMax  query  number   false  "Precio máximo"
// @Param        conStock   query  boolean  false  "Solo con stock"
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos/filter [get]
func (h *ProductoHandler) Filter(c *fiber.Ctx) error {
	var in dto.FilterProductoRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "parámetros de consulta inválidos",
		})
	}
	out, err := h.uc.Filter(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Top godoc
// @Summary      Productos mejor calificados
// @Tags         productos
// @Produce      json
// @Param        limit  query  int  false  "Cantidad máxima"
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos/top [get]
func (h *ProductoHandler) Top(c *fiber.Ctx) error {
	out, err := h.uc.Top(c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         productos
// @Produce      json
// @Param        id  path  string  true  "Id del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateProductoRequest  true  "Datos del producto"
// @Success      201  {object}  dto.ProductoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update aplica un parche parcial sobre el producto.
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStock fija el stock en un valor absoluto.
func (h *ProductoHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStock(c.Params("id"), in.Stock)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete marca el producto como eliminado.
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto eliminado correctamente"})
}
