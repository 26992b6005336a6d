package dto

import "time"

// CreateCarritoRequest entrada para obtener o crear un carrito. Si el
// usuario viene vacío, el handler lo resuelve con el llamador autenticado.
type CreateCarritoRequest struct {
	Usuario string `json:"usuario"`
}

// AddItemRequest entrada para agregar un producto al carrito.
type AddItemRequest struct {
	ProductoID string `json:"productoId" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required,gt=0"`
}

// UpdateItemRequest entrada para fijar la cantidad de una línea del carrito.
type UpdateItemRequest struct {
	ProductoID string `json:"productoId" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required,gt=0"`
}

// CarritoProductoRef datos del producto poblados en una línea del carrito.
type CarritoProductoRef struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Precio float64 `json:"precio"`
	Stock  int     `json:"stock"`
}

// CarritoItemResponse línea del carrito con el producto poblado.
type CarritoItemResponse struct {
	Producto CarritoProductoRef `json:"producto"`
	Cantidad int                `json:"cantidad"`
}

// CarritoResponse salida del carrito.
type CarritoResponse struct {
	ID        string                `json:"id"`
	Usuario   string                `json:"usuario"`
	Items     []CarritoItemResponse `json:"items"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// TotalesDetalleResponse línea del desglose de totales del carrito.
type TotalesDetalleResponse struct {
	Producto string  `json:"producto"` // nombre
	Cantidad int     `json:"cantidad"`
	Subtotal float64 `json:"subtotal"`
}

// TotalesResponse total del carrito a precios vivos (no hay pedido todavía,
// no existe precio congelado que aplicar).
type TotalesResponse struct {
	Total    float64                  `json:"total"`
	Detalles []TotalesDetalleResponse `json:"detalles"`
}
