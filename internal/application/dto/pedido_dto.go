package dto

import "time"

// PedidoItemRequest línea de un pedido a crear: producto + cantidad.
type PedidoItemRequest struct {
	Producto string `json:"producto" validate:"required"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
}

// CreatePedidoRequest entrada para crear un pedido. UsuarioID puede venir
// vacío: el handler lo resuelve al usuario autenticado antes de entrar al
// use case.
type CreatePedidoRequest struct {
	UsuarioID  string              `json:"usuarioId"`
	Items      []PedidoItemRequest `json:"items" validate:"required,min=1"`
	MetodoPago string              `json:"metodoPago"`
}

// UpdatePedidoRequest entrada para actualizar un pedido (solo administrador).
type UpdatePedidoRequest struct {
	MetodoPago *string `json:"metodoPago"`
	Estado     *string `json:"estado"`
}

// SetEstadoRequest entrada para cambiar el estado de un pedido.
type SetEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// PedidoDetalleResponse línea de pedido con subtotal congelado y nombre del producto poblado.
type PedidoDetalleResponse struct {
	Producto string  `json:"producto"`
	Nombre   string  `json:"nombre,omitempty"`
	Cantidad int     `json:"cantidad"`
	Subtotal float64 `json:"subtotal"`
}

// PedidoResponse salida de un pedido.
type PedidoResponse struct {
	ID         string                  `json:"id"`
	Usuario    string                  `json:"usuario"`
	MetodoPago string                  `json:"metodoPago"`
	Estado     string                  `json:"estado"`
	Detalles   []PedidoDetalleResponse `json:"detalles"`
	Total      float64                 `json:"total"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// PedidoStatsResponse agregado de pedidos por estado.
type PedidoStatsResponse struct {
	Estado       string  `json:"estado"`
	TotalPedidos int     `json:"totalPedidos"`
	MontoTotal   float64 `json:"montoTotal"`
}
