package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados conocidos de un Pedido. El estado inicial es siempre pendiente;
// las transiciones posteriores no están restringidas: cualquier valor emitido
// por un administrador sobrescribe el campo.
const (
	EstadoPendiente  = "pendiente"
	EstadoProcesando = "procesando"
	EstadoEnviado    = "enviado"
	EstadoEntregado  = "entregado"
	EstadoCancelado  = "cancelado"
)

// PedidoDetalle línea de pedido con precio congelado al momento de la compra:
// Subtotal = Cantidad × precio unitario del producto en ese instante y no se
// recalcula aunque el precio cambie después.
type PedidoDetalle struct {
	Producto primitive.ObjectID `bson:"producto"`
	Cantidad int                `bson:"cantidad"`
	Subtotal float64            `bson:"subtotal"`
}

// Pedido representa una orden de compra.
// Total es la suma de los subtotales de Detalles capturada en la creación.
type Pedido struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Usuario    primitive.ObjectID `bson:"usuario"`
	MetodoPago string             `bson:"metodoPago"`
	Estado     string             `bson:"estado"`
	Detalles   []PedidoDetalle    `bson:"detalles"`
	Total      float64            `bson:"total"`
	Eliminado  bool               `bson:"eliminado"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}
