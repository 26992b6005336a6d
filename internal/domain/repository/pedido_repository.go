package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// PedidoStats agregado de pedidos vivos por estado.
type PedidoStats struct {
	Estado       string  `bson:"_id"`
	TotalPedidos int     `bson:"totalPedidos"`
	MontoTotal   float64 `bson:"montoTotal"`
}

// PedidoRepository define el puerto de persistencia para Pedido (DIP).
// Las lecturas excluyen siempre los documentos con eliminado=true.
type PedidoRepository interface {
	Create(pedido *entity.Pedido) error
	GetByID(id primitive.ObjectID) (*entity.Pedido, error)
	// List filtra opcionalmente por un conjunto de estados aceptados (OR).
	List(estados []string) ([]*entity.Pedido, error)
	ListByUsuario(usuario primitive.ObjectID) ([]*entity.Pedido, error)
	Update(pedido *entity.Pedido) error
	SetEstado(id primitive.ObjectID, estado string) (bool, error)
	Delete(id primitive.ObjectID) (bool, error) // marca eliminado; no repone stock

	// Statistics agrupa pedidos vivos por estado, orden: total de pedidos desc.
	Statistics() ([]PedidoStats, error)

	// HasCompra indica si el usuario tiene un pedido vivo con alguna línea
	// del producto (regla de compra previa para reseñas).
	HasCompra(usuario, producto primitive.ObjectID) (bool, error)
}
