package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// CarritoTotalesDetalle línea del desglose de totales (precio vivo, no congelado).
type CarritoTotalesDetalle struct {
	Producto string  `bson:"producto"` // nombre
	Cantidad int     `bson:"cantidad"`
	Subtotal float64 `bson:"subtotal"`
}

// CarritoTotales total del carrito con desglose por línea.
type CarritoTotales struct {
	Total    float64                 `bson:"total"`
	Detalles []CarritoTotalesDetalle `bson:"detalles"`
}

// CarritoRepository define el puerto de persistencia para Carrito (DIP).
// Todas las operaciones trabajan sobre el carrito vivo (eliminado=false) del
// usuario; las mutaciones de líneas usan operadores posicionales para que la
// atomicidad por documento del store evite líneas duplicadas.
type CarritoRepository interface {
	Create(carrito *entity.Carrito) error
	GetByUsuario(usuario primitive.ObjectID) (*entity.Carrito, error) // nil si no hay carrito vivo

	// IncItemCantidad suma qty a la línea existente del producto.
	// Devuelve false si la línea no existe.
	IncItemCantidad(carritoID, producto primitive.ObjectID, qty int) (bool, error)
	// SetItemCantidad fija la cantidad de la línea existente del producto.
	// Devuelve false si la línea no existe.
	SetItemCantidad(carritoID, producto primitive.ObjectID, qty int) (bool, error)
	PushItem(carritoID primitive.ObjectID, item entity.CarritoItem) error
	// PullItem quita la línea del producto; no distingue si existía.
	PullItem(carritoID, producto primitive.ObjectID) error

	// Clear vacía las líneas del carrito vivo del usuario.
	// Devuelve false si el usuario no tiene carrito vivo.
	Clear(usuario primitive.ObjectID) (bool, error)

	// Totales calcula total y desglose uniendo cada línea con el precio
	// actual del producto. Devuelve nil (sin error) si el carrito no existe
	// o no tiene líneas; distinguir ambos casos es responsabilidad del caller.
	Totales(usuario primitive.ObjectID) (*CarritoTotales, error)
}
