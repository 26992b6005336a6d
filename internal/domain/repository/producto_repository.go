package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// ProductoFilter criterios opcionales para filtrar el catálogo.
type ProductoFilter struct {
	Categoria *primitive.ObjectID
	PrecioMin *float64
	PrecioMax *float64
	ConStock  bool // solo productos con stock > 0
}

// ProductoRepository define el puerto de persistencia para Producto (DIP).
// Las lecturas excluyen siempre los documentos con eliminado=true.
//
// El stock y los agregados de calificación son campos compartidos: los
// mutan pedidos y reseñas a la vez, por eso las operaciones son updates de
// campo ($inc/$set) y no reescrituras del documento completo.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id primitive.ObjectID) (*entity.Producto, error)
	GetManyByIDs(ids []primitive.ObjectID) ([]*entity.Producto, error)
	List() ([]*entity.Producto, error)
	Filter(f ProductoFilter) ([]*entity.Producto, error)
	Top(limit int) ([]*entity.Producto, error) // mejor calificados primero
	Update(producto *entity.Producto) error
	SetStock(id primitive.ObjectID, stock int) (bool, error)

	// DecrementStock decrementa stock en qty solo si stock >= qty (update
	// condicional atómico a nivel de documento). Devuelve false cuando el
	// filtro no casó: producto ausente, eliminado o sin stock suficiente.
	DecrementStock(id primitive.ObjectID, qty int) (bool, error)
	// IncrementStock repone stock (paso de compensación de pedidos).
	IncrementStock(id primitive.ObjectID, qty int) error

	PushResena(productoID, resenaID primitive.ObjectID) error
	PullResena(productoID, resenaID primitive.ObjectID) error
	// SetCalificacion escribe ambos campos desnormalizados del agregado.
	SetCalificacion(productoID primitive.ObjectID, promedio float64, total int) error

	Delete(id primitive.ObjectID) (bool, error) // marca eliminado
}
