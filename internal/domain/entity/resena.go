package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rango permitido de puntuación de una reseña.
const (
	PuntuacionMin = 1
	PuntuacionMax = 5
)

// Resena representa la reseña de un producto hecha por un usuario.
// Solo puede crearse si el autor tiene un pedido vivo que contenga el
// producto (regla de compra previa).
type Resena struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Usuario    primitive.ObjectID `bson:"usuario"`
	Producto   primitive.ObjectID `bson:"producto"`
	Puntuacion float64            `bson:"puntuacion"` // 1-5
	Comentario string             `bson:"comentario"`
	Eliminado  bool               `bson:"eliminado"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}
