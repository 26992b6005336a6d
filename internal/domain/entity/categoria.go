package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categoria representa una categoría de productos.
type Categoria struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Nombre      string             `bson:"nombre"`
	Descripcion string             `bson:"descripcion"`
	Eliminado   bool               `bson:"eliminado"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}
