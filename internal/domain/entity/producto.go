package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Producto representa un producto del catálogo.
// PromedioCalificacion y TotalResenas son agregados desnormalizados: el
// agregador de reseñas los recalcula tras cada mutación de reseñas, no se
// derivan en lectura.
type Producto struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty"`
	Nombre               string               `bson:"nombre"`
	Descripcion          string               `bson:"descripcion"`
	Precio               float64              `bson:"precio"` // >= 0
	Stock                int                  `bson:"stock"`  // >= 0; solo lo decrementa la creación de pedidos
	Categoria            primitive.ObjectID   `bson:"categoria,omitempty"`
	Resenas              []primitive.ObjectID `bson:"resenas,omitempty"`
	PromedioCalificacion float64              `bson:"promedioCalificacion"`
	TotalResenas         int                  `bson:"totalResenas"`
	Eliminado            bool                 `bson:"eliminado"`
	CreatedAt            time.Time            `bson:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt"`
}
