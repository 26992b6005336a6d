package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// ResenaAgregado promedio y conteo de reseñas vivas de un producto.
type ResenaAgregado struct {
	Promedio float64 `bson:"promedio"`
	Total    int     `bson:"total"`
}

// TopResena entrada del ranking de productos mejor reseñados.
type TopResena struct {
	Producto             primitive.ObjectID `bson:"_id"`
	NombreProducto       string             `bson:"producto"`
	PromedioCalificacion float64            `bson:"promedioCalificacion"`
	TotalResenas         int                `bson:"totalResenas"`
}

// ResenaRepository define el puerto de persistencia para Resena (DIP).
// Las lecturas excluyen siempre los documentos con eliminado=true.
type ResenaRepository interface {
	Create(resena *entity.Resena) error
	GetByID(id primitive.ObjectID) (*entity.Resena, error)
	List() ([]*entity.Resena, error)
	ListByProducto(producto primitive.ObjectID) ([]*entity.Resena, error)
	Update(resena *entity.Resena) error
	Delete(id primitive.ObjectID) (bool, error) // marca eliminado

	// Agregado calcula promedio y total de reseñas vivas del producto.
	// Devuelve {0, 0} cuando no hay ninguna.
	Agregado(producto primitive.ObjectID) (ResenaAgregado, error)
	// Top agrupa reseñas vivas por producto: promedio desc, total desc,
	// promedio redondeado a 2 decimales, con el nombre del producto unido.
	Top(limit int) ([]TopResena, error)
}
