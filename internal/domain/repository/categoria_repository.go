package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// CategoriaStats conteo de productos vivos por categoría.
type CategoriaStats struct {
	ID             primitive.ObjectID `bson:"_id"`
	Nombre         string             `bson:"nombre"`
	TotalProductos int                `bson:"totalProductos"`
}

// CategoriaRepository define el puerto de persistencia para Categoria (DIP).
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByID(id primitive.ObjectID) (*entity.Categoria, error)
	List() ([]*entity.Categoria, error) // orden alfabético por nombre
	Update(categoria *entity.Categoria) error
	Delete(id primitive.ObjectID) (bool, error) // marca eliminado
	// Statistics agrupa productos vivos por categoría, orden: total desc, nombre asc.
	Statistics() ([]CategoriaStats, error)
}
