package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación del puerto CategoriaRepository sobre MongoDB.
type CategoriaRepo struct {
	col *mongo.Collection
}

// NewCategoriaRepository construye el adaptador de persistencia para categorías.
func NewCategoriaRepository(db *mongo.Database) *CategoriaRepo {
	return &CategoriaRepo{col: db.Collection(ColCategorias)}
}

// Create persiste una nueva categoría.
func (r *CategoriaRepo) Create(categoria *entity.Categoria) error {
	if _, err := r.col.InsertOne(context.Background(), categoria); err != nil {
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría viva por ID.
func (r *CategoriaRepo) GetByID(id primitive.ObjectID) (*entity.Categoria, error) {
	filter := filtroVivo()
	filter["_id"] = id
	var c entity.Categoria
	err := r.col.FindOne(context.Background(), filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// List lista las categorías vivas en orden alfabético.
func (r *CategoriaRepo) List() ([]*entity.Categoria, error) {
	opts := options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}})
	cursor, err := r.col.Find(context.Background(), filtroVivo(), opts)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	var list []*entity.Categoria
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode categorias: %w", err)
	}
	return list, nil
}

// Update reescribe los campos editables de la categoría.
func (r *CategoriaRepo) Update(categoria *entity.Categoria) error {
	filter := filtroVivo()
	filter["_id"] = categoria.ID
	update := bson.M{"$set": bson.M{
		"nombre":      categoria.Nombre,
		"descripcion": categoria.Descripcion,
		"updatedAt":   categoria.UpdatedAt,
	}}
	if _, err := r.col.UpdateOne(context.Background(), filter, update); err != nil {
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// Delete marca la categoría como eliminada.
func (r *CategoriaRepo) Delete(id primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"eliminado": true}},
	)
	if err != nil {
		return false, fmt.Errorf("delete categoria: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Statistics cuenta productos vivos por categoría con un $lookup con
// sub-pipeline, orden: total descendente, nombre ascendente.
func (r *CategoriaRepo) Statistics() ([]repository.CategoriaStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"eliminado": false}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": ColProductos,
			"let":  bson.M{"categoriaId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr": bson.M{"$and": bson.A{
						bson.M{"$eq": bson.A{"$categoria", "$$categoriaId"}},
						bson.M{"$eq": bson.A{"$eliminado", false}},
					}},
				}},
				bson.M{"$count": "total"},
			},
			"as": "productos",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"totalProductos": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$productos.total", 0}}, 0,
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"productos": 0}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "totalProductos", Value: -1},
			{Key: "nombre", Value: 1},
		}}},
	}
	cursor, err := r.col.Aggregate(context.Background(), pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats categorias: %w", err)
	}
	var stats []repository.CategoriaStats
	if err := cursor.All(context.Background(), &stats); err != nil {
		return nil, fmt.Errorf("decode stats categorias: %w", err)
	}
	return stats, nil
}
