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

var _ repository.ResenaRepository = (*ResenaRepo)(nil)

// ResenaRepo implementación del puerto ResenaRepository sobre MongoDB.
type ResenaRepo struct {
	col *mongo.Collection
}

// NewResenaRepository construye el adaptador de persistencia para reseñas.
func NewResenaRepository(db *mongo.Database) *ResenaRepo {
	return &ResenaRepo{col: db.Collection(ColResenas)}
}

// Create persiste una reseña nueva.
func (r *ResenaRepo) Create(resena *entity.Resena) error {
	if _, err := r.col.InsertOne(context.Background(), resena); err != nil {
		return fmt.Errorf("insert resena: %w", err)
	}
	return nil
}

// GetByID obtiene una reseña viva por ID.
func (r *ResenaRepo) GetByID(id primitive.ObjectID) (*entity.Resena, error) {
	filter := filtroVivo()
	filter["_id"] = id
	var res entity.Resena
	err := r.col.FindOne(context.Background(), filter).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resena: %w", err)
	}
	return &res, nil
}

// List lista las reseñas vivas, más recientes primero.
func (r *ResenaRepo) List() ([]*entity.Resena, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(context.Background(), filtroVivo(), opts)
	if err != nil {
		return nil, fmt.Errorf("list resenas: %w", err)
	}
	var list []*entity.Resena
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode resenas: %w", err)
	}
	return list, nil
}

// ListByProducto lista las reseñas vivas de un producto, más recientes primero.
func (r *ResenaRepo) ListByProducto(producto primitive.ObjectID) ([]*entity.Resena, error) {
	filter := filtroVivo()
	filter["producto"] = producto
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(context.Background(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list resenas producto: %w", err)
	}
	var list []*entity.Resena
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode resenas: %w", err)
	}
	return list, nil
}

// Update reescribe los campos editables de la reseña.
func (r *ResenaRepo) Update(resena *entity.Resena) error {
	filter := filtroVivo()
	filter["_id"] = resena.ID
	update := bson.M{"$set": bson.M{
		"puntuacion": resena.Puntuacion,
		"comentario": resena.Comentario,
		"updatedAt":  resena.UpdatedAt,
	}}
	if _, err := r.col.UpdateOne(context.Background(), filter, update); err != nil {
		return fmt.Errorf("update resena: %w", err)
	}
	return nil
}

// Delete marca la reseña como eliminada.
func (r *ResenaRepo) Delete(id primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"eliminado": true}},
	)
	if err != nil {
		return false, fmt.Errorf("delete resena: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Agregado calcula promedio y total de reseñas vivas del producto; {0, 0}
// cuando no queda ninguna.
func (r *ResenaRepo) Agregado(producto primitive.ObjectID) (repository.ResenaAgregado, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"producto": producto, "eliminado": false}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$producto",
			"promedio": bson.M{"$avg": "$puntuacion"},
			"total":    bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.col.Aggregate(context.Background(), pipeline)
	if err != nil {
		return repository.ResenaAgregado{}, fmt.Errorf("agregado resenas: %w", err)
	}
	var rows []repository.ResenaAgregado
	if err := cursor.All(context.Background(), &rows); err != nil {
		return repository.ResenaAgregado{}, fmt.Errorf("decode agregado: %w", err)
	}
	if len(rows) == 0 {
		return repository.ResenaAgregado{}, nil
	}
	return rows[0], nil
}

// Top agrupa reseñas vivas por producto: promedio desc, total desc, límite,
// nombre del producto unido y promedio redondeado a 2 decimales.
func (r *ResenaRepo) Top(limit int) ([]repository.TopResena, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"eliminado": false}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":                  "$producto",
			"promedioCalificacion": bson.M{"$avg": "$puntuacion"},
			"totalResenas":         bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "promedioCalificacion", Value: -1},
			{Key: "totalResenas", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         ColProductos,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "producto",
		}}},
		bson.D{{Key: "$unwind", Value: "$producto"}},
		bson.D{{Key: "$project", Value: bson.M{
			"producto":             "$producto.nombre",
			"promedioCalificacion": bson.M{"$round": bson.A{"$promedioCalificacion", 2}},
			"totalResenas":         1,
		}}},
	}
	cursor, err := r.col.Aggregate(context.Background(), pipeline)
	if err != nil {
		return nil, fmt.Errorf("top resenas: %w", err)
	}
	var top []repository.TopResena
	if err := cursor.All(context.Background(), &top); err != nil {
		return nil, fmt.Errorf("decode top resenas: %w", err)
	}
	return top, nil
}
