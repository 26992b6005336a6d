package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

var _ repository.CarritoRepository = (*CarritoRepo)(nil)

// CarritoRepo implementación del puerto CarritoRepository sobre MongoDB.
// Las mutaciones de líneas usan el operador posicional $ sobre el documento
// del carrito: la atomicidad por documento garantiza que un producto nunca
// termina con dos líneas.
type CarritoRepo struct {
	col *mongo.Collection
}

// NewCarritoRepository construye el adaptador de persistencia para carritos.
func NewCarritoRepository(db *mongo.Database) *CarritoRepo {
	return &CarritoRepo{col: db.Collection(ColCarritos)}
}

// Create persiste un carrito nuevo. El índice único parcial sobre
// (usuario, eliminado=false) responde ErrDuplicate si el usuario ya tiene
// carrito vivo, de modo que la carrera de doble creación queda cerrada.
func (r *CarritoRepo) Create(carrito *entity.Carrito) error {
	_, err := r.col.InsertOne(context.Background(), carrito)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert carrito: %w", err)
	}
	return nil
}

// GetByUsuario obtiene el carrito vivo del usuario, nil si no existe.
func (r *CarritoRepo) GetByUsuario(usuario primitive.ObjectID) (*entity.Carrito, error) {
	filter := filtroVivo()
	filter["usuario"] = usuario
	var c entity.Carrito
	err := r.col.FindOne(context.Background(), filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carrito: %w", err)
	}
	return &c, nil
}

// IncItemCantidad suma qty a la línea existente del producto.
func (r *CarritoRepo) IncItemCantidad(carritoID, producto primitive.ObjectID, qty int) (bool, error) {
	res, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": carritoID, "items.producto": producto},
		bson.M{"$inc": bson.M{"items.$.cantidad": qty}},
	)
	if err != nil {
		return false, fmt.Errorf("incrementar linea: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// SetItemCantidad fija la cantidad de la línea existente del producto.
func (r *CarritoRepo) SetItemCantidad(carritoID, producto primitive.ObjectID, qty int) (bool, error) {
	res, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": carritoID, "items.producto": producto},
		bson.M{"$set": bson.M{"items.$.cantidad": qty}},
	)
	if err != nil {
		return false, fmt.Errorf("fijar linea: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// PushItem agrega una línea nueva al carrito.
func (r *CarritoRepo) PushItem(carritoID primitive.ObjectID, item entity.CarritoItem) error {
	_, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": carritoID},
		bson.M{"$push": bson.M{"items": item}},
	)
	if err != nil {
		return fmt.Errorf("push item: %w", err)
	}
	return nil
}

// PullItem quita la línea del producto del carrito.
func (r *CarritoRepo) PullItem(carritoID, producto primitive.ObjectID) error {
	_, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": carritoID},
		bson.M{"$pull": bson.M{"items": bson.M{"producto": producto}}},
	)
	if err != nil {
		return fmt.Errorf("pull item: %w", err)
	}
	return nil
}

// Clear vacía las líneas del carrito vivo del usuario.
func (r *CarritoRepo) Clear(usuario primitive.ObjectID) (bool, error) {
	filter := filtroVivo()
	filter["usuario"] = usuario
	res, err := r.col.UpdateOne(context.Background(), filter,
		bson.M{"$set": bson.M{"items": bson.A{}}},
	)
	if err != nil {
		return false, fmt.Errorf("vaciar carrito: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Totales une cada línea con el precio vivo del producto y agrupa total y
// desglose. Un carrito sin líneas no emite filas: devuelve nil sin error.
func (r *CarritoRepo) Totales(usuario primitive.ObjectID) (*repository.CarritoTotales, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"usuario": usuario, "eliminado": false}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         ColProductos,
			"localField":   "items.producto",
			"foreignField": "_id",
			"as":           "producto",
		}}},
		bson.D{{Key: "$unwind", Value: "$producto"}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"subtotal": bson.M{"$multiply": bson.A{"$items.cantidad", "$producto.precio"}},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$_id",
			"total": bson.M{"$sum": "$subtotal"},
			"detalles": bson.M{"$push": bson.M{
				"producto": "$producto.nombre",
				"cantidad": "$items.cantidad",
				"subtotal": "$subtotal",
			}},
		}}},
	}
	cursor, err := r.col.Aggregate(context.Background(), pipeline)
	if err != nil {
		return nil, fmt.Errorf("totales carrito: %w", err)
	}
	var rows []repository.CarritoTotales
	if err := cursor.All(context.Background(), &rows); err != nil {
		return nil, fmt.Errorf("decode totales: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
