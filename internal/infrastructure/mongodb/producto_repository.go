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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre MongoDB.
// Stock y calificación se mutan con operadores de campo ($inc/$set/$push/$pull)
// apoyándose en la atomicidad por documento del store: este repo nunca asume
// propiedad exclusiva del documento de producto.
type ProductoRepo struct {
	col *mongo.Collection
}

// NewProductoRepository construye el adaptador de persistencia para productos.
func NewProductoRepository(db *mongo.Database) *ProductoRepo {
	return &ProductoRepo{col: db.Collection(ColProductos)}
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	if _, err := r.col.InsertOne(context.Background(), producto); err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto vivo por ID.
func (r *ProductoRepo) GetByID(id primitive.ObjectID) (*entity.Producto, error) {
	filter := filtroVivo()
	filter["_id"] = id
	var p entity.Producto
	err := r.col.FindOne(context.Background(), filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// GetManyByIDs obtiene los productos vivos del conjunto de IDs; los ausentes
// o eliminados simplemente no aparecen en el resultado.
func (r *ProductoRepo) GetManyByIDs(ids []primitive.ObjectID) ([]*entity.Producto, error) {
	filter := filtroVivo()
	filter["_id"] = bson.M{"$in": ids}
	cursor, err := r.col.Find(context.Background(), filter)
	if err != nil {
		return nil, fmt.Errorf("get productos: %w", err)
	}
	var list []*entity.Producto
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode productos: %w", err)
	}
	return list, nil
}

// List lista los productos vivos, más recientes primero.
func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(context.Background(), filtroVivo(), opts)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	var list []*entity.Producto
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode productos: %w", err)
	}
	return list, nil
}

// Filter filtra productos vivos por categoría, rango de precio y stock.
func (r *ProductoRepo) Filter(f repository.ProductoFilter) ([]*entity.Producto, error) {
	filter := filtroVivo()
	if f.Categoria != nil {
		filter["categoria"] = *f.Categoria
	}
	precio := bson.M{}
	if f.PrecioMin != nil {
		precio["$gte"] = *f.PrecioMin
	}
	if f.PrecioMax != nil {
		precio["$lte"] = *f.PrecioMax
	}
	if len(precio) > 0 {
		filter["precio"] = precio
	}
	if f.ConStock {
		filter["stock"] = bson.M{"$gt": 0}
	}
	cursor, err := r.col.Find(context.Background(), filter)
	if err != nil {
		return nil, fmt.Errorf("filter productos: %w", err)
	}
	var list []*entity.Producto
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode productos: %w", err)
	}
	return list, nil
}

// Top lista los productos vivos mejor calificados según el agregado desnormalizado.
func (r *ProductoRepo) Top(limit int) ([]*entity.Producto, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "promedioCalificacion", Value: -1},
			{Key: "totalResenas", Value: -1},
		}).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(context.Background(), filtroVivo(), opts)
	if err != nil {
		return nil, fmt.Errorf("top productos: %w", err)
	}
	var list []*entity.Producto
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode productos: %w", err)
	}
	return list, nil
}

// Update reescribe los campos editables del producto. Stock, referencias de
// reseñas y calificación quedan fuera: se mutan con sus propias operaciones.
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	filter := filtroVivo()
	filter["_id"] = producto.ID
	set := bson.M{
		"nombre":      producto.Nombre,
		"descripcion": producto.Descripcion,
		"precio":      producto.Precio,
		"updatedAt":   producto.UpdatedAt,
	}
	if !producto.Categoria.IsZero() {
		set["categoria"] = producto.Categoria
	}
	if _, err := r.col.UpdateOne(context.Background(), filter, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// SetStock fija el stock absoluto de un producto vivo.
func (r *ProductoRepo) SetStock(id primitive.ObjectID, stock int) (bool, error) {
	filter := filtroVivo()
	filter["_id"] = id
	res, err := r.col.UpdateOne(context.Background(), filter,
		bson.M{"$set": bson.M{"stock": stock}},
	)
	if err != nil {
		return false, fmt.Errorf("set stock: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// DecrementStock descuenta qty unidades solo si hay stock suficiente.
// El filtro stock >= qty hace del chequeo y el descuento una sola operación
// atómica por documento; false significa producto ausente, eliminado o sin
// stock para cubrir qty.
func (r *ProductoRepo) DecrementStock(id primitive.ObjectID, qty int) (bool, error) {
	filter := filtroVivo()
	filter["_id"] = id
	filter["stock"] = bson.M{"$gte": qty}
	res, err := r.col.UpdateOne(context.Background(), filter,
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, fmt.Errorf("decrementar stock: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// IncrementStock repone qty unidades (compensación de un pedido fallido).
func (r *ProductoRepo) IncrementStock(id primitive.ObjectID, qty int) error {
	_, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	if err != nil {
		return fmt.Errorf("reponer stock: %w", err)
	}
	return nil
}

// PushResena agrega la referencia de una reseña al producto.
func (r *ProductoRepo) PushResena(productoID, resenaID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": productoID},
		bson.M{"$push": bson.M{"resenas": resenaID}},
	)
	if err != nil {
		return fmt.Errorf("push resena: %w", err)
	}
	return nil
}

// PullResena quita la referencia de una reseña del producto.
func (r *ProductoRepo) PullResena(productoID, resenaID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": productoID},
		bson.M{"$pull": bson.M{"resenas": resenaID}},
	)
	if err != nil {
		return fmt.Errorf("pull resena: %w", err)
	}
	return nil
}

// SetCalificacion escribe ambos campos desnormalizados del agregado de reseñas.
func (r *ProductoRepo) SetCalificacion(productoID primitive.ObjectID, promedio float64, total int) error {
	_, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": productoID},
		bson.M{"$set": bson.M{
			"promedioCalificacion": promedio,
			"totalResenas":         total,
		}},
	)
	if err != nil {
		return fmt.Errorf("set calificacion: %w", err)
	}
	return nil
}

// Delete marca el producto como eliminado.
func (r *ProductoRepo) Delete(id primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"eliminado": true}},
	)
	if err != nil {
		return false, fmt.Errorf("delete producto: %w", err)
	}
	return res.MatchedCount > 0, nil
}
