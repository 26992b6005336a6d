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

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación del puerto PedidoRepository sobre MongoDB.
type PedidoRepo struct {
	col *mongo.Collection
}

// NewPedidoRepository construye el adaptador de persistencia para pedidos.
func NewPedidoRepository(db *mongo.Database) *PedidoRepo {
	return &PedidoRepo{col: db.Collection(ColPedidos)}
}

// Create persiste un pedido nuevo.
func (r *PedidoRepo) Create(pedido *entity.Pedido) error {
	if _, err := r.col.InsertOne(context.Background(), pedido); err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido vivo por ID.
func (r *PedidoRepo) GetByID(id primitive.ObjectID) (*entity.Pedido, error) {
	filter := filtroVivo()
	filter["_id"] = id
	var p entity.Pedido
	err := r.col.FindOne(context.Background(), filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &p, nil
}

// List lista los pedidos vivos, más recientes primero, opcionalmente
// filtrados por un conjunto de estados (OR).
func (r *PedidoRepo) List(estados []string) ([]*entity.Pedido, error) {
	filter := filtroVivo()
	if len(estados) > 0 {
		filter["estado"] = bson.M{"$in": estados}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(context.Background(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	var list []*entity.Pedido
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode pedidos: %w", err)
	}
	return list, nil
}

// ListByUsuario lista los pedidos vivos de un usuario, más recientes primero.
func (r *PedidoRepo) ListByUsuario(usuario primitive.ObjectID) ([]*entity.Pedido, error) {
	filter := filtroVivo()
	filter["usuario"] = usuario
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(context.Background(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list pedidos usuario: %w", err)
	}
	var list []*entity.Pedido
	if err := cursor.All(context.Background(), &list); err != nil {
		return nil, fmt.Errorf("decode pedidos: %w", err)
	}
	return list, nil
}

// Update reescribe los campos administrativos del pedido. Detalles y total
// quedan fuera: son capturas inmutables del momento de la compra.
func (r *PedidoRepo) Update(pedido *entity.Pedido) error {
	filter := filtroVivo()
	filter["_id"] = pedido.ID
	update := bson.M{"$set": bson.M{
		"metodoPago": pedido.MetodoPago,
		"estado":     pedido.Estado,
		"updatedAt":  pedido.UpdatedAt,
	}}
	if _, err := r.col.UpdateOne(context.Background(), filter, update); err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	return nil
}

// SetEstado sobrescribe el estado de un pedido vivo.
func (r *PedidoRepo) SetEstado(id primitive.ObjectID, estado string) (bool, error) {
	filter := filtroVivo()
	filter["_id"] = id
	res, err := r.col.UpdateOne(context.Background(), filter,
		bson.M{"$set": bson.M{"estado": estado}},
	)
	if err != nil {
		return false, fmt.Errorf("set estado: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete marca el pedido como eliminado. No toca el stock descontado.
func (r *PedidoRepo) Delete(id primitive.ObjectID) (bool, error) {
	res, err := r.col.UpdateOne(context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"eliminado": true}},
	)
	if err != nil {
		return false, fmt.Errorf("delete pedido: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// Statistics agrupa pedidos vivos por estado con conteo y monto, ordenados
// por conteo descendente.
func (r *PedidoRepo) Statistics() ([]repository.PedidoStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"eliminado": false}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$estado",
			"totalPedidos": bson.M{"$sum": 1},
			"montoTotal":   bson.M{"$sum": "$total"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "totalPedidos", Value: -1}}}},
	}
	cursor, err := r.col.Aggregate(context.Background(), pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats pedidos: %w", err)
	}
	var stats []repository.PedidoStats
	if err := cursor.All(context.Background(), &stats); err != nil {
		return nil, fmt.Errorf("decode stats pedidos: %w", err)
	}
	return stats, nil
}

// HasCompra indica si el usuario tiene un pedido vivo con alguna línea del
// producto (regla de compra previa de las reseñas).
func (r *PedidoRepo) HasCompra(usuario, producto primitive.ObjectID) (bool, error) {
	filter := filtroVivo()
	filter["usuario"] = usuario
	filter["detalles"] = bson.M{"$elemMatch": bson.M{"producto": producto}}
	err := r.col.FindOne(context.Background(), filter).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("buscar compra: %w", err)
	}
	return true, nil
}
