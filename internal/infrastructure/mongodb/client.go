package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tuki-store/foodstore-api/pkg/config"
)

// Nombres de las colecciones lógicas.
const (
	ColUsuarios   = "usuarios"
	ColProductos  = "productos"
	ColCategorias = "categorias"
	ColCarritos   = "carritos"
	ColPedidos    = "pedidos"
	ColResenas    = "resenas"
)

// NewClient conecta a MongoDB usando la configuración de la app y devuelve
// el cliente junto con la base de datos seleccionada.
func NewClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionString()).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("conectar a MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, client.Database(cfg.DBName), nil
}

// EnsureIndexes crea los índices que el workflow asume:
//   - usuarios: email único.
//   - carritos: índice único parcial sobre usuario con eliminado=false, que
//     garantiza a lo sumo un carrito vivo por usuario y cierra la carrera de
//     doble creación del carrito.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ColUsuarios).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("índice usuarios.email: %w", err)
	}

	_, err = db.Collection(ColCarritos).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "usuario", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "eliminado", Value: false}}),
	})
	if err != nil {
		return fmt.Errorf("índice carritos.usuario: %w", err)
	}
	return nil
}

// filtroVivo filtro base que excluye documentos con tombstone.
func filtroVivo() bson.M {
	return bson.M{"eliminado": false}
}

// isDuplicateKey verifica si un error del driver es una violación de índice único (E11000).
func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
