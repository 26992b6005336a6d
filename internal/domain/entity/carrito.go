package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarritoItem línea del carrito: producto + cantidad.
// Un producto aparece a lo sumo una vez en Items; volver a agregarlo
// incrementa la cantidad de la línea existente.
type CarritoItem struct {
	Producto primitive.ObjectID `bson:"producto"`
	Cantidad int                `bson:"cantidad"` // > 0
}

// Carrito representa el carrito de compras de un usuario.
// A lo sumo un carrito vivo (eliminado=false) por usuario; se vacía al crear
// un pedido y nunca se borra físicamente, solo se marca eliminado.
type Carrito struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Usuario   primitive.ObjectID `bson:"usuario"`
	Items     []CarritoItem      `bson:"items"`
	Eliminado bool               `bson:"eliminado"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// FindItem devuelve la línea del producto dado, o nil si no está en el carrito.
func (c *Carrito) FindItem(productoID primitive.ObjectID) *CarritoItem {
	for i := range c.Items {
		if c.Items[i].Producto == productoID {
			return &c.Items[i]
		}
	}
	return nil
}
