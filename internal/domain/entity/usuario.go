package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles válidos para Usuario.
const (
	RolAdministrador = "administrador"
	RolCliente       = "cliente"
)

// Usuario representa un usuario de la tienda.
// PasswordHash es bcrypt, nunca plano en dominio después de persistir.
type Usuario struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Nombre       string             `bson:"nombre"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Rol          string             `bson:"rol"` // administrador, cliente
	Eliminado    bool               `bson:"eliminado"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// EsAdministrador indica si el usuario tiene rol administrador.
func (u *Usuario) EsAdministrador() bool {
	return u.Rol == RolAdministrador
}
