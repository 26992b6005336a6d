package repository

import (
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Las lecturas excluyen siempre los documentos con eliminado=true.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	FindByEmail(email string) (*entity.Usuario, error) // nil si no existe
}
