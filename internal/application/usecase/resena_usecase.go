package usecase

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

// DefaultTopResenas límite por defecto del ranking de mejores reseñas.
const DefaultTopResenas = 10

// ResenaUseCase CRUD de reseñas bajo la regla de compra previa y
// mantenimiento del agregado desnormalizado de calificación del producto.
type ResenaUseCase struct {
	resenaRepo   repository.ResenaRepository
	productoRepo repository.ProductoRepository
	pedidoRepo   repository.PedidoRepository
}

// NewResenaUseCase construye el caso de uso.
func NewResenaUseCase(resenaRepo repository.ResenaRepository, productoRepo repository.ProductoRepository, pedidoRepo repository.PedidoRepository) *ResenaUseCase {
	return &ResenaUseCase{resenaRepo: resenaRepo, productoRepo: productoRepo, pedidoRepo: pedidoRepo}
}

// Create crea una reseña. El autor debe tener un pedido vivo que contenga el
// producto; si no, ErrForbidden sin importar el contenido de la reseña.
func (uc *ResenaUseCase) Create(usuarioID string, in dto.CreateResenaRequest) (*dto.ResenaResponse, error) {
	usuario, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	producto, err := primitive.ObjectIDFromHex(in.Producto)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Puntuacion < entity.PuntuacionMin || in.Puntuacion > entity.PuntuacionMax {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.productoRepo.GetByID(producto)
	if err != nil {
		return nil, err
	}
	if existente == nil {
		return nil, domain.ErrNotFound
	}
	compro, err := uc.pedidoRepo.HasCompra(usuario, producto)
	if err != nil {
		return nil, err
	}
	if !compro {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	resena := &entity.Resena{
		ID:         primitive.NewObjectID(),
		Usuario:    usuario,
		Producto:   producto,
		Puntuacion: in.Puntuacion,
		Comentario: in.Comentario,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.resenaRepo.Create(resena); err != nil {
		return nil, err
	}
	if err := uc.productoRepo.PushResena(producto, resena.ID); err != nil {
		return nil, fmt.Errorf("referenciar reseña %s: %w", resena.ID.Hex(), err)
	}
	if err := uc.recalcularCalificacion(producto); err != nil {
		return nil, err
	}
	return toResenaResponse(resena), nil
}

// Update actualiza una reseña. Solo el autor original puede hacerlo: una
// reseña ajena, ausente o eliminada responde ErrNotFound sin distinción.
func (uc *ResenaUseCase) Update(id, autorID string, in dto.UpdateResenaRequest) (*dto.ResenaResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	resena, err := uc.resenaRepo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if resena == nil || resena.Usuario.Hex() != autorID {
		return nil, domain.ErrNotFound
	}
	if in.Puntuacion != nil {
		if *in.Puntuacion < entity.PuntuacionMin || *in.Puntuacion > entity.PuntuacionMax {
			return nil, domain.ErrInvalidInput
		}
		resena.Puntuacion = *in.Puntuacion
	}
	if in.Comentario != nil {
		resena.Comentario = *in.Comentario
	}
	resena.UpdatedAt = time.Now()
	if err := uc.resenaRepo.Update(resena); err != nil {
		return nil, err
	}
	if err := uc.recalcularCalificacion(resena.Producto); err != nil {
		return nil, err
	}
	return toResenaResponse(resena), nil
}

// Delete marca la reseña como eliminada, quita su referencia del producto y
// recalcula el agregado. Un administrador puede borrar cualquier reseña; un
// cliente solo la propia.
func (uc *ResenaUseCase) Delete(id, callerID, callerRol string) (*dto.ResenaResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	resena, err := uc.resenaRepo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if resena == nil {
		return nil, domain.ErrNotFound
	}
	if callerRol != entity.RolAdministrador && resena.Usuario.Hex() != callerID {
		return nil, domain.ErrForbidden
	}
	matched, err := uc.resenaRepo.Delete(oid)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	resena.Eliminado = true
	if err := uc.productoRepo.PullResena(resena.Producto, resena.ID); err != nil {
		return nil, fmt.Errorf("desreferenciar reseña %s: %w", resena.ID.Hex(), err)
	}
	if err := uc.recalcularCalificacion(resena.Producto); err != nil {
		return nil, err
	}
	return toResenaResponse(resena), nil
}

// GetByID devuelve una reseña viva.
func (uc *ResenaUseCase) GetByID(id string) (*dto.ResenaResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	resena, err := uc.resenaRepo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if resena == nil {
		return nil, domain.ErrNotFound
	}
	return toResenaResponse(resena), nil
}

// List lista todas las reseñas vivas.
func (uc *ResenaUseCase) List() ([]dto.ResenaResponse, error) {
	resenas, err := uc.resenaRepo.List()
	if err != nil {
		return nil, err
	}
	return toResenaResponses(resenas), nil
}

// ListByProducto lista las reseñas vivas de un producto.
func (uc *ResenaUseCase) ListByProducto(productoID string) ([]dto.ResenaResponse, error) {
	producto, err := primitive.ObjectIDFromHex(productoID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	resenas, err := uc.resenaRepo.ListByProducto(producto)
	if err != nil {
		return nil, err
	}
	return toResenaResponses(resenas), nil
}

// Top devuelve los productos mejor reseñados: promedio desc, total desc,
// promedio redondeado a 2 decimales, nombre del producto unido.
func (uc *ResenaUseCase) Top(limit int) ([]dto.TopResenaResponse, error) {
	if limit <= 0 {
		limit = DefaultTopResenas
	}
	top, err := uc.resenaRepo.Top(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopResenaResponse, 0, len(top))
	for _, t := range top {
		out = append(out, dto.TopResenaResponse{
			Producto:             t.NombreProducto,
			PromedioCalificacion: t.PromedioCalificacion,
			TotalResenas:         t.TotalResenas,
		})
	}
	return out, nil
}

// recalcularCalificacion es el único punto de recálculo del agregado
// desnormalizado: promedio y total sobre reseñas vivas, cero cuando no queda
// ninguna, escritos sobre el producto. Se invoca tras cada create/update/
// delete que toque las reseñas del producto; es idempotente.
func (uc *ResenaUseCase) recalcularCalificacion(producto primitive.ObjectID) error {
	ag, err := uc.resenaRepo.Agregado(producto)
	if err != nil {
		return fmt.Errorf("agregado de reseñas de %s: %w", producto.Hex(), err)
	}
	if err := uc.productoRepo.SetCalificacion(producto, ag.Promedio, ag.Total); err != nil {
		return fmt.Errorf("escribir calificación de %s: %w", producto.Hex(), err)
	}
	return nil
}

func toResenaResponse(r *entity.Resena) *dto.ResenaResponse {
	if r == nil {
		return nil
	}
	return &dto.ResenaResponse{
		ID:         r.ID.Hex(),
		Usuario:    r.Usuario.Hex(),
		Producto:   r.Producto.Hex(),
		Puntuacion: r.Puntuacion,
		Comentario: r.Comentario,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toResenaResponses(resenas []*entity.Resena) []dto.ResenaResponse {
	out := make([]dto.ResenaResponse, 0, len(resenas))
	for _, r := range resenas {
		out = append(out, *toResenaResponse(r))
	}
	return out
}
