package usecase

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

// CategoriaUseCase CRUD de categorías y vista agregada de conteos.
type CategoriaUseCase struct {
	repo repository.CategoriaRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(repo repository.CategoriaRepository) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoriaUseCase) Create(in dto.CreateCategoriaRequest) (*dto.CategoriaResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	categoria := &entity.Categoria{
		ID:          primitive.NewObjectID(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// GetByID obtiene una categoría viva. Un identificador mal formado es un
// error de validación, no un not-found.
func (uc *CategoriaUseCase) GetByID(id string) (*dto.CategoriaResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	categoria, err := uc.repo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoriaResponse(categoria), nil
}

// List lista las categorías vivas en orden alfabético.
func (uc *CategoriaUseCase) List() ([]dto.CategoriaResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoriaResponse(c))
	}
	return out, nil
}

// Update actualiza una categoría.
func (uc *CategoriaUseCase) Update(id string, in dto.UpdateCategoriaRequest) (*dto.CategoriaResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	categoria, err := uc.repo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		categoria.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		categoria.Descripcion = *in.Descripcion
	}
	categoria.UpdatedAt = time.Now()
	if err := uc.repo.Update(categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// Delete marca una categoría como eliminada.
func (uc *CategoriaUseCase) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidInput
	}
	matched, err := uc.repo.Delete(oid)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	return nil
}

// Statistics devuelve el conteo de productos vivos por categoría, orden:
// total descendente y nombre ascendente.
func (uc *CategoriaUseCase) Statistics() ([]dto.CategoriaStatsResponse, error) {
	stats, err := uc.repo.Statistics()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.CategoriaStatsResponse{
			ID:             s.ID.Hex(),
			Nombre:         s.Nombre,
			TotalProductos: s.TotalProductos,
		})
	}
	return out, nil
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoriaResponse{
		ID:          c.ID.Hex(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
