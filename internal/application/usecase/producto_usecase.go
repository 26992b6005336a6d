package usecase

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

// ProductoUseCase CRUD del catálogo. El stock solo cambia por la operación
// administrativa SetStock o por la creación de pedidos; los agregados de
// calificación los mantiene el agregador de reseñas.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create crea un producto. Los agregados de reseñas inician en cero.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Nombre == "" || in.Precio < 0 || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var categoria primitive.ObjectID
	if in.Categoria != "" {
		var err error
		categoria, err = primitive.ObjectIDFromHex(in.Categoria)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:          primitive.NewObjectID(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
		Stock:       in.Stock,
		Categoria:   categoria,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto vivo.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.repo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return toProductoResponse(producto), nil
}

// List lista el catálogo vivo completo.
func (uc *ProductoUseCase) List() ([]dto.ProductoResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return toProductoResponses(list), nil
}

// Filter filtra el catálogo por categoría, rango de precio y disponibilidad.
func (uc *ProductoUseCase) Filter(in dto.FilterProductoRequest) ([]dto.ProductoResponse, error) {
	f := repository.ProductoFilter{ConStock: in.ConStock}
	if in.Categoria != "" {
		categoria, err := primitive.ObjectIDFromHex(in.Categoria)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.Categoria = &categoria
	}
	if in.PrecioMin > 0 {
		f.PrecioMin = &in.PrecioMin
	}
	if in.PrecioMax > 0 {
		f.PrecioMax = &in.PrecioMax
	}
	list, err := uc.repo.Filter(f)
	if err != nil {
		return nil, err
	}
	return toProductoResponses(list), nil
}

// Top lista los productos mejor calificados según el agregado desnormalizado.
func (uc *ProductoUseCase) Top(limit int) ([]dto.ProductoResponse, error) {
	if limit <= 0 {
		limit = DefaultTopResenas
	}
	list, err := uc.repo.Top(limit)
	if err != nil {
		return nil, err
	}
	return toProductoResponses(list), nil
}

// Update actualiza un producto. Stock y agregados de calificación quedan
// fuera: tienen sus propias operaciones.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.repo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Precio != nil {
		if *in.Precio < 0 {
			return nil, domain.ErrInvalidInput
		}
		producto.Precio = *in.Precio
	}
	if in.Categoria != nil {
		categoria, err := primitive.ObjectIDFromHex(*in.Categoria)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		producto.Categoria = categoria
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// SetStock fija el stock absoluto de un producto (operación administrativa).
func (uc *ProductoUseCase) SetStock(id string, stock int) (*dto.ProductoResponse, error) {
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	matched, err := uc.repo.SetStock(oid, stock)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	producto, err := uc.repo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return toProductoResponse(producto), nil
}

// Delete marca un producto como eliminado; desaparece de todo listado y
// agregación desde ese instante.
func (uc *ProductoUseCase) Delete(id string) error {
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

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	categoria := ""
	if !p.Categoria.IsZero() {
		categoria = p.Categoria.Hex()
	}
	return &dto.ProductoResponse{
		ID:                   p.ID.Hex(),
		Nombre:               p.Nombre,
		Descripcion:          p.Descripcion,
		Precio:               p.Precio,
		Stock:                p.Stock,
		Categoria:            categoria,
		PromedioCalificacion: p.PromedioCalificacion,
		TotalResenas:         p.TotalResenas,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func toProductoResponses(list []*entity.Producto) []dto.ProductoResponse {
	out := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductoResponse(p))
	}
	return out
}
