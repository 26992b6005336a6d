package dto

import "time"

// CreateProductoRequest entrada para crear un producto.
type CreateProductoRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion string  `json:"descripcion" validate:"omitempty,max=2000"`
	Precio      float64 `json:"precio" validate:"min=0"`
	Stock       int     `json:"stock" validate:"min=0"`
	Categoria   string  `json:"categoria" validate:"omitempty"`
}

// UpdateProductoRequest entrada para actualizar un producto (campos opcionales).
// Stock no se actualiza por aquí: tiene su propia operación.
type UpdateProductoRequest struct {
	Nombre      *string  `json:"nombre"`
	Descripcion *string  `json:"descripcion"`
	Precio      *float64 `json:"precio"`
	Categoria   *string  `json:"categoria"`
}

// UpdateStockRequest entrada para fijar el stock de un producto.
type UpdateStockRequest struct {
	Stock int `json:"stock" validate:"min=0"`
}

// FilterProductoRequest criterios de filtrado del catálogo (query params).
type FilterProductoRequest struct {
	Categoria string  `query:"categoria"`
	PrecioMin float64 `query:"precioMin"`
	PrecioMax float64 `query:"precioMax"`
	ConStock  bool    `query:"conStock"`
}

// ProductoResponse salida de un producto, incluye los agregados desnormalizados de reseñas.
type ProductoResponse struct {
	ID                   string    `json:"id"`
	Nombre               string    `json:"nombre"`
	Descripcion          string    `json:"descripcion"`
	Precio               float64   `json:"precio"`
	Stock                int       `json:"stock"`
	Categoria            string    `json:"categoria,omitempty"`
	PromedioCalificacion float64   `json:"promedioCalificacion"`
	TotalResenas         int       `json:"totalResenas"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
