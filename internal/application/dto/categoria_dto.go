package dto

import "time"

// CreateCategoriaRequest entrada para crear una categoría.
type CreateCategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=2000"`
}

// UpdateCategoriaRequest entrada para actualizar una categoría (campos opcionales).
type UpdateCategoriaRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoriaStatsResponse conteo de productos vivos por categoría.
type CategoriaStatsResponse struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	TotalProductos int    `json:"totalProductos"`
}
