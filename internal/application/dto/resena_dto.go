package dto

import "time"

// CreateResenaRequest entrada para crear una reseña.
type CreateResenaRequest struct {
	Producto   string  `json:"producto" validate:"required"`
	Puntuacion float64 `json:"puntuacion" validate:"required,min=1,max=5"`
	Comentario string  `json:"comentario" validate:"omitempty,max=2000"`
}

// UpdateResenaRequest entrada para actualizar una reseña (campos opcionales).
type UpdateResenaRequest struct {
	Puntuacion *float64 `json:"puntuacion"`
	Comentario *string  `json:"comentario"`
}

// ResenaResponse salida de una reseña.
type ResenaResponse struct {
	ID         string    `json:"id"`
	Usuario    string    `json:"usuario"`
	Producto   string    `json:"producto"`
	Puntuacion float64   `json:"puntuacion"`
	Comentario string    `json:"comentario"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TopResenaResponse entrada del ranking de productos mejor reseñados.
type TopResenaResponse struct {
	Producto             string  `json:"producto"` // nombre
	PromedioCalificacion float64 `json:"promedioCalificacion"`
	TotalResenas         int     `json:"totalResenas"`
}
