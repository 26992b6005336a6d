package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/application/usecase"
	"github.com/tuki-store/foodstore-api/internal/domain"
)

func nuevoProductoUC() (*usecase.ProductoUseCase, *fakeProductoRepo) {
	repo := newFakeProductoRepo()
	return usecase.NewProductoUseCase(repo), repo
}

func TestProductoCreate_AgregadosEnCero(t *testing.T) {
	uc, _ := nuevoProductoUC()

	out, err := uc.Create(dto.CreateProductoRequest{
		Nombre: "Café de grano",
		Precio: 25.50,
		Stock:  10,
	})
	require.NoError(t, err)
	assert.Zero(t, out.PromedioCalificacion)
	assert.Zero(t, out.TotalResenas)
}

func TestProductoCreate_Invalido(t *testing.T) {
	uc, _ := nuevoProductoUC()

	_, err := uc.Create(dto.CreateProductoRequest{Nombre: "", Precio: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(dto.CreateProductoRequest{Nombre: "Café", Precio: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(dto.CreateProductoRequest{Nombre: "Café", Precio: 1, Stock: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductoFilter_RangoDePrecioYStock(t *testing.T) {
	uc, repo := nuevoProductoUC()
	seedProducto(t, repo, "Barato", 5, 0)
	seedProducto(t, repo, "Medio", 20, 3)
	seedProducto(t, repo, "Caro", 100, 3)

	out, err := uc.Filter(dto.FilterProductoRequest{PrecioMin: 10, PrecioMax: 50})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Medio", out[0].Nombre)

	disponibles, err := uc.Filter(dto.FilterProductoRequest{ConStock: true})
	require.NoError(t, err)
	assert.Len(t, disponibles, 2, "el filtro de stock excluye los agotados")
}

func TestProductoSetStock_ValorAbsoluto(t *testing.T) {
	uc, repo := nuevoProductoUC()
	id := seedProducto(t, repo, "Café", 10, 3)

	out, err := uc.SetStock(id.Hex(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Stock, "el stock se fija, no se suma")

	_, err = uc.SetStock(id.Hex(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SetStock(primitive.NewObjectID().Hex(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El tombstone saca al producto de lecturas y listados, sin borrado físico.
func TestProductoDelete_Tombstone(t *testing.T) {
	uc, repo := nuevoProductoUC()
	id := seedProducto(t, repo, "Café", 10, 3)

	require.NoError(t, uc.Delete(id.Hex()))

	_, err := uc.GetByID(id.Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	err = uc.Delete(id.Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound, "el segundo borrado no encuentra documento vivo")
}
