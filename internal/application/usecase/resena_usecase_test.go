package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/application/usecase"
	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type resenaFixture struct {
	uc        *usecase.ResenaUseCase
	productos *fakeProductoRepo
	pedidos   *fakePedidoRepo
	resenas   *fakeResenaRepo
}

func nuevaResenaFixture() *resenaFixture {
	productos := newFakeProductoRepo()
	pedidos := newFakePedidoRepo()
	resenas := newFakeResenaRepo()
	return &resenaFixture{
		uc:        usecase.NewResenaUseCase(resenas, productos, pedidos),
		productos: productos,
		pedidos:   pedidos,
		resenas:   resenas,
	}
}

// seedCompra registra un pedido vivo del usuario que contiene el producto,
// habilitando la regla de compra previa.
func seedCompra(t *testing.T, pedidos *fakePedidoRepo, usuario, producto primitive.ObjectID) {
	t.Helper()
	require.NoError(t, pedidos.Create(&entity.Pedido{
		ID:      primitive.NewObjectID(),
		Usuario: usuario,
		Estado:  entity.EstadoPendiente,
		Detalles: []entity.PedidoDetalle{
			{Producto: producto, Cantidad: 1, Subtotal: 10},
		},
		Total:     10,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))
}

func crearResena(t *testing.T, f *resenaFixture, usuario, producto primitive.ObjectID, puntuacion float64) *dto.ResenaResponse {
	t.Helper()
	out, err := f.uc.Create(usuario.Hex(), dto.CreateResenaRequest{
		Producto:   producto.Hex(),
		Puntuacion: puntuacion,
		Comentario: "comentario de prueba",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla de compra previa
// ──────────────────────────────────────────────────────────────────────────────

// Sin pedido vivo que contenga el producto, la reseña se rechaza.
func TestResenaCreate_SinCompraPrevia(t *testing.T) {
	f := nuevaResenaFixture()
	usuario := primitive.NewObjectID()
	producto := seedProducto(t, f.productos, "Café", 10, 10)

	_, err := f.uc.Create(usuario.Hex(), dto.CreateResenaRequest{
		Producto:   producto.Hex(),
		Puntuacion: 5,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	vivas, err := f.uc.List()
	require.NoError(t, err)
	assert.Empty(t, vivas, "el rechazo no debe dejar reseña")
	assert.Zero(t, f.productos.productos[producto].TotalResenas)
}

// Un pedido eliminado no habilita la reseña.
func TestResenaCreate_PedidoEliminadoNoHabilita(t *testing.T) {
	f := nuevaResenaFixture()
	usuario := primitive.NewObjectID()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	seedCompra(t, f.pedidos, usuario, producto)
	for _, p := range f.pedidos.pedidos {
		p.Eliminado = true
	}

	_, err := f.uc.Create(usuario.Hex(), dto.CreateResenaRequest{
		Producto:   producto.Hex(),
		Puntuacion: 4,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResenaCreate_CompradorPuedeResenar(t *testing.T) {
	f := nuevaResenaFixture()
	usuario := primitive.NewObjectID()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	seedCompra(t, f.pedidos, usuario, producto)

	resena := crearResena(t, f, usuario, producto, 4)
	assert.Equal(t, usuario.Hex(), resena.Usuario)
	assert.Equal(t, producto.Hex(), resena.Producto)
	assert.Equal(t, 4.0, resena.Puntuacion)
}

func TestResenaCreate_PuntuacionFueraDeRango(t *testing.T) {
	f := nuevaResenaFixture()
	usuario := primitive.NewObjectID()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	seedCompra(t, f.pedidos, usuario, producto)

	for _, puntuacion := range []float64{0, 0.5, 5.5, 6, -1} {
		_, err := f.uc.Create(usuario.Hex(), dto.CreateResenaRequest{
			Producto:   producto.Hex(),
			Puntuacion: puntuacion,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "puntuación %v debe rechazarse", puntuacion)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregado desnormalizado del producto
// ──────────────────────────────────────────────────────────────────────────────

// Cada mutación de reseñas recalcula promedio y total sobre las vivas.
func TestResenaAgregado_RecalculoEnCadaMutacion(t *testing.T) {
	f := nuevaResenaFixture()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	autorA := primitive.NewObjectID()
	autorB := primitive.NewObjectID()
	seedCompra(t, f.pedidos, autorA, producto)
	seedCompra(t, f.pedidos, autorB, producto)

	primera := crearResena(t, f, autorA, producto, 5)
	assert.InDelta(t, 5, f.productos.productos[producto].PromedioCalificacion, 1e-9)
	assert.Equal(t, 1, f.productos.productos[producto].TotalResenas)

	crearResena(t, f, autorB, producto, 3)
	assert.InDelta(t, 4, f.productos.productos[producto].PromedioCalificacion, 1e-9)
	assert.Equal(t, 2, f.productos.productos[producto].TotalResenas)

	// Cambiar la puntuación también recalcula.
	nueva := 1.0
	_, err := f.uc.Update(primera.ID, autorA.Hex(), dto.UpdateResenaRequest{Puntuacion: &nueva})
	require.NoError(t, err)
	assert.InDelta(t, 2, f.productos.productos[producto].PromedioCalificacion, 1e-9)

	// Borrar una deja el agregado de la restante.
	_, err = f.uc.Delete(primera.ID, autorA.Hex(), entity.RolCliente)
	require.NoError(t, err)
	assert.InDelta(t, 3, f.productos.productos[producto].PromedioCalificacion, 1e-9)
	assert.Equal(t, 1, f.productos.productos[producto].TotalResenas)
}

// Al borrar la última reseña el agregado vuelve a cero, no al valor anterior.
func TestResenaAgregado_UltimaBorradaDejaCero(t *testing.T) {
	f := nuevaResenaFixture()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	autor := primitive.NewObjectID()
	seedCompra(t, f.pedidos, autor, producto)

	resena := crearResena(t, f, autor, producto, 5)
	_, err := f.uc.Delete(resena.ID, autor.Hex(), entity.RolCliente)
	require.NoError(t, err)

	assert.Zero(t, f.productos.productos[producto].PromedioCalificacion)
	assert.Zero(t, f.productos.productos[producto].TotalResenas)
	assert.Empty(t, f.productos.productos[producto].Resenas, "la referencia debe quitarse del producto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización de update y delete
// ──────────────────────────────────────────────────────────────────────────────

// Una reseña ajena responde igual que una inexistente: NotFound.
func TestResenaUpdate_AjenaEsNotFound(t *testing.T) {
	f := nuevaResenaFixture()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	autor := primitive.NewObjectID()
	otro := primitive.NewObjectID()
	seedCompra(t, f.pedidos, autor, producto)
	resena := crearResena(t, f, autor, producto, 5)

	nueva := 1.0
	_, err := f.uc.Update(resena.ID, otro.Hex(), dto.UpdateResenaRequest{Puntuacion: &nueva})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	releida, err := f.uc.GetByID(resena.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, releida.Puntuacion, "la reseña no debe cambiar")
}

// Un cliente no puede borrar la reseña de otro; el estado queda intacto.
func TestResenaDelete_OtroClienteProhibido(t *testing.T) {
	f := nuevaResenaFixture()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	autor := primitive.NewObjectID()
	otro := primitive.NewObjectID()
	seedCompra(t, f.pedidos, autor, producto)
	resena := crearResena(t, f, autor, producto, 5)

	_, err := f.uc.Delete(resena.ID, otro.Hex(), entity.RolCliente)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	releida, err := f.uc.GetByID(resena.ID)
	require.NoError(t, err)
	assert.NotNil(t, releida, "la reseña debe seguir viva")
	assert.Equal(t, 1, f.productos.productos[producto].TotalResenas,
		"el agregado no debe cambiar tras un borrado prohibido")
}

// Un administrador puede borrar cualquier reseña.
func TestResenaDelete_AdminBorraCualquiera(t *testing.T) {
	f := nuevaResenaFixture()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	autor := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	seedCompra(t, f.pedidos, autor, producto)
	resena := crearResena(t, f, autor, producto, 5)

	_, err := f.uc.Delete(resena.ID, admin.Hex(), entity.RolAdministrador)
	require.NoError(t, err)

	_, err = f.uc.GetByID(resena.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El tombstone excluye la reseña de todos los listados.
func TestResenaDelete_TombstoneInvisible(t *testing.T) {
	f := nuevaResenaFixture()
	producto := seedProducto(t, f.productos, "Café", 10, 10)
	autor := primitive.NewObjectID()
	seedCompra(t, f.pedidos, autor, producto)
	resena := crearResena(t, f, autor, producto, 5)

	_, err := f.uc.Delete(resena.ID, autor.Hex(), entity.RolCliente)
	require.NoError(t, err)

	todas, err := f.uc.List()
	require.NoError(t, err)
	assert.Empty(t, todas)
	porProducto, err := f.uc.ListByProducto(producto.Hex())
	require.NoError(t, err)
	assert.Empty(t, porProducto)
}

// ──────────────────────────────────────────────────────────────────────────────
// Top
// ──────────────────────────────────────────────────────────────────────────────

func TestResenaTop_OrdenaPorPromedio(t *testing.T) {
	f := nuevaResenaFixture()
	cafe := seedProducto(t, f.productos, "Café", 10, 10)
	pan := seedProducto(t, f.productos, "Pan", 2, 10)
	autor := primitive.NewObjectID()
	seedCompra(t, f.pedidos, autor, cafe)
	seedCompra(t, f.pedidos, autor, pan)

	crearResena(t, f, autor, cafe, 3)
	crearResena(t, f, autor, pan, 5)

	top, err := f.uc.Top(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.InDelta(t, 5, top[0].PromedioCalificacion, 1e-9, "el mejor promedio va primero")
	assert.InDelta(t, 3, top[1].PromedioCalificacion, 1e-9)
}

// Un límite no positivo cae al valor por defecto.
func TestResenaTop_LimiteNoPositivo(t *testing.T) {
	f := nuevaResenaFixture()
	_, err := f.uc.Top(0)
	assert.NoError(t, err)
	_, err = f.uc.Top(-5)
	assert.NoError(t, err)
}
