package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/usecase"
	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedProducto(t *testing.T, repo *fakeProductoRepo, nombre string, precio float64, stock int) primitive.ObjectID {
	t.Helper()
	p := &entity.Producto{
		ID:        primitive.NewObjectID(),
		Nombre:    nombre,
		Precio:    precio,
		Stock:     stock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(p))
	return p.ID
}

func nuevoCarritoUC() (*usecase.CarritoUseCase, *fakeProductoRepo, *fakeCarritoRepo) {
	productos := newFakeProductoRepo()
	carritos := newFakeCarritoRepo(productos)
	return usecase.NewCarritoUseCase(carritos, productos), productos, carritos
}

// ──────────────────────────────────────────────────────────────────────────────
// GetOrCreate
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario sin carrito recibe uno vacío; la segunda llamada devuelve el mismo.
func TestCarritoGetOrCreate_CreacionPerezosa(t *testing.T) {
	uc, _, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()

	primero, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)
	assert.Empty(t, primero.Items, "el carrito recién creado debe estar vacío")
	assert.Equal(t, usuario, primero.Usuario)

	segundo, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)
	assert.Equal(t, primero.ID, segundo.ID, "no debe crearse un segundo carrito para el mismo usuario")
}

func TestCarritoGetOrCreate_UsuarioInvalido(t *testing.T) {
	uc, _, _ := nuevoCarritoUC()
	_, err := uc.GetOrCreate("no-es-un-objectid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddItem
// ──────────────────────────────────────────────────────────────────────────────

// Agregar dos veces el mismo producto acumula sobre una única línea.
func TestCarritoAddItem_FusionaLineaExistente(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Café de grano", 25.50, 10)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)

	_, err = uc.AddItem(usuario, prod.Hex(), 2)
	require.NoError(t, err)
	carrito, err := uc.AddItem(usuario, prod.Hex(), 3)
	require.NoError(t, err)

	require.Len(t, carrito.Items, 1, "el producto debe aparecer en una sola línea")
	assert.Equal(t, 5, carrito.Items[0].Cantidad)
	assert.Equal(t, "Café de grano", carrito.Items[0].Producto.Nombre)
}

// Cantidad no positiva se rechaza sin tocar el carrito.
func TestCarritoAddItem_CantidadInvalida(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Té verde", 12, 10)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)

	_, err = uc.AddItem(usuario, prod.Hex(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddItem(usuario, prod.Hex(), -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	carrito, err := uc.GetByUsuario(usuario)
	require.NoError(t, err)
	assert.Empty(t, carrito.Items, "un alta rechazada no debe dejar línea")
}

// El incremento pedido supera el stock vivo → rechazo.
func TestCarritoAddItem_StockInsuficiente(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Aceite de oliva", 80, 2)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)

	_, err = uc.AddItem(usuario, prod.Hex(), 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// La verificación es solo incremento contra stock vivo: lo ya acumulado en el
// carrito no cuenta, así que la suma de líneas puede exceder el stock.
func TestCarritoAddItem_AcumuladoPuedeExcederStock(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Harina", 5, 5)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)

	_, err = uc.AddItem(usuario, prod.Hex(), 3)
	require.NoError(t, err)
	carrito, err := uc.AddItem(usuario, prod.Hex(), 3)
	require.NoError(t, err, "cada incremento se compara contra el stock vivo, no contra el acumulado")
	assert.Equal(t, 6, carrito.Items[0].Cantidad)
}

func TestCarritoAddItem_ProductoEliminado(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Descatalogado", 10, 10)
	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)
	_, err = productos.Delete(prod)
	require.NoError(t, err)

	_, err = uc.AddItem(usuario, prod.Hex(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto con tombstone no debe ser visible")
}

// ──────────────────────────────────────────────────────────────────────────────
// SetItemCantidad / RemoveItem / Clear
// ──────────────────────────────────────────────────────────────────────────────

func TestCarritoSetItemCantidad_ReemplazaCantidad(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Arroz", 4, 20)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)
	_, err = uc.AddItem(usuario, prod.Hex(), 2)
	require.NoError(t, err)

	carrito, err := uc.SetItemCantidad(usuario, prod.Hex(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, carrito.Items[0].Cantidad, "la cantidad se reemplaza, no se suma")
}

func TestCarritoSetItemCantidad_LineaAusente(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Azúcar", 3, 20)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)

	_, err = uc.SetItemCantidad(usuario, prod.Hex(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Quitar una línea que no existe es éxito sin cambios.
func TestCarritoRemoveItem_AusenteEsNoOp(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	enCarrito := seedProducto(t, productos, "Pan", 2, 20)
	ausente := seedProducto(t, productos, "Leche", 3, 20)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)
	_, err = uc.AddItem(usuario, enCarrito.Hex(), 1)
	require.NoError(t, err)

	carrito, err := uc.RemoveItem(usuario, ausente.Hex())
	require.NoError(t, err, "quitar un producto ausente no es error")
	assert.Len(t, carrito.Items, 1, "la línea existente debe conservarse")
}

func TestCarritoClear_VaciaConservandoDocumento(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	prod := seedProducto(t, productos, "Huevos", 6, 20)

	creado, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)
	_, err = uc.AddItem(usuario, prod.Hex(), 4)
	require.NoError(t, err)

	carrito, err := uc.Clear(usuario)
	require.NoError(t, err)
	assert.Empty(t, carrito.Items)
	assert.Equal(t, creado.ID, carrito.ID, "vaciar no debe reemplazar el documento")
}

func TestCarritoClear_SinCarrito(t *testing.T) {
	uc, _, _ := nuevoCarritoUC()
	_, err := uc.Clear(primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

// El total usa el precio vivo de cada producto al momento del cálculo.
func TestCarritoTotales_PrecioVivo(t *testing.T) {
	uc, productos, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()
	cafe := seedProducto(t, productos, "Café", 10, 50)
	pan := seedProducto(t, productos, "Pan", 2, 50)

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)
	_, err = uc.AddItem(usuario, cafe.Hex(), 2)
	require.NoError(t, err)
	_, err = uc.AddItem(usuario, pan.Hex(), 3)
	require.NoError(t, err)

	totales, err := uc.Totales(usuario)
	require.NoError(t, err)
	assert.InDelta(t, 26, totales.Total, 1e-9) // 2×10 + 3×2
	assert.Len(t, totales.Detalles, 2)

	// El precio cambia después de llenar el carrito: el total lo refleja.
	productos.productos[cafe].Precio = 15
	totales, err = uc.Totales(usuario)
	require.NoError(t, err)
	assert.InDelta(t, 36, totales.Total, 1e-9, "el total debe seguir el precio vigente")
}

// Carrito existente pero vacío: total 0 con desglose vacío, no error.
func TestCarritoTotales_CarritoVacio(t *testing.T) {
	uc, _, _ := nuevoCarritoUC()
	usuario := primitive.NewObjectID().Hex()

	_, err := uc.GetOrCreate(usuario)
	require.NoError(t, err)

	totales, err := uc.Totales(usuario)
	require.NoError(t, err)
	assert.Zero(t, totales.Total)
	assert.Empty(t, totales.Detalles)
}

func TestCarritoTotales_SinCarrito(t *testing.T) {
	uc, _, _ := nuevoCarritoUC()
	_, err := uc.Totales(primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
