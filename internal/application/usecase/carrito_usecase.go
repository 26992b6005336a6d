package usecase

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

// CarritoUseCase ciclo de vida del carrito: creación perezosa, líneas,
// vaciado y cálculo de totales. El dueño del carrito llega ya resuelto desde
// el boundary (parámetro explícito, nunca se infiere aquí de la autorización).
type CarritoUseCase struct {
	carritoRepo  repository.CarritoRepository
	productoRepo repository.ProductoRepository
}

// NewCarritoUseCase construye el caso de uso.
func NewCarritoUseCase(carritoRepo repository.CarritoRepository, productoRepo repository.ProductoRepository) *CarritoUseCase {
	return &CarritoUseCase{carritoRepo: carritoRepo, productoRepo: productoRepo}
}

// GetOrCreate devuelve el carrito vivo del usuario, creándolo vacío si no
// existe. El índice único parcial sobre (usuario, eliminado=false) cierra la
// carrera de doble creación: si otro llamador ganó, se relee el suyo.
func (uc *CarritoUseCase) GetOrCreate(usuarioID string) (*dto.CarritoResponse, error) {
	usuario, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	carrito, err := uc.carritoRepo.GetByUsuario(usuario)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		now := time.Now()
		carrito = &entity.Carrito{
			ID:        primitive.NewObjectID(),
			Usuario:   usuario,
			Items:     []entity.CarritoItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.carritoRepo.Create(carrito); err != nil {
			if err != domain.ErrDuplicate {
				return nil, err
			}
			carrito, err = uc.carritoRepo.GetByUsuario(usuario)
			if err != nil {
				return nil, err
			}
			if carrito == nil {
				return nil, domain.ErrNotFound
			}
		}
	}
	return uc.toCarritoResponse(carrito)
}

// GetByUsuario devuelve el carrito vivo del usuario con productos poblados.
func (uc *CarritoUseCase) GetByUsuario(usuarioID string) (*dto.CarritoResponse, error) {
	carrito, err := uc.liveCart(usuarioID)
	if err != nil {
		return nil, err
	}
	return uc.toCarritoResponse(carrito)
}

// AddItem agrega cantidad de un producto al carrito. Si el producto ya tiene
// línea, la cantidad se suma a la existente. El stock se verifica solo contra
// el incremento pedido y el stock vivo del producto: el stock real se
// descuenta al crear el pedido, no al llenar el carrito.
func (uc *CarritoUseCase) AddItem(usuarioID, productoID string, cantidad int) (*dto.CarritoResponse, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.liveProduct(productoID)
	if err != nil {
		return nil, err
	}
	if producto.Stock < cantidad {
		return nil, domain.ErrInsufficientStock
	}
	carrito, err := uc.liveCart(usuarioID)
	if err != nil {
		return nil, err
	}
	if carrito.FindItem(producto.ID) != nil {
		if _, err := uc.carritoRepo.IncItemCantidad(carrito.ID, producto.ID, cantidad); err != nil {
			return nil, err
		}
	} else {
		item := entity.CarritoItem{Producto: producto.ID, Cantidad: cantidad}
		if err := uc.carritoRepo.PushItem(carrito.ID, item); err != nil {
			return nil, err
		}
	}
	return uc.refreshed(carrito.Usuario)
}

// SetItemCantidad fija la cantidad de una línea existente.
// ErrNotFound si el producto no está en el carrito.
func (uc *CarritoUseCase) SetItemCantidad(usuarioID, productoID string, cantidad int) (*dto.CarritoResponse, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	producto, err := primitive.ObjectIDFromHex(productoID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	carrito, err := uc.liveCart(usuarioID)
	if err != nil {
		return nil, err
	}
	matched, err := uc.carritoRepo.SetItemCantidad(carrito.ID, producto, cantidad)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	return uc.refreshed(carrito.Usuario)
}

// RemoveItem quita la línea del producto si existe; si no existe es un no-op
// exitoso. ErrNotFound solo cuando el carrito mismo no existe.
func (uc *CarritoUseCase) RemoveItem(usuarioID, productoID string) (*dto.CarritoResponse, error) {
	producto, err := primitive.ObjectIDFromHex(productoID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	carrito, err := uc.liveCart(usuarioID)
	if err != nil {
		return nil, err
	}
	if err := uc.carritoRepo.PullItem(carrito.ID, producto); err != nil {
		return nil, err
	}
	return uc.refreshed(carrito.Usuario)
}

// Clear vacía las líneas del carrito.
func (uc *CarritoUseCase) Clear(usuarioID string) (*dto.CarritoResponse, error) {
	usuario, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	matched, err := uc.carritoRepo.Clear(usuario)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	return uc.refreshed(usuario)
}

// Totales calcula el total del carrito a precios vivos con desglose por
// línea. Un carrito existente pero vacío devuelve total 0 y desglose vacío;
// ErrNotFound solo cuando no hay carrito.
func (uc *CarritoUseCase) Totales(usuarioID string) (*dto.TotalesResponse, error) {
	usuario, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	totales, err := uc.carritoRepo.Totales(usuario)
	if err != nil {
		return nil, err
	}
	if totales == nil {
		// La agregación no emite filas para carritos vacíos; distinguir
		// "carrito vacío" de "carrito inexistente".
		carrito, err := uc.carritoRepo.GetByUsuario(usuario)
		if err != nil {
			return nil, err
		}
		if carrito == nil {
			return nil, domain.ErrNotFound
		}
		return &dto.TotalesResponse{Total: 0, Detalles: []dto.TotalesDetalleResponse{}}, nil
	}
	detalles := make([]dto.TotalesDetalleResponse, 0, len(totales.Detalles))
	for _, d := range totales.Detalles {
		detalles = append(detalles, dto.TotalesDetalleResponse{
			Producto: d.Producto,
			Cantidad: d.Cantidad,
			Subtotal: d.Subtotal,
		})
	}
	return &dto.TotalesResponse{Total: totales.Total, Detalles: detalles}, nil
}

// liveCart resuelve el carrito vivo del usuario o ErrNotFound.
func (uc *CarritoUseCase) liveCart(usuarioID string) (*entity.Carrito, error) {
	usuario, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	carrito, err := uc.carritoRepo.GetByUsuario(usuario)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		return nil, domain.ErrNotFound
	}
	return carrito, nil
}

// liveProduct resuelve un producto vivo o ErrNotFound.
func (uc *CarritoUseCase) liveProduct(productoID string) (*entity.Producto, error) {
	id, err := primitive.ObjectIDFromHex(productoID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return producto, nil
}

// refreshed relee el carrito tras una mutación y lo devuelve poblado.
func (uc *CarritoUseCase) refreshed(usuario primitive.ObjectID) (*dto.CarritoResponse, error) {
	carrito, err := uc.carritoRepo.GetByUsuario(usuario)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toCarritoResponse(carrito)
}

// toCarritoResponse mapea el carrito a DTO poblando nombre, precio y stock
// vivos de cada producto referenciado.
func (uc *CarritoUseCase) toCarritoResponse(c *entity.Carrito) (*dto.CarritoResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.Producto)
	}
	productos := map[primitive.ObjectID]*entity.Producto{}
	if len(ids) > 0 {
		list, err := uc.productoRepo.GetManyByIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			productos[p.ID] = p
		}
	}
	items := make([]dto.CarritoItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		ref := dto.CarritoProductoRef{ID: item.Producto.Hex()}
		if p, ok := productos[item.Producto]; ok {
			ref.Nombre = p.Nombre
			ref.Precio = p.Precio
			ref.Stock = p.Stock
		}
		items = append(items, dto.CarritoItemResponse{Producto: ref, Cantidad: item.Cantidad})
	}
	return &dto.CarritoResponse{
		ID:        c.ID.Hex(),
		Usuario:   c.Usuario.Hex(),
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}
