package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/application/dto"
	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

// PedidoUseCase creación de pedidos (reserva de stock + vaciado del carrito),
// transiciones de estado, listados y estadísticas.
type PedidoUseCase struct {
	pedidoRepo   repository.PedidoRepository
	productoRepo repository.ProductoRepository
	carritoRepo  repository.CarritoRepository
}

// NewPedidoUseCase construye el caso de uso.
func NewPedidoUseCase(pedidoRepo repository.PedidoRepository, productoRepo repository.ProductoRepository, carritoRepo repository.CarritoRepository) *PedidoUseCase {
	return &PedidoUseCase{pedidoRepo: pedidoRepo, productoRepo: productoRepo, carritoRepo: carritoRepo}
}

// Create crea un pedido en estado pendiente: valida todas las líneas antes de
// mutar nada, congela subtotal y total al precio actual de cada producto,
// inserta el pedido, descuenta stock línea a línea con update condicional
// (stock >= cantidad) y vacía el carrito del dueño.
//
// Si un descuento falla a mitad de camino se compensa: se reponen los
// descuentos ya aplicados y se marca eliminado el pedido recién insertado,
// de modo que un fallo de stock no deja pedido parcial visible ni stock
// perdido. Un fallo del propio paso de compensación sí se propaga como error
// inesperado; el caller debe releer para reconciliar.
func (uc *PedidoUseCase) Create(usuarioID string, items []dto.PedidoItemRequest, metodoPago string) (*dto.PedidoResponse, error) {
	usuario, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validación todo-o-nada: cada línea referencia un producto vivo con
	// cantidad positiva, antes de tocar una sola colección.
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		if item.Cantidad <= 0 {
			return nil, domain.ErrInvalidInput
		}
		id, err := primitive.ObjectIDFromHex(item.Producto)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		ids = append(ids, id)
	}
	list, err := uc.productoRepo.GetManyByIDs(ids)
	if err != nil {
		return nil, err
	}
	productos := make(map[primitive.ObjectID]*entity.Producto, len(list))
	for _, p := range list {
		productos[p.ID] = p
	}

	total := decimal.Zero
	detalles := make([]entity.PedidoDetalle, 0, len(items))
	for i, item := range items {
		producto, ok := productos[ids[i]]
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		if producto.Stock < item.Cantidad {
			return nil, domain.ErrInsufficientStock
		}
		// Precio congelado: subtotal = cantidad × precio vigente ahora.
		sub := decimal.NewFromFloat(producto.Precio).Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(sub)
		detalles = append(detalles, entity.PedidoDetalle{
			Producto: producto.ID,
			Cantidad: item.Cantidad,
			Subtotal: sub.InexactFloat64(),
		})
	}

	now := time.Now()
	pedido := &entity.Pedido{
		ID:         primitive.NewObjectID(),
		Usuario:    usuario,
		MetodoPago: metodoPago,
		Estado:     entity.EstadoPendiente,
		Detalles:   detalles,
		Total:      total.InexactFloat64(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.pedidoRepo.Create(pedido); err != nil {
		return nil, err
	}

	aplicados := make([]entity.PedidoDetalle, 0, len(detalles))
	for _, d := range detalles {
		matched, err := uc.productoRepo.DecrementStock(d.Producto, d.Cantidad)
		if err == nil && !matched {
			// Otro pedido concurrente ganó el stock entre la validación y
			// el descuento condicional.
			err = domain.ErrInsufficientStock
		}
		if err != nil {
			if compErr := uc.compensar(pedido.ID, aplicados); compErr != nil {
				return nil, fmt.Errorf("crear pedido: %w (compensación incompleta: %v)", err, compErr)
			}
			return nil, err
		}
		aplicados = append(aplicados, d)
	}

	if _, err := uc.carritoRepo.Clear(usuario); err != nil {
		// El pedido y el stock ya están comprometidos; el carrito quedó sin
		// vaciar. Se propaga como inesperado para que el caller reconcilie.
		return nil, fmt.Errorf("vaciar carrito tras pedido %s: %w", pedido.ID.Hex(), err)
	}

	return uc.toPedidoResponse(pedido, productos), nil
}

// compensar revierte los descuentos de stock ya aplicados y marca eliminado
// el pedido insertado.
func (uc *PedidoUseCase) compensar(pedidoID primitive.ObjectID, aplicados []entity.PedidoDetalle) error {
	for _, a := range aplicados {
		if err := uc.productoRepo.IncrementStock(a.Producto, a.Cantidad); err != nil {
			return fmt.Errorf("reponer stock de %s: %w", a.Producto.Hex(), err)
		}
	}
	if _, err := uc.pedidoRepo.Delete(pedidoID); err != nil {
		return fmt.Errorf("descartar pedido %s: %w", pedidoID.Hex(), err)
	}
	return nil
}

// GetByID devuelve un pedido. Solo el dueño o un administrador pueden verlo.
func (uc *PedidoUseCase) GetByID(id, callerID, callerRol string) (*dto.PedidoResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	pedido, err := uc.pedidoRepo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	if callerRol != entity.RolAdministrador && pedido.Usuario.Hex() != callerID {
		return nil, domain.ErrForbidden
	}
	return uc.populated(pedido)
}

// List lista pedidos vivos, opcionalmente filtrados por un conjunto de
// estados aceptados (coincidencia OR). Solo administrador (el boundary lo
// garantiza antes de llegar aquí).
func (uc *PedidoUseCase) List(estados []string) ([]dto.PedidoResponse, error) {
	pedidos, err := uc.pedidoRepo.List(estados)
	if err != nil {
		return nil, err
	}
	return uc.populatedList(pedidos)
}

// ListByUsuario lista los pedidos vivos de un usuario. Solo ese usuario o un
// administrador.
func (uc *PedidoUseCase) ListByUsuario(usuarioID, callerID, callerRol string) ([]dto.PedidoResponse, error) {
	if callerRol != entity.RolAdministrador && usuarioID != callerID {
		return nil, domain.ErrForbidden
	}
	usuario, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	pedidos, err := uc.pedidoRepo.ListByUsuario(usuario)
	if err != nil {
		return nil, err
	}
	return uc.populatedList(pedidos)
}

// Update aplica un parche administrativo sobre un pedido vivo.
func (uc *PedidoUseCase) Update(id string, in dto.UpdatePedidoRequest) (*dto.PedidoResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	pedido, err := uc.pedidoRepo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	if in.MetodoPago != nil {
		pedido.MetodoPago = *in.MetodoPago
	}
	if in.Estado != nil {
		pedido.Estado = *in.Estado
	}
	pedido.UpdatedAt = time.Now()
	if err := uc.pedidoRepo.Update(pedido); err != nil {
		return nil, err
	}
	return uc.populated(pedido)
}

// SetEstado sobrescribe el estado del pedido. No se valida contra un grafo
// de transiciones: cualquier valor administrativo se acepta, como en el
// diseño original.
func (uc *PedidoUseCase) SetEstado(id, estado string) (*dto.PedidoResponse, error) {
	if estado == "" {
		return nil, domain.ErrInvalidInput
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	matched, err := uc.pedidoRepo.SetEstado(oid, estado)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	pedido, err := uc.pedidoRepo.GetByID(oid)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	return uc.populated(pedido)
}

// Delete marca el pedido como eliminado. El stock descontado no se repone:
// la cancelación no devuelve unidades al inventario.
func (uc *PedidoUseCase) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidInput
	}
	matched, err := uc.pedidoRepo.Delete(oid)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	return nil
}

// Statistics agrupa pedidos vivos por estado con conteo y monto total,
// ordenados por conteo descendente.
func (uc *PedidoUseCase) Statistics() ([]dto.PedidoStatsResponse, error) {
	stats, err := uc.pedidoRepo.Statistics()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.PedidoStatsResponse{
			Estado:       s.Estado,
			TotalPedidos: s.TotalPedidos,
			MontoTotal:   s.MontoTotal,
		})
	}
	return out, nil
}

// populated mapea un pedido a DTO poblando nombres de producto.
func (uc *PedidoUseCase) populated(p *entity.Pedido) (*dto.PedidoResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(p.Detalles))
	for _, d := range p.Detalles {
		ids = append(ids, d.Producto)
	}
	productos := map[primitive.ObjectID]*entity.Producto{}
	if len(ids) > 0 {
		list, err := uc.productoRepo.GetManyByIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, prod := range list {
			productos[prod.ID] = prod
		}
	}
	return uc.toPedidoResponse(p, productos), nil
}

func (uc *PedidoUseCase) populatedList(pedidos []*entity.Pedido) ([]dto.PedidoResponse, error) {
	seen := map[primitive.ObjectID]struct{}{}
	ids := []primitive.ObjectID{}
	for _, p := range pedidos {
		for _, d := range p.Detalles {
			if _, ok := seen[d.Producto]; !ok {
				seen[d.Producto] = struct{}{}
				ids = append(ids, d.Producto)
			}
		}
	}
	productos := map[primitive.ObjectID]*entity.Producto{}
	if len(ids) > 0 {
		list, err := uc.productoRepo.GetManyByIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, prod := range list {
			productos[prod.ID] = prod
		}
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for _, p := range pedidos {
		out = append(out, *uc.toPedidoResponse(p, productos))
	}
	return out, nil
}

func (uc *PedidoUseCase) toPedidoResponse(p *entity.Pedido, productos map[primitive.ObjectID]*entity.Producto) *dto.PedidoResponse {
	detalles := make([]dto.PedidoDetalleResponse, 0, len(p.Detalles))
	for _, d := range p.Detalles {
		det := dto.PedidoDetalleResponse{
			Producto: d.Producto.Hex(),
			Cantidad: d.Cantidad,
			Subtotal: d.Subtotal,
		}
		if prod, ok := productos[d.Producto]; ok {
			det.Nombre = prod.Nombre
		}
		detalles = append(detalles, det)
	}
	return &dto.PedidoResponse{
		ID:         p.ID.Hex(),
		Usuario:    p.Usuario.Hex(),
		MetodoPago: p.MetodoPago,
		Estado:     p.Estado,
		Detalles:   detalles,
		Total:      p.Total,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
