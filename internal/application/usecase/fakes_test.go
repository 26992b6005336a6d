package usecase_test

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tuki-store/foodstore-api/internal/domain"
	"github.com/tuki-store/foodstore-api/internal/domain/entity"
	"github.com/tuki-store/foodstore-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests de casos de uso.
// Reproducen el contrato de los puertos: filtro de vivos (eliminado=false),
// nil cuando no hay documento y updates condicionales con matched bool.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[primitive.ObjectID]*entity.Producto

	// beforeDecrement permite a un test simular un pedido concurrente que
	// roba stock entre la validación y el descuento condicional.
	beforeDecrement func(id primitive.ObjectID)
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: map[primitive.ObjectID]*entity.Producto{}}
}

func (r *fakeProductoRepo) Create(p *entity.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) GetByID(id primitive.ObjectID) (*entity.Producto, error) {
	p, ok := r.productos[id]
	if !ok || p.Eliminado {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductoRepo) GetManyByIDs(ids []primitive.ObjectID) ([]*entity.Producto, error) {
	out := []*entity.Producto{}
	for _, id := range ids {
		if p, ok := r.productos[id]; ok && !p.Eliminado {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductoRepo) List() ([]*entity.Producto, error) {
	out := []*entity.Producto{}
	for _, p := range r.productos {
		if !p.Eliminado {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductoRepo) Filter(f repository.ProductoFilter) ([]*entity.Producto, error) {
	out := []*entity.Producto{}
	for _, p := range r.productos {
		if p.Eliminado {
			continue
		}
		if f.Categoria != nil && p.Categoria != *f.Categoria {
			continue
		}
		if f.PrecioMin != nil && p.Precio < *f.PrecioMin {
			continue
		}
		if f.PrecioMax != nil && p.Precio > *f.PrecioMax {
			continue
		}
		if f.ConStock && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductoRepo) Top(limit int) ([]*entity.Producto, error) {
	out, _ := r.List()
	sort.Slice(out, func(i, j int) bool {
		return out[i].PromedioCalificacion > out[j].PromedioCalificacion
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductoRepo) Update(p *entity.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) SetStock(id primitive.ObjectID, stock int) (bool, error) {
	p, ok := r.productos[id]
	if !ok || p.Eliminado {
		return false, nil
	}
	p.Stock = stock
	return true, nil
}

func (r *fakeProductoRepo) DecrementStock(id primitive.ObjectID, qty int) (bool, error) {
	if r.beforeDecrement != nil {
		r.beforeDecrement(id)
	}
	p, ok := r.productos[id]
	if !ok || p.Eliminado || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *fakeProductoRepo) IncrementStock(id primitive.ObjectID, qty int) error {
	if p, ok := r.productos[id]; ok {
		p.Stock += qty
	}
	return nil
}

func (r *fakeProductoRepo) PushResena(productoID, resenaID primitive.ObjectID) error {
	if p, ok := r.productos[productoID]; ok {
		p.Resenas = append(p.Resenas, resenaID)
	}
	return nil
}

func (r *fakeProductoRepo) PullResena(productoID, resenaID primitive.ObjectID) error {
	p, ok := r.productos[productoID]
	if !ok {
		return nil
	}
	keep := p.Resenas[:0]
	for _, id := range p.Resenas {
		if id != resenaID {
			keep = append(keep, id)
		}
	}
	p.Resenas = keep
	return nil
}

func (r *fakeProductoRepo) SetCalificacion(productoID primitive.ObjectID, promedio float64, total int) error {
	if p, ok := r.productos[productoID]; ok {
		p.PromedioCalificacion = promedio
		p.TotalResenas = total
	}
	return nil
}

func (r *fakeProductoRepo) Delete(id primitive.ObjectID) (bool, error) {
	p, ok := r.productos[id]
	if !ok || p.Eliminado {
		return false, nil
	}
	p.Eliminado = true
	return true, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeCarritoRepo struct {
	carritos  map[primitive.ObjectID]*entity.Carrito
	productos *fakeProductoRepo // para Totales a precio vivo
}

var _ repository.CarritoRepository = (*fakeCarritoRepo)(nil)

func newFakeCarritoRepo(productos *fakeProductoRepo) *fakeCarritoRepo {
	return &fakeCarritoRepo{
		carritos:  map[primitive.ObjectID]*entity.Carrito{},
		productos: productos,
	}
}

func (r *fakeCarritoRepo) Create(c *entity.Carrito) error {
	// Índice único parcial (usuario, eliminado=false).
	for _, existente := range r.carritos {
		if existente.Usuario == c.Usuario && !existente.Eliminado {
			return domain.ErrDuplicate
		}
	}
	r.carritos[c.ID] = c
	return nil
}

func (r *fakeCarritoRepo) GetByUsuario(usuario primitive.ObjectID) (*entity.Carrito, error) {
	for _, c := range r.carritos {
		if c.Usuario == usuario && !c.Eliminado {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCarritoRepo) IncItemCantidad(carritoID, producto primitive.ObjectID, qty int) (bool, error) {
	c, ok := r.carritos[carritoID]
	if !ok || c.Eliminado {
		return false, nil
	}
	item := c.FindItem(producto)
	if item == nil {
		return false, nil
	}
	item.Cantidad += qty
	return true, nil
}

func (r *fakeCarritoRepo) SetItemCantidad(carritoID, producto primitive.ObjectID, qty int) (bool, error) {
	c, ok := r.carritos[carritoID]
	if !ok || c.Eliminado {
		return false, nil
	}
	item := c.FindItem(producto)
	if item == nil {
		return false, nil
	}
	item.Cantidad = qty
	return true, nil
}

func (r *fakeCarritoRepo) PushItem(carritoID primitive.ObjectID, item entity.CarritoItem) error {
	if c, ok := r.carritos[carritoID]; ok {
		c.Items = append(c.Items, item)
	}
	return nil
}

func (r *fakeCarritoRepo) PullItem(carritoID, producto primitive.ObjectID) error {
	c, ok := r.carritos[carritoID]
	if !ok {
		return nil
	}
	keep := c.Items[:0]
	for _, item := range c.Items {
		if item.Producto != producto {
			keep = append(keep, item)
		}
	}
	c.Items = keep
	return nil
}

func (r *fakeCarritoRepo) Clear(usuario primitive.ObjectID) (bool, error) {
	c, err := r.GetByUsuario(usuario)
	if err != nil || c == nil {
		return false, err
	}
	c.Items = []entity.CarritoItem{}
	return true, nil
}

func (r *fakeCarritoRepo) Totales(usuario primitive.ObjectID) (*repository.CarritoTotales, error) {
	c, err := r.GetByUsuario(usuario)
	if err != nil || c == nil || len(c.Items) == 0 {
		return nil, err
	}
	totales := &repository.CarritoTotales{}
	for _, item := range c.Items {
		p, ok := r.productos.productos[item.Producto]
		if !ok || p.Eliminado {
			continue
		}
		sub := p.Precio * float64(item.Cantidad)
		totales.Total += sub
		totales.Detalles = append(totales.Detalles, repository.CarritoTotalesDetalle{
			Producto: p.Nombre,
			Cantidad: item.Cantidad,
			Subtotal: sub,
		})
	}
	return totales, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakePedidoRepo struct {
	pedidos map[primitive.ObjectID]*entity.Pedido
}

var _ repository.PedidoRepository = (*fakePedidoRepo)(nil)

func newFakePedidoRepo() *fakePedidoRepo {
	return &fakePedidoRepo{pedidos: map[primitive.ObjectID]*entity.Pedido{}}
}

func (r *fakePedidoRepo) Create(p *entity.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *fakePedidoRepo) GetByID(id primitive.ObjectID) (*entity.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Eliminado {
		return nil, nil
	}
	return p, nil
}

func (r *fakePedidoRepo) List(estados []string) ([]*entity.Pedido, error) {
	out := []*entity.Pedido{}
	for _, p := range r.pedidos {
		if p.Eliminado {
			continue
		}
		if len(estados) > 0 {
			acepta := false
			for _, e := range estados {
				if p.Estado == e {
					acepta = true
					break
				}
			}
			if !acepta {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePedidoRepo) ListByUsuario(usuario primitive.ObjectID) ([]*entity.Pedido, error) {
	out := []*entity.Pedido{}
	for _, p := range r.pedidos {
		if !p.Eliminado && p.Usuario == usuario {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePedidoRepo) Update(p *entity.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *fakePedidoRepo) SetEstado(id primitive.ObjectID, estado string) (bool, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Eliminado {
		return false, nil
	}
	p.Estado = estado
	return true, nil
}

func (r *fakePedidoRepo) Delete(id primitive.ObjectID) (bool, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Eliminado {
		return false, nil
	}
	p.Eliminado = true
	return true, nil
}

func (r *fakePedidoRepo) Statistics() ([]repository.PedidoStats, error) {
	porEstado := map[string]*repository.PedidoStats{}
	for _, p := range r.pedidos {
		if p.Eliminado {
			continue
		}
		s, ok := porEstado[p.Estado]
		if !ok {
			s = &repository.PedidoStats{Estado: p.Estado}
			porEstado[p.Estado] = s
		}
		s.TotalPedidos++
		s.MontoTotal += p.Total
	}
	out := []repository.PedidoStats{}
	for _, s := range porEstado {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalPedidos > out[j].TotalPedidos })
	return out, nil
}

func (r *fakePedidoRepo) HasCompra(usuario, producto primitive.ObjectID) (bool, error) {
	for _, p := range r.pedidos {
		if p.Eliminado || p.Usuario != usuario {
			continue
		}
		for _, d := range p.Detalles {
			if d.Producto == producto {
				return true, nil
			}
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeResenaRepo struct {
	resenas map[primitive.ObjectID]*entity.Resena
}

var _ repository.ResenaRepository = (*fakeResenaRepo)(nil)

func newFakeResenaRepo() *fakeResenaRepo {
	return &fakeResenaRepo{resenas: map[primitive.ObjectID]*entity.Resena{}}
}

func (r *fakeResenaRepo) Create(resena *entity.Resena) error {
	r.resenas[resena.ID] = resena
	return nil
}

func (r *fakeResenaRepo) GetByID(id primitive.ObjectID) (*entity.Resena, error) {
	re, ok := r.resenas[id]
	if !ok || re.Eliminado {
		return nil, nil
	}
	return re, nil
}

func (r *fakeResenaRepo) List() ([]*entity.Resena, error) {
	out := []*entity.Resena{}
	for _, re := range r.resenas {
		if !re.Eliminado {
			out = append(out, re)
		}
	}
	return out, nil
}

func (r *fakeResenaRepo) ListByProducto(producto primitive.ObjectID) ([]*entity.Resena, error) {
	out := []*entity.Resena{}
	for _, re := range r.resenas {
		if !re.Eliminado && re.Producto == producto {
			out = append(out, re)
		}
	}
	return out, nil
}

func (r *fakeResenaRepo) Update(resena *entity.Resena) error {
	r.resenas[resena.ID] = resena
	return nil
}

func (r *fakeResenaRepo) Delete(id primitive.ObjectID) (bool, error) {
	re, ok := r.resenas[id]
	if !ok || re.Eliminado {
		return false, nil
	}
	re.Eliminado = true
	return true, nil
}

func (r *fakeResenaRepo) Agregado(producto primitive.ObjectID) (repository.ResenaAgregado, error) {
	var suma float64
	var total int
	for _, re := range r.resenas {
		if !re.Eliminado && re.Producto == producto {
			suma += re.Puntuacion
			total++
		}
	}
	ag := repository.ResenaAgregado{Total: total}
	if total > 0 {
		ag.Promedio = suma / float64(total)
	}
	return ag, nil
}

func (r *fakeResenaRepo) Top(limit int) ([]repository.TopResena, error) {
	porProducto := map[primitive.ObjectID]*repository.TopResena{}
	for _, re := range r.resenas {
		if re.Eliminado {
			continue
		}
		t, ok := porProducto[re.Producto]
		if !ok {
			t = &repository.TopResena{Producto: re.Producto}
			porProducto[re.Producto] = t
		}
		t.TotalResenas++
		t.PromedioCalificacion += re.Puntuacion
	}
	out := []repository.TopResena{}
	for _, t := range porProducto {
		t.PromedioCalificacion /= float64(t.TotalResenas)
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PromedioCalificacion != out[j].PromedioCalificacion {
			return out[i].PromedioCalificacion > out[j].PromedioCalificacion
		}
		return out[i].TotalResenas > out[j].TotalResenas
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
