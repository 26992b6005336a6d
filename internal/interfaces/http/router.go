package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuki-store/foodstore-api/internal/domain/entity"
)

// RouterDeps agrupa los handlers y la configuración que el router necesita.
type RouterDeps struct {
	JWTSecret string

	Auth      *AuthHandler
	Producto  *ProductoHandler
	Categoria *CategoriaHandler
	Carrito   *CarritoHandler
	Pedido    *PedidoHandler
	Resena    *ResenaHandler
}

// Router registra todas las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	auth := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RolAdministrador)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	usuarios := api.Group("/usuarios")
	usuarios.Post("/register", deps.Auth.Register)
	usuarios.Post("/login", deps.Auth.Login)

	productos := api.Group("/productos")
	productos.Get("/", deps.Producto.List)
	productos.Get("/filter", deps.Producto.Filter)
	productos.Get("/top", deps.Producto.Top)
	productos.Get("/:id", deps.Producto.GetByID)
	productos.Post("/", auth, admin, deps.Producto.Create)
	productos.Put("/:id", auth, admin, deps.Producto.Update)
	productos.Patch("/:id/stock", auth, admin, deps.Producto.UpdateStock)
	productos.Delete("/:id", auth, admin, deps.Producto.Delete)

	categorias := api.Group("/categorias")
	categorias.Get("/", deps.Categoria.List)
	categorias.Get("/stats", deps.Categoria.Statistics)
	categorias.Get("/:id", deps.Categoria.GetByID)
	categorias.Post("/", auth, admin, deps.Categoria.Create)
	categorias.Put("/:id", auth, admin, deps.Categoria.Update)
	categorias.Delete("/:id", auth, admin, deps.Categoria.Delete)

	carrito := api.Group("/carrito", auth)
	carrito.Post("/", deps.Carrito.GetOrCreate)
	carrito.Get("/:usuarioId/total", RequireSelfOrAdmin("usuarioId"), deps.Carrito.Totales)
	carrito.Get("/:usuarioId", RequireSelfOrAdmin("usuarioId"), deps.Carrito.GetByUsuario)
	carrito.Post("/:usuarioId/items", RequireSelfOrAdmin("usuarioId"), deps.Carrito.AddItem)
	carrito.Patch("/:usuarioId/items", RequireSelfOrAdmin("usuarioId"), deps.Carrito.SetItemCantidad)
	carrito.Delete("/:usuarioId/items/:productoId", RequireSelfOrAdmin("usuarioId"), deps.Carrito.RemoveItem)
	carrito.Delete("/:usuarioId", RequireSelfOrAdmin("usuarioId"), deps.Carrito.Clear)

	ordenes := api.Group("/ordenes", auth)
	ordenes.Get("/", admin, deps.Pedido.List)
	ordenes.Get("/stats", admin, deps.Pedido.Statistics)
	ordenes.Get("/user/:userId", RequireSelfOrAdmin("userId"), deps.Pedido.ListByUsuario)
	ordenes.Get("/:id", deps.Pedido.GetByID)
	ordenes.Post("/", deps.Pedido.Create)
	ordenes.Put("/:id", admin, deps.Pedido.Update)
	ordenes.Patch("/:id/status", admin, deps.Pedido.SetEstado)
	ordenes.Delete("/:id", admin, deps.Pedido.Delete)

	resenas := api.Group("/resenas")
	resenas.Get("/", deps.Resena.List)
	resenas.Get("/top", deps.Resena.Top)
	resenas.Get("/product/:productId", deps.Resena.ListByProducto)
	resenas.Get("/:id", deps.Resena.GetByID)
	resenas.Post("/", auth, deps.Resena.Create)
	resenas.Patch("/:id", auth, deps.Resena.Update)
	resenas.Delete("/:id", auth, deps.Resena.Delete)
}
