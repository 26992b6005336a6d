package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/tuki-store/foodstore-api/internal/application/auth"
	"github.com/tuki-store/foodstore-api/internal/application/usecase"
	"github.com/tuki-store/foodstore-api/internal/infrastructure/mongodb"
	httpRouter "github.com/tuki-store/foodstore-api/internal/interfaces/http"
	"github.com/tuki-store/foodstore-api/pkg/config"
	"github.com/tuki-store/foodstore-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	client, db, err := mongodb.NewClient(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("creación de índices")
	}

	usuarioRepo := mongodb.NewUsuarioRepository(db)
	productoRepo := mongodb.NewProductoRepository(db)
	categoriaRepo := mongodb.NewCategoriaRepository(db)
	carritoRepo := mongodb.NewCarritoRepository(db)
	pedidoRepo := mongodb.NewPedidoRepository(db)
	resenaRepo := mongodb.NewResenaRepository(db)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productoUC := usecase.NewProductoUseCase(productoRepo)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo)
	carritoUC := usecase.NewCarritoUseCase(carritoRepo, productoRepo)
	pedidoUC := usecase.NewPedidoUseCase(pedidoRepo, productoRepo, carritoRepo)
	resenaUC := usecase.NewResenaUseCase(resenaRepo, productoRepo, pedidoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		JWTSecret: cfg.JWT.Secret,
		Auth:      httpRouter.NewAuthHandler(authUC),
		Producto:  httpRouter.NewProductoHandler(productoUC),
		Categoria: httpRouter.NewCategoriaHandler(categoriaUC),
		Carrito:   httpRouter.NewCarritoHandler(carritoUC),
		Pedido:    httpRouter.NewPedidoHandler(pedidoUC),
		Resena:    httpRouter.NewResenaHandler(resenaUC),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
