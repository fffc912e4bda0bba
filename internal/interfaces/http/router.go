package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pampazon/wms-api/internal/application/auth"
	"github.com/pampazon/wms-api/internal/application/despacho"
	"github.com/pampazon/wms-api/internal/application/egreso"
	"github.com/pampazon/wms-api/internal/application/ingreso"
	"github.com/pampazon/wms-api/internal/application/usecase"
	"github.com/pampazon/wms-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClienteUC  *usecase.ClienteUseCase
	ProductoUC *usecase.ProductoUseCase
	PosicionUC *usecase.PosicionUseCase
	StockUC    *usecase.StockUseCase
	IngresoUC  *ingreso.UseCase
	EgresoUC   *egreso.UseCase
	DespachoUC *despacho.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las bajas de catálogo y los ajustes
// manuales de stock quedan restringidos al rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RoleAdmin)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", soloAdmin, clienteHandler.Delete)

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", soloAdmin, productoHandler.Delete)

	// Posiciones
	posiciones := protected.Group("/posiciones")
	posicionHandler := NewPosicionHandler(deps.PosicionUC)
	posiciones.Post("/", posicionHandler.Create)
	posiciones.Get("/", posicionHandler.List)
	posiciones.Get("/:id", posicionHandler.GetByID)
	posiciones.Delete("/:id", soloAdmin, posicionHandler.Delete)

	// Stock (mutaciones sólo admin)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Post("/", soloAdmin, stockHandler.Create)
	stock.Put("/:id", soloAdmin, stockHandler.Update)
	stock.Delete("/:id", soloAdmin, stockHandler.Delete)

	// Remitos (protocolo de ingreso)
	remitos := protected.Group("/remitos")
	remitoHandler := NewRemitoHandler(deps.IngresoUC)
	remitos.Post("/", remitoHandler.Create)
	remitos.Get("/", remitoHandler.List)
	remitos.Get("/:id", remitoHandler.GetByID)
	remitos.Post("/:id/ingresar", remitoHandler.Ingresar)
	remitos.Post("/:id/rechazar", remitoHandler.Rechazar)

	// Órdenes (protocolo de egreso)
	ordenes := protected.Group("/ordenes")
	ordenHandler := NewOrdenHandler(deps.EgresoUC)
	ordenes.Post("/", ordenHandler.Create)
	ordenes.Get("/", ordenHandler.List)
	ordenes.Get("/:id", ordenHandler.GetByID)
	ordenes.Post("/:id/preparar", ordenHandler.Preparar)

	// Despachos
	despachos := protected.Group("/despachos")
	despachoHandler := NewDespachoHandler(deps.DespachoUC)
	despachos.Post("/", despachoHandler.Create)
	despachos.Get("/", despachoHandler.List)
	despachos.Get("/:id", despachoHandler.GetByID)
	despachos.Post("/:id/ordenes", despachoHandler.AgregarOrden)
	despachos.Post("/:id/finalizar", despachoHandler.Finalizar)
}
