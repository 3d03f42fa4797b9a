package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kivo-shop/kivo-api/internal/application/auth"
	"github.com/kivo-shop/kivo-api/internal/application/cart"
	"github.com/kivo-shop/kivo-api/internal/application/catalog"
	"github.com/kivo-shop/kivo-api/internal/application/checkout"
	"github.com/kivo-shop/kivo-api/internal/application/loyalty"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	CategoryUC  *catalog.CategoryUseCase
	PromotionUC *catalog.PromotionUseCase
	CartUC      *cart.CartUseCase
	CheckoutUC  *checkout.CheckoutUseCase
	FichaUC     *loyalty.FichaUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Las rutas de escritura del catálogo y
// las operaciones de fichas del panel exigen Bearer Token con flag de
// administrador; el resto es público.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	admin := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireAdmin()}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Productos. Las rutas fijas van antes que /:id.
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/ofertas", productHandler.ListOnSale)
	products.Get("/admin", append(admin, productHandler.ListAdmin)...)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", append(admin, productHandler.Create)...)
	products.Patch("/:id", append(admin, productHandler.Update)...)
	products.Delete("/:id", append(admin, productHandler.Delete)...)

	// Categorías (público)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categorias", categoryHandler.List)

	// Promociones (administración)
	promotions := api.Group("/promociones")
	promotionHandler := NewPromotionHandler(deps.PromotionUC)
	promotions.Get("/admin", append(admin, promotionHandler.ListAdmin)...)
	promotions.Post("/", append(admin, promotionHandler.Create)...)
	promotions.Patch("/:id", append(admin, promotionHandler.Update)...)
	promotions.Delete("/:id", append(admin, promotionHandler.Delete)...)

	// Carrito (público, por sesión)
	carts := api.Group("/carrito")
	cartHandler := NewCartHandler(deps.CartUC)
	carts.Get("/:sesionId", cartHandler.List)
	carts.Post("/", cartHandler.Add)
	carts.Patch("/:id", cartHandler.Update)
	carts.Delete("/sesion/:sesionId", cartHandler.Clear)
	carts.Delete("/:id", cartHandler.Remove)

	// Pedidos (público)
	orders := api.Group("/pedidos")
	orderHandler := NewOrderHandler(deps.CheckoutUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:codigo", orderHandler.GetByCode)

	// Fichas: validar y canjear son públicos (flujo del QR); generación,
	// canje manual e historial son del panel de administración.
	fichaHandler := NewFichaHandler(deps.FichaUC)
	fichas := api.Group("/fichas")
	fichas.Post("/validar", fichaHandler.Validate)
	fichas.Post("/canjear", fichaHandler.Redeem)

	adminFichas := api.Group("/admin/fichas", admin...)
	adminFichas.Get("/", fichaHandler.History)
	adminFichas.Post("/generar", fichaHandler.Generate)
	adminFichas.Post("/canjear-manual", fichaHandler.RedeemManual)
}
