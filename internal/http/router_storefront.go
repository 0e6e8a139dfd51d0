package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/cart"
	"github.com/Nelson707/store-project-sub000/internal/clients"
	"github.com/Nelson707/store-project-sub000/internal/config"
	"github.com/Nelson707/store-project-sub000/internal/middleware"
	"github.com/Nelson707/store-project-sub000/internal/session"
)

// StorefrontDeps carries everything the shopper-facing router needs.
type StorefrontDeps struct {
	Logger *zap.Logger
	Cfg    config.Config

	Cart    *cart.Cart
	Session *session.Session

	Products   *clients.ProductsClient
	Categories *clients.CategoriesClient
	Orders     *clients.OrdersClient
	Auth       *clients.AuthClient

	Checkout OrderSubmitter
}

func NewStorefrontRouter(d StorefrontDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(d.Logger))

	r.Get("/health", health)

	cartH := NewCartHandler(d.Cart, d.Products, d.Logger)
	catalogH := NewCatalogHandler(d.Products, d.Categories, d.Logger)
	checkoutH := NewCheckoutHandler(d.Checkout, d.Logger)
	ordersH := NewOrdersHandler(d.Orders, d.Logger)
	authH := NewAuthHandler(d.Auth, d.Session, d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartH.GetCart)
			r.Delete("/", cartH.Clear)
			r.Post("/items", cartH.AddItem)
			r.Post("/items/{productId}/increment", cartH.Increment)
			r.Post("/items/{productId}/decrement", cartH.Decrement)
			r.Delete("/items/{productId}", cartH.RemoveItem)
			// Drawer state lives server-side so every view agrees on it.
			r.Post("/open", cartH.Open)
			r.Post("/close", cartH.Close)
		})

		r.Post("/checkout", checkoutH.PlaceOrder)

		r.Get("/products", catalogH.ListProducts)
		r.Get("/products/{id}", catalogH.GetProduct)
		r.Get("/categories", catalogH.ListCategories)

		r.Get("/orders", ordersH.ListMine)
		r.Get("/orders/{id}", ordersH.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authH.Login)
			r.Post("/register", authH.Register)
			r.Post("/logout", authH.Logout)
			r.Get("/me", authH.Me)
		})
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
