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

// POSDeps carries the terminal router's wiring. The POS shares the cart and
// client stack with the storefront but checks out through sales and exposes
// the back-office surface.
type POSDeps struct {
	Logger *zap.Logger
	Cfg    config.Config

	Cart    *cart.Cart
	Session *session.Session

	Products   *clients.ProductsClient
	Categories *clients.CategoriesClient
	Orders     *clients.OrdersClient
	Sales      *clients.SalesClient
	Users      *clients.UsersClient
	Auth       *clients.AuthClient

	Checkout SaleSubmitter
}

func NewPOSRouter(d POSDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(d.Logger))

	r.Get("/health", health)

	cartH := NewCartHandler(d.Cart, d.Products, d.Logger)
	catalogH := NewCatalogHandler(d.Products, d.Categories, d.Logger)
	checkoutH := NewPOSCheckoutHandler(d.Checkout, d.Logger)
	ordersH := NewOrdersHandler(d.Orders, d.Logger)
	salesH := NewSalesHandler(d.Sales, d.Logger)
	usersH := NewUsersHandler(d.Users, d.Logger)
	authH := NewAuthHandler(d.Auth, d.Session, d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartH.GetCart)
			r.Delete("/", cartH.Clear)
			r.Post("/items", cartH.AddItem)
			r.Put("/items/{productId}", cartH.SetQuantity)
			r.Post("/items/{productId}/increment", cartH.Increment)
			r.Post("/items/{productId}/decrement", cartH.Decrement)
			r.Delete("/items/{productId}", cartH.RemoveItem)
		})

		r.Post("/checkout", checkoutH.ProcessSale)

		r.Get("/products", catalogH.ListProducts)
		r.Get("/products/{id}", catalogH.GetProduct)
		r.Post("/products", catalogH.CreateProduct)
		r.Put("/products/{id}", catalogH.UpdateProduct)
		r.Delete("/products/{id}", catalogH.DeleteProduct)

		r.Get("/categories", catalogH.ListCategories)
		r.Post("/categories", catalogH.CreateCategory)
		r.Delete("/categories/{id}", catalogH.DeleteCategory)

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", salesH.List)
			r.Get("/summary/today", salesH.Today)
			r.Get("/summary/week", salesH.ThisWeek)
			r.Get("/summary/month", salesH.ThisMonth)
			r.Get("/summary/range", salesH.Range)
			r.Get("/invoice/{invoiceNumber}", salesH.GetByInvoice)
			r.Get("/{id}", salesH.Get)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersH.ListAll)
			r.Get("/{id}", ordersH.Get)
			r.Patch("/{id}/status", ordersH.UpdateStatus)
			r.Patch("/{id}/payment-status", ordersH.UpdatePaymentStatus)
			r.Delete("/{id}", ordersH.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", usersH.List)
			r.Get("/admins", usersH.ListAdmins)
			r.Post("/admins", usersH.CreateAdmin)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authH.Login)
			r.Post("/logout", authH.Logout)
			r.Get("/me", authH.Me)
		})
	})

	return r
}
