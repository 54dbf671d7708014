package http

import (
	"net/http"
	"time"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full HTTP surface. Public routes are signup,
// login and the password reset pair plus read-only catalog browsing;
// everything else sits behind the session-checked bearer token.
func NewRouter(
	auth *AuthHandler,
	catalog *CatalogHandler,
	cart *CartHandler,
	checkout *CheckoutHandler,
	authMW *AuthMiddleware,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public
	r.Post("/signup", auth.Signup)
	r.Post("/login", auth.Login)
	r.Post("/forgot-password", auth.ForgotPassword)
	r.Post("/reset-password", auth.ResetPassword)
	r.Get("/products", catalog.ListProducts)
	r.Get("/products/{product_id}", catalog.GetProduct)
	r.Get("/categories", catalog.ListCategories)
	r.Get("/categories/{category_id}", catalog.GetCategory)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(authMW.Authenticate)

		r.Post("/logout", auth.Logout)
		r.Get("/profile", auth.GetProfile)
		r.Put("/profile", auth.UpdateProfile)
		r.Delete("/profile", auth.DeleteProfile)

		r.Post("/cart/add", cart.AddItem)
		r.Put("/cart/update/{product_id}", cart.UpdateQuantity)
		r.Delete("/cart/remove/{product_id}", cart.RemoveItem)
		r.Get("/cart", cart.GetCart)

		r.Post("/checkout", checkout.Checkout)
		r.Get("/orders", checkout.ListOrders)
		r.Get("/orders/{order_id}", checkout.GetOrder)

		// Vendor-managed catalog mutations
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(domain.RoleVendor))
			r.Post("/products", catalog.AddProduct)
			r.Put("/products/{product_id}", catalog.UpdateProduct)
			r.Delete("/products/{product_id}", catalog.DeleteProduct)
		})

		// Admin surface
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(domain.RoleAdmin))
			r.Put("/orders/{order_id}/status", checkout.UpdateOrderStatus)
			r.Get("/customers", auth.ListCustomers)
			r.Put("/customers/{customer_id}/role", auth.UpdateRole)
			r.Post("/categories", catalog.CreateCategory)
			r.Put("/categories/{category_id}", catalog.UpdateCategory)
			r.Delete("/categories/{category_id}", catalog.DeleteCategory)
		})
	})

	return r
}
