package http

import (
	"net/http"

	_ "github.com/DRSN-tech/storefront-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(cartUC usecase.CartUC, checkoutUC usecase.CheckoutUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		cartHandler := NewCartHandler(cartUC, r.logger)
		registerCartRoutes(v1, cartHandler)

		checkoutHandler := NewCheckoutHandler(checkoutUC, r.logger)
		registerCheckoutRoutes(v1, checkoutHandler)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Get("/", h.getCart)
		cart.Delete("/", h.clearCart)
		cart.Post("/items", h.addItem)
		cart.Put("/items", h.updateQuantity)
		cart.Delete("/items", h.removeItem)
		cart.Post("/promo", h.applyPromoCode)
		cart.Delete("/promo", h.removeDiscount)
	})
}

func registerCheckoutRoutes(router chi.Router, h *CheckoutHandler) {
	router.Route("/checkout", func(co chi.Router) {
		co.Get("/", h.getStatus)
		co.Put("/contact", h.setContact)
		co.Put("/shipping", h.selectShipping)
		co.Post("/back", h.goBack)
		co.Post("/submit", h.submit)
	})
}
