package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/http/admin"
	"github.com/MrJamesThe3rd/vitrine/internal/http/catalog"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
	"github.com/MrJamesThe3rd/vitrine/internal/http/sale"
	"github.com/MrJamesThe3rd/vitrine/internal/http/shop"
	"github.com/MrJamesThe3rd/vitrine/internal/http/user"
	"github.com/MrJamesThe3rd/vitrine/internal/http/wallet"
)

type Options struct {
	AllowedOrigins []string
	CookieName     string
	Timeout        time.Duration
}

type Handlers struct {
	User    *user.Handler
	Catalog *catalog.Handler
	Sale    *sale.Handler
	Wallet  *wallet.Handler
	Shop    *shop.Handler
	Admin   *admin.Handler
}

func New(opts Options, verifier auth.Verifier, admins auth.AdminChecker, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Webhook-Secret"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authenticated := auth.Middleware(verifier, opts.CookieName)
	superAdmin := auth.RequireSuperAdmin(admins)

	router.Route("/auth", func(r chi.Router) {
		h.User.PublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			h.User.Routes(r)
		})
	})

	router.Route("/produtos", func(r chi.Router) {
		r.Use(authenticated)
		h.Catalog.ProductRoutes(r)
	})

	router.Route("/categorias", func(r chi.Router) {
		r.Use(authenticated)
		h.Catalog.CategoryRoutes(r)
	})

	router.Route("/vendas", func(r chi.Router) {
		r.Use(authenticated)
		h.Sale.SaleRoutes(r)
	})

	router.Route("/pagamentos", func(r chi.Router) {
		h.Sale.WebhookRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			h.Sale.PaymentRoutes(r)
		})
	})

	router.Route("/carteira", func(r chi.Router) {
		r.Use(authenticated)
		h.Wallet.Routes(r)
	})

	router.Route("/loja", func(r chi.Router) {
		r.Use(authenticated)
		h.Shop.Routes(r)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticated)
		h.Wallet.EnrollmentRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(superAdmin)
			h.Admin.Routes(r)
			h.Wallet.AdminRoutes(r)
			h.User.AdminRoutes(r)
		})
	})

	return router
}
