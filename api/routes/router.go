package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alunakitchen/pickup-backend/api/controllers"
	"github.com/alunakitchen/pickup-backend/api/middleware"
	authsvc "github.com/alunakitchen/pickup-backend/internal/auth"
	cartsvc "github.com/alunakitchen/pickup-backend/internal/cart"
	checkoutsvc "github.com/alunakitchen/pickup-backend/internal/checkout"
	menusvc "github.com/alunakitchen/pickup-backend/internal/menu"
	orderssvc "github.com/alunakitchen/pickup-backend/internal/orders"
	profilessvc "github.com/alunakitchen/pickup-backend/internal/profiles"
	"github.com/alunakitchen/pickup-backend/pkg/auth/session"
	"github.com/alunakitchen/pickup-backend/pkg/config"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
	"github.com/alunakitchen/pickup-backend/pkg/metrics"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	HealthChecks map[string]controllers.Pinger

	AuthService     authsvc.Service
	MenuService     menusvc.Service
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	ProfileService  profilessvc.Service
	OrdersService   orderssvc.Service
	Console         *orderssvc.Console

	WSHandler http.HandlerFunc
}

// NewRouter wires middleware, public routes, customer routes and the
// operator console routes.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.RequestLogger(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Get("/healthz", controllers.Health(deps.HealthChecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if deps.WSHandler != nil {
		r.Get("/ws/orders", deps.WSHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", controllers.Signup(deps.AuthService, logg))
			r.Post("/login", controllers.Login(deps.AuthService, logg))
			r.With(middleware.Authenticate(cfg.JWT, deps.Sessions, logg)).
				Post("/logout", controllers.Logout(deps.AuthService, logg))
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(deps.MenuService, logg))
			r.Get("/{itemId}", controllers.MenuItem(deps.MenuService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart.SessionTTL, cfg.App.IsProd()))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.CartService, logg))
				r.Delete("/", controllers.CartClear(deps.CartService, logg))
				r.Put("/overrides", controllers.CartSetOverrides(deps.CartService, logg))
				r.Post("/items/{itemId}", controllers.CartAddItem(deps.CartService, logg))
				r.Post("/items/{itemId}/increment", controllers.CartIncrement(deps.CartService, logg))
				r.Post("/items/{itemId}/decrement", controllers.CartDecrement(deps.CartService, logg))
				r.Put("/items/{itemId}/quantity", controllers.CartSetQuantity(deps.CartService, logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.CartService, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(cfg.JWT, deps.Sessions, logg))

				r.Route("/checkout", func(r chi.Router) {
					r.Get("/", controllers.CheckoutResolve(deps.CheckoutService, logg))
					r.Post("/", controllers.CheckoutSubmit(deps.CheckoutService, logg))
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWT, deps.Sessions, logg))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileGet(deps.ProfileService, logg))
				r.Put("/", controllers.ProfileUpdate(deps.ProfileService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersListMine(deps.OrdersService, logg))
				r.Get("/{orderId}", controllers.OrdersGetMine(deps.OrdersService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.Console, logg))
			r.Post("/refresh", controllers.AdminOrdersRefresh(deps.Console, logg))
			r.Post("/{orderId}/transition", controllers.AdminOrderTransition(deps.Console, logg))
		})
	})

	return r
}
