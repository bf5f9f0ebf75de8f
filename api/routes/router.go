package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fondita/fondita-backend/api/controllers"
	"github.com/fondita/fondita-backend/api/middleware"
	"github.com/fondita/fondita-backend/internal/audit"
	authsvc "github.com/fondita/fondita-backend/internal/auth"
	catalogsvc "github.com/fondita/fondita-backend/internal/catalog"
	ordersvc "github.com/fondita/fondita-backend/internal/orders"
	"github.com/fondita/fondita-backend/pkg/config"
	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
	"github.com/fondita/fondita-backend/pkg/logger"
	"github.com/fondita/fondita-backend/pkg/metrics"
	pkgredis "github.com/fondita/fondita-backend/pkg/redis"
)

type pinger interface {
	Ping(context.Context) error
}

type customerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type adminFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

type auditRecorder interface {
	Record(audit.Entry)
}

// Params carries everything the router wires together.
type Params struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DB    pinger
	Cache pinger

	RateLimitStore   rateLimiterStore
	IdempotencyStore pkgredis.IdempotencyStore

	Customers customerFinder
	Admins    adminFinder

	AuthService    authsvc.Service
	CatalogService catalogsvc.Service
	OrderService   ordersvc.Service

	Audit auditRecorder
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"registro",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	requireAdmin := middleware.RequireAdmin(cfg.JWT, p.Admins, logg)
	adminRoles := middleware.RequireRole(logg,
		enums.AdminRoleSuperAdmin,
		enums.AdminRoleAdmin,
		enums.AdminRoleModerator,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Cache, logg))
	})

	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.RateLimitStore, logg)).
			Post("/login", controllers.Login(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.RateLimitStore, logg)).
			Post("/registro", controllers.Register(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.RateLimitStore, logg)).
			Post("/admin/login", controllers.AdminLogin(p.AuthService, logg))
		r.With(requireAdmin, middleware.AuditLog(p.Audit, "crear_admin")).
			Post("/admin/crear", controllers.CreateAdmin(p.AuthService, logg))
		r.Get("/verificar", controllers.VerifyToken(p.AuthService, logg))
	})

	r.Route("/api/productos", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(p.CatalogService, logg))
		r.Get("/{productoID}", controllers.GetProduct(p.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin, adminRoles)
			r.With(middleware.AuditLog(p.Audit, "crear_producto")).
				Post("/", controllers.CreateProduct(p.CatalogService, logg))
			r.With(middleware.AuditLog(p.Audit, "actualizar_producto")).
				Put("/{productoID}", controllers.UpdateProduct(p.CatalogService, logg))
			r.With(middleware.AuditLog(p.Audit, "cambiar_disponibilidad")).
				Put("/{productoID}/disponibilidad", controllers.SetProductAvailability(p.CatalogService, logg))
			r.With(middleware.AuditLog(p.Audit, "eliminar_producto")).
				Delete("/{productoID}", controllers.DeleteProduct(p.CatalogService, logg))
		})
	})

	r.Route("/api/pedidos", func(r chi.Router) {
		r.With(
			middleware.OptionalAuth(cfg.JWT, p.Customers, logg),
			middleware.Idempotency(p.IdempotencyStore, cfg.Idempotency.OrderTTL, logg),
		).Post("/", controllers.CreateOrder(p.OrderService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin, adminRoles)
			r.Get("/", controllers.ListOrders(p.OrderService, logg))
			r.With(middleware.AuditLog(p.Audit, "cambiar_estado_pedido")).
				Put("/{pedidoID}/estado", controllers.UpdateOrderStatus(p.OrderService, logg))
		})
	})

	return r
}
