package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmtrack/farmtrack-backend/api/controllers"
	"github.com/farmtrack/farmtrack-backend/api/middleware"
	adminsvc "github.com/farmtrack/farmtrack-backend/internal/admin"
	"github.com/farmtrack/farmtrack-backend/internal/auth"
	cropsvc "github.com/farmtrack/farmtrack-backend/internal/crops"
	productsvc "github.com/farmtrack/farmtrack-backend/internal/products"
	salesvc "github.com/farmtrack/farmtrack-backend/internal/sales"
	"github.com/farmtrack/farmtrack-backend/pkg/auth/session"
	"github.com/farmtrack/farmtrack-backend/pkg/config"
	"github.com/farmtrack/farmtrack-backend/pkg/db"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/farmtrack/farmtrack-backend/pkg/logger"
	"github.com/farmtrack/farmtrack-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	RedisClient    *redis.Client
	SessionManager sessionManager
	AuthService    auth.Service
	RegisterSvc    auth.RegisterService
	CropService    cropsvc.Service
	SaleService    salesvc.Service
	ProductService productsvc.Service
	AdminService   adminsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginPhoneLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterPhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisClient))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)).
			Post("/register", controllers.AuthRegister(deps.RegisterSvc, deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Route("/crops", func(r chi.Router) {
			r.Get("/", controllers.ListCrops(deps.CropService, logg))
			r.Post("/", controllers.CreateCrop(deps.CropService, logg))
			r.Get("/{cropID}", controllers.GetCrop(deps.CropService, logg))
			r.Patch("/{cropID}", controllers.UpdateCrop(deps.CropService, logg))
			r.Delete("/{cropID}", controllers.DeleteCrop(deps.CropService, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(deps.SaleService, logg))
			r.Post("/", controllers.RecordSale(deps.SaleService, logg))
			r.Patch("/{saleID}", controllers.UpdateSale(deps.SaleService, logg))
			r.Delete("/{saleID}", controllers.DeleteSale(deps.SaleService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.ProductService, logg))
			r.Patch("/{productID}", controllers.UpdateProduct(deps.ProductService, logg))
			r.Delete("/{productID}", controllers.DeleteProduct(deps.ProductService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.FarmerRoleAdmin), logg))
			r.Get("/overview", controllers.AdminOverview(deps.AdminService, logg))
		})
	})

	return r
}
