package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spacebook/backend/internal/db"
	"github.com/spacebook/backend/internal/logging"
	"github.com/spacebook/backend/internal/model"
	"github.com/spacebook/backend/internal/ratelimit"
	"github.com/spacebook/backend/internal/service"
)

const spacesPageLimit = 20

// Resources bundles the services behind the bearer-protected CRUD routes.
type Resources struct {
	Spaces        *service.ResourceService[model.Space]
	Bookings      *service.ResourceService[model.Booking]
	Rentals       *service.ResourceService[model.Rental]
	Payments      *service.ResourceService[model.Payment]
	Notifications *service.ResourceService[model.Notification]
}

// NewResources builds the resource services on top of a bun handle.
func NewResources(pg *db.Postgres) Resources {
	return Resources{
		Spaces:        service.NewResourceService[model.Space](db.NewStore[model.Space](pg.DB), spacesPageLimit),
		Bookings:      service.NewResourceService[model.Booking](db.NewStore[model.Booking](pg.DB), model.DefaultPageLimit),
		Rentals:       service.NewResourceService[model.Rental](db.NewStore[model.Rental](pg.DB), model.DefaultPageLimit),
		Payments:      service.NewResourceService[model.Payment](db.NewStore[model.Payment](pg.DB), model.DefaultPageLimit),
		Notifications: service.NewResourceService[model.Notification](db.NewStore[model.Notification](pg.DB), model.DefaultPageLimit),
	}
}

type RouterDeps struct {
	Auth           *service.AuthService
	Resources      Resources
	Limiter        ratelimit.Limiter
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(logger))
	r.Use(CORSMiddleware(deps.AllowedOrigins, true))

	r.GET("/", Root)
	r.GET("/ping", Ping)
	r.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(deps.Auth, logger)
	requireAuth := AuthMiddleware(deps.Auth, logger)

	auth := r.Group("/default-auth")
	{
		auth.POST("/register", RateLimit(limiter, "register", logger), authHandler.Register)
		auth.POST("/authenticate", RateLimit(limiter, "authenticate", logger), authHandler.Authenticate)
		auth.POST("/auth/google", RateLimit(limiter, "google", logger), authHandler.GoogleAuth)
		auth.POST("/auth/google/code", RateLimit(limiter, "google", logger), authHandler.GoogleCode)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	res := deps.Resources

	if res.Spaces != nil {
		spaces := NewResourceHandler[model.Space, model.SpaceCreate, model.SpaceEdit](res.Spaces, logger).
			WithListFilter(spaceTypeFilter)
		spaces.Register(r.Group("/spaces", requireAuth))
	}

	if res.Bookings != nil {
		bookings := NewResourceHandler[model.Booking, model.BookingCreate, model.BookingEdit](res.Bookings, logger)
		g := r.Group("/bookings", requireAuth)
		g.GET("/user/:user_id", RequireOwner("user_id", logger), bookings.ListByUser)
		bookings.Register(g)
	}

	if res.Rentals != nil {
		rentals := NewResourceHandler[model.Rental, model.RentalCreate, model.RentalEdit](res.Rentals, logger)
		g := r.Group("/rentals", requireAuth)
		g.GET("/search", rentals.SearchByPeriod)
		rentals.Register(g)
	}

	if res.Payments != nil {
		payments := NewResourceHandler[model.Payment, model.PaymentCreate, model.PaymentEdit](res.Payments, logger)
		payments.Register(r.Group("/payments", requireAuth))
	}

	if res.Notifications != nil {
		notifications := NewResourceHandler[model.Notification, model.NotificationCreate, model.NotificationEdit](res.Notifications, logger)
		g := r.Group("/notifications", requireAuth)
		g.GET("/search", notifications.SearchByReadStatus)
		notifications.Register(g)
	}

	return r
}
