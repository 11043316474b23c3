package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/handler/api"
	"ration-slot-booking/internal/handler/middleware"
	"ration-slot-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Slot        *api.SlotHandler
	Booking     *api.BookingHandler
	Entitlement *api.EntitlementHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	slotHandler *api.SlotHandler,
	bookingHandler *api.BookingHandler,
	entitlementHandler *api.EntitlementHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, Handlers{
		Slot:        slotHandler,
		Booking:     bookingHandler,
		Entitlement: entitlementHandler,
	}, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be outermost to catch panics from all other middleware
	engine.Use(logger.Recovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger.GetSlogLogger()))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(logger.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	beneficiary := authMiddleware.RequireRole(user.RoleBeneficiary)
	shopkeeper := authMiddleware.RequireRole(user.RoleShopkeeper)
	admin := authMiddleware.RequireRole(user.RoleAdmin)
	limited := rateLimiter.Handler()

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		shops := apiGroup.Group("/shops/:shopId")
		addRoutes(shops, []route{
			{Method: http.MethodGet, Path: "/slots", Handler: h.Slot.ListByShop},
			{Method: http.MethodPost, Path: "/slots", Handler: h.Slot.Create, Mw: []gin.HandlerFunc{shopkeeper}},
			{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.ListByShop},
		})

		slots := apiGroup.Group("/slots")
		addRoutes(slots, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Slot.ListAll, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Slot.Get},
		})

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: []gin.HandlerFunc{beneficiary, limited}},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.ListAll, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPost, Path: "/verify", Handler: h.Booking.Verify, Mw: []gin.HandlerFunc{shopkeeper, limited}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.UpdateStatus},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/users/:userId/bookings", Handler: h.Booking.ListByUser},
			{Method: http.MethodGet, Path: "/me/entitlement", Handler: h.Entitlement.Me, Mw: []gin.HandlerFunc{beneficiary}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
