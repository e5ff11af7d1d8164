package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayly/internal/infra/config"
	"stayly/internal/infra/obs"
)

type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type PropertyHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Quote(c *gin.Context)
}

type PricingHTTP interface {
	ListPeriods(c *gin.Context)
	CreatePeriod(c *gin.Context)
	UpdatePeriod(c *gin.Context)
	DeletePeriod(c *gin.Context)
}

type ReservationHTTP interface {
	Create(c *gin.Context)
	Reschedule(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	ListMine(c *gin.Context)
}

type Handlers struct {
	Auth           AuthHTTP
	Property       PropertyHTTP
	Pricing        PricingHTTP
	Reservation    ReservationHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Property != nil {
		api.GET("/properties/:id/quote", h.Property.Quote)
		hostGroup := api.Group("/host/properties")
		hostGroup.GET("", h.Property.List)
		hostGroup.POST("", h.Property.Create)
		hostGroup.GET("/:id", h.Property.Get)
		hostGroup.PUT("/:id", h.Property.Update)
		hostGroup.DELETE("/:id", h.Property.Delete)
		if h.Pricing != nil {
			hostGroup.GET("/:id/price-periods", h.Pricing.ListPeriods)
			hostGroup.POST("/:id/price-periods", h.Pricing.CreatePeriod)
		}
	}
	if h.Pricing != nil {
		api.PATCH("/host/price-periods/:id", h.Pricing.UpdatePeriod)
		api.DELETE("/host/price-periods/:id", h.Pricing.DeletePeriod)
	}
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Create)
		api.POST("/reservations/:id/reschedule", h.Reservation.Reschedule)
		api.POST("/reservations/:id/confirm", h.Reservation.Confirm)
		api.POST("/reservations/:id/cancel", h.Reservation.Cancel)
		api.GET("/me/reservations", h.Reservation.ListMine)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
