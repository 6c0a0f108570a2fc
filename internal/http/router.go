package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/vpsfleet/inventory-service/internal/config"
)

type Server struct {
	router  *gin.Engine
	handler *Handler
	cfg     *config.Config
	db      *pgxpool.Pool
}

// Mutation rate limiter: per client, generous enough for interactive use.
var mutationRateLimiter = NewRateLimiter(120, time.Minute)

func NewServer(cfg *config.Config, db *pgxpool.Pool, inventory Inventory, logger *logrus.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))

	s := &Server{
		router:  router,
		handler: NewHandler(inventory),
		cfg:     cfg,
		db:      db,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "inventory-service",
		})
	})

	api := s.router.Group("/api/v1")
	{
		// VPS
		api.GET("/vps", s.handler.ListVPS)
		api.POST("/vps", RateLimitMiddleware(mutationRateLimiter), s.handler.CreateVPS)

		// Accounts under a VPS
		api.GET("/vps/:id/accounts", s.handler.ListAccounts)
		api.POST("/vps/:id/accounts", RateLimitMiddleware(mutationRateLimiter), s.handler.CreateAccount)

		// Account lifecycle + metadata
		api.DELETE("/accounts/:id", s.handler.DeleteAccount)
		api.GET("/accounts/:id/info", s.handler.GetAccountInfo)
		api.PATCH("/accounts/:id/info", s.handler.UpdateAccountInfo)

		// Proxies
		api.GET("/accounts/:id/proxies", s.handler.ListProxies)
		api.POST("/accounts/:id/proxies", RateLimitMiddleware(mutationRateLimiter), s.handler.AddProxies)
		api.DELETE("/proxies/:id", s.handler.DeleteProxy)

		// Payment profiles
		api.GET("/payment-profiles", s.handler.ListPaymentProfiles)
		api.POST("/payment-profiles", RateLimitMiddleware(mutationRateLimiter), s.handler.CreatePaymentProfile)
	}

	// DB browser, only when an admin key is configured
	if s.cfg.Admin.APIKey != "" {
		admin := s.router.Group("/api/admin")
		admin.Use(AdminAuthMiddleware(s.cfg.Admin.APIKey))
		{
			dbAdminHandler := NewDBAdminHandler(s.db, "public")
			dbGroup := admin.Group("/db")
			{
				dbGroup.GET("/tables", dbAdminHandler.ListTables)
				dbGroup.GET("/tables/:table/schema", dbAdminHandler.GetTableSchema)
				dbGroup.GET("/tables/:table/rows", dbAdminHandler.QueryRows)
			}
		}
	}
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
