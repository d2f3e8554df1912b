package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"refdata/internal/domain"
)

// RefEntityService is what the handlers need from the service layer.
type RefEntityService interface {
	List(ctx context.Context, collection string) ([]domain.Entity, error)
	Get(ctx context.Context, collection, id string) (*domain.Entity, error)
	Save(ctx context.Context, collection string, e domain.Entity) (*domain.Entity, error)
	Delete(ctx context.Context, collection, id string) error
	Reorder(ctx context.Context, collection string, ids []string) error
}

// Deps carries the services the router depends on.
type Deps struct {
	RefSvc RefEntityService
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := entityHandlers{svc: deps.RefSvc}
	api := router.Group("/api")
	api.GET("/:collection", h.list)
	api.POST("/:collection", h.create)
	api.POST("/:collection/positions", h.reorder)
	api.GET("/:collection/:id", h.get)
	api.PUT("/:collection/:id", h.update)
	api.DELETE("/:collection/:id", h.remove)

	return router, nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
