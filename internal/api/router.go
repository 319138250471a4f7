package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crudgen/internal/render"
)

// NewRouter собирает gin с маршрутами превью. Engine только читается,
// поэтому один экземпляр обслуживает все запросы.
func NewRouter(engine *render.Engine, storage *Storage, log *zap.Logger, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	if len(corsOrigins) > 0 {
		r.Use(cors.New(corsConfig(corsOrigins)))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/meta/types", MetaTypesHandler(engine))
		apiGroup.POST("/parse/field", ParseFieldHandler())
		apiGroup.POST("/parse/relationship", ParseRelationshipHandler())
		apiGroup.POST("/preview", PreviewHandler(engine, storage, log))
		apiGroup.GET("/preview/:id", GetPreviewHandler(storage))
		apiGroup.GET("/preview/:id/artifacts/:kind", ArtifactHandler(storage))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// NewServer — http.Server с таймаутами для graceful shutdown.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
