package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seo-insight/backend/analyzer"
	"github.com/seo-insight/backend/apperr"
	"github.com/seo-insight/backend/config"
	"github.com/seo-insight/backend/fetcher"
	"github.com/seo-insight/backend/logging"
	"github.com/seo-insight/backend/metrics"
	"github.com/seo-insight/backend/middleware"
	"github.com/seo-insight/backend/stats"
)

type analyzeRequest struct {
	URL        string `json:"url"`
	Keyword    string `json:"keyword"`
	DeepImages bool   `json:"deep_images"`
}

type server struct {
	analyzer *analyzer.Analyzer
	stats    *stats.Storage
}

func setupGinMode(mode string) {
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	cfg := config.Load()

	logging.Init(os.Stdout, cfg.LogLevel)
	setupGinMode(cfg.GinMode)

	statsStorage, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		slog.Error("failed to initialize stats storage", "error", err)
		os.Exit(1)
	}
	defer statsStorage.Shutdown()

	pageFetcher := fetcher.New(cfg.Fetch)
	srv := &server{
		analyzer: analyzer.New(pageFetcher, cfg.ImageFetch),
		stats:    statsStorage,
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.Stats(statsStorage))
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", srv.analyzeURL)

		api.GET("/statistics", func(c *gin.Context) {
			current := statsStorage.GetCurrentStats()
			c.JSON(http.StatusOK, gin.H{
				"analyses":            current.Analyses,
				"errors":              current.Errors,
				"average_duration_ms": current.AverageDurationMs,
				"months":              statsStorage.GetAllMonths(),
			})
		})
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func (s *server) analyzeURL(c *gin.Context) {
	var request analyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "request body must be JSON with url and keyword fields",
			"code":  apperr.CodeInvalidParams,
		})
		return
	}

	start := time.Now()
	report, err := s.analyzer.Analyze(c.Request.Context(), request.URL, request.Keyword,
		analyzer.Options{DeepImages: request.DeepImages})
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()

		var appErr *apperr.Error
		if !errors.As(err, &appErr) {
			appErr = apperr.From(err)
		}
		slog.Warn("analysis failed", "url", request.URL, "code", appErr.Code, "error", err)
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, report)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
