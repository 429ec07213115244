// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/auth"
	"github.com/pawpal/pawpal-backend/internal/config"
	"github.com/pawpal/pawpal-backend/internal/http/handlers"
	"github.com/pawpal/pawpal-backend/internal/http/middleware"
	"github.com/pawpal/pawpal-backend/internal/repo"
	"github.com/pawpal/pawpal-backend/internal/storage"
)

// uploadBodyBytes caps image-upload requests. It sits above the 5 MiB image
// limit enforced by the handler to leave room for multipart framing.
const uploadBodyBytes = 6 << 20

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), authentication and
// rate limiting, CORS and security headers, health and metrics endpoints, and
// then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Optional authentication (before the rate limiter so its key is per-user)
//  8. Rate limiter (per user/IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, blobs storage.BlobStore, verifier auth.IdentityVerifier, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB; image uploads get their own cap)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Compress JSON responses; uploaded images are already compressed.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`^` + cfg.MediaURLPrefix + `/.*`})))

	// 7) Optional authentication: attach the caller when a valid bearer
	// token is presented, so downstream rate limiting and handlers can
	// key on the user. Protected routes add RequireAuth on top.
	resolve := userResolver(db)
	r.Use(middleware.OptionalAuth(verifier, resolve))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	exposed := []string{
		"X-Request-ID", "Content-Length", "ETag",
		"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After",
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match"},
			ExposeHeaders:    exposed,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match"},
			ExposeHeaders:    exposed,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Uploaded media is served straight off the blob directory.
	if cfg.MediaURLPrefix != "" && cfg.MediaPath != "" {
		r.Static(cfg.MediaURLPrefix, cfg.MediaPath)
	}

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Write quotas share one counter store; Redis when configured so
	// several instances enforce a single budget, in-process otherwise.
	var buckets middleware.BucketStore = middleware.NewMemoryBucketStore()
	if cfg.RedisAddr != "" {
		buckets = middleware.NewRedisBucketStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	quota := func(bucket string) gin.HandlerFunc {
		return middleware.WriteQuota(middleware.QuotaOptions{
			Bucket:   bucket,
			Capacity: cfg.QuotaCapacity,
			Window:   cfg.QuotaWindow,
			Store:    buckets,
		})
	}

	h := handlers.New(db, blobs)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Browse surface: works anonymously, contact details unlock with auth.
		api.GET("/dogs", h.ListDogs)
		api.GET("/dogs/:id", h.GetDog)
		api.GET("/tags/personality", h.ListPersonalityTags)

		authed := api.Group("", middleware.RequireAuth(verifier, resolve))
		{
			authed.POST("/auth/bootstrap-user", h.BootstrapUser)

			authed.POST("/dogs", quota("dogs"), h.CreateDog)
			authed.GET("/dogs/:id/my-request", h.MyRequestForDog)

			authed.POST("/uploads/images", quota("uploads"), h.UploadImage)

			authed.POST("/adoptions", quota("adoptions"), h.CreateAdoption)
			authed.GET("/adoptions/incoming", h.ListIncomingAdoptions)
			authed.GET("/adoptions/outgoing", h.ListOutgoingAdoptions)
			authed.PATCH("/adoptions/:id", h.UpdateAdoption)

			authed.POST("/reports", quota("reports"), h.CreateReport)

			admin := authed.Group("/admin", middleware.RequireAdmin())
			{
				admin.GET("/reports", h.ListReports)
				admin.PATCH("/reports/:id", h.ActionReport)
				admin.GET("/dogs", h.AdminListDogs)
				admin.PATCH("/dogs/:id/visibility", h.SetDogVisibility)
				admin.PATCH("/dogs/:id/status", h.OverrideDogStatus)
			}
		}
	}
}

// userResolver adapts the user repository to the middleware's resolver shape.
// Missing rows (pre-bootstrap identities) come back empty, not as errors.
func userResolver(db *gorm.DB) middleware.UserResolver {
	return func(ctx context.Context, authUserID string) (string, string, error) {
		u, err := repo.GetUserByAuthID(ctx, db, authUserID)
		if err != nil {
			return "", "", nil
		}
		return u.ID, u.Role, nil
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. The image-upload route
// gets the larger uploadBodyBytes cap instead. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := maxBytes
		if strings.HasSuffix(c.FullPath(), "/uploads/images") {
			limit = uploadBodyBytes
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
