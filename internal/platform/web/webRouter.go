package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"enigmaCrackerBackend/internal/pkg/logging"
)

var tracer = otel.Tracer("enigmaCrackerBackend/internal/platform/web")

func SetupRoutes(r *gin.Engine, handler *WebHandler) {
	api := r.Group("/api/v1")
	{
		api.GET("/spec", handler.GetSpecification)
		api.POST("/encrypt", handler.Encrypt)
		api.POST("/crack", handler.StartCracking)
		api.GET("/jobs", handler.ListJobs)
		api.GET("/jobs/:jobId", handler.GetJob)
		api.GET("/jobs/:jobId/statistics", handler.GetStatistics)
		api.POST("/jobs/:jobId/stop", handler.StopCracking)
	}
}

// NewRouter returns an engine with recovery, tracing, request logging and
// the API routes installed.
func NewRouter(handler *WebHandler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), tracing(), requestLogger(logging.OrNop(logger)))
	SetupRoutes(r, handler)
	return r
}

// tracing starts a server span per request and hands it down through the
// request context, so crack job spans become its children.
func tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("url.path", c.Request.URL.Path),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		logger.Info("request", fields...)
	}
}
