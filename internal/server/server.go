package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harukigames/gamecore/internal/catalog"
	"github.com/harukigames/gamecore/internal/character"
	"github.com/harukigames/gamecore/internal/database"
	"github.com/harukigames/gamecore/internal/equipment"
	"github.com/harukigames/gamecore/internal/experience"
	"github.com/harukigames/gamecore/internal/handler"
	"github.com/harukigames/gamecore/internal/inventory"
	"github.com/harukigames/gamecore/internal/jobclass"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/metrics"
	"github.com/harukigames/gamecore/internal/skilltree"
)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// Services bundles the service dependencies of the HTTP layer
type Services struct {
	JobClass   jobclass.Service
	Catalog    catalog.Service
	Character  character.Service
	Experience experience.Service
	SkillTree  skilltree.Service
	Equipment  equipment.Service
	Inventory  inventory.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Job class catalog
		r.Route("/job-classes", func(r chi.Router) {
			r.Get("/", handler.HandleListJobClasses(svcs.JobClass))
			r.Post("/", handler.HandleCreateJobClass(svcs.JobClass))
			r.Get("/{id}", handler.HandleGetJobClass(svcs.JobClass))
			r.Put("/{id}", handler.HandleUpdateJobClass(svcs.JobClass))
			r.Get("/{id}/stats", handler.HandleJobClassStats(svcs.JobClass))
			r.Get("/{id}/usage", handler.HandleJobClassUsage(svcs.JobClass))
		})

		// Characters and per-character progression
		r.Route("/characters", func(r chi.Router) {
			r.Post("/", handler.HandleCreateCharacter(svcs.Character))
			r.Get("/{id}", handler.HandleGetCharacter(svcs.Character))
			r.Patch("/{id}/add-experience", handler.HandleAddExperience(svcs.Experience))
			r.Post("/{id}/switch-job", handler.HandleSwitchJob(svcs.Character))
			r.Post("/{id}/unlock-job-class", handler.HandleUnlockJobClass(svcs.Character))
			r.Get("/{id}/job-classes", handler.HandleGetJobClassProgress(svcs.Experience))
			r.Get("/{id}/experience-audits", handler.HandleGetExperienceAudits(svcs.Experience))
			r.Post("/{id}/skill-nodes/{nodeID}/unlock", handler.HandleUnlockSkillNode(svcs.SkillTree))
			r.Get("/{id}/skill-investments", handler.HandleGetSkillInvestments(svcs.SkillTree))
			r.Get("/{id}/items", handler.HandleListCharacterItems(svcs.Inventory))
			r.Get("/{id}/equipment", handler.HandleGetEquipment(svcs.Equipment))
		})

		// Skill lines
		r.Route("/skill-lines", func(r chi.Router) {
			r.Get("/", handler.HandleListSkillLines(svcs.SkillTree))
			r.Get("/{id}", handler.HandleGetSkillLine(svcs.SkillTree))
			r.Get("/{id}/summary", handler.HandleGetInvestmentSummary(svcs.SkillTree))
		})

		// Owned item actions
		r.Route("/character-items/{id}", func(r chi.Router) {
			r.Post("/equip", handler.HandleEquipItem(svcs.Equipment))
			r.Post("/unequip", handler.HandleUnequipItem(svcs.Equipment))
			r.Post("/move-to-warehouse", handler.HandleMoveToWarehouse(svcs.Inventory))
			r.Post("/move-to-inventory", handler.HandleMoveToInventory(svcs.Inventory))
			r.Post("/use", handler.HandleUseItem(svcs.Inventory))
		})

		// Item catalog
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleListItems(svcs.Catalog))
			r.Post("/", handler.HandleCreateItem(svcs.Catalog))
			r.Get("/{id}", handler.HandleGetItem(svcs.Catalog))
			r.Put("/{id}", handler.HandleUpdateItem(svcs.Catalog))
		})

		// Warehouses
		r.Route("/warehouses", func(r chi.Router) {
			r.Get("/", handler.HandleListWarehouses(svcs.Inventory))
			r.Post("/", handler.HandleCreateWarehouse(svcs.Inventory))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
