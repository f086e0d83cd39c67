package chi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/logger"
	chatuc "github.com/kailas-cloud/shopsense/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/shopsense/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/shopsense/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/shopsense/internal/usecase/search"
	trackuc "github.com/kailas-cloud/shopsense/internal/usecase/track"
	"github.com/kailas-cloud/shopsense/internal/validation"
)

const trackedMessage = "Activity tracked"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the shopping assistant HTTP API.
type Server struct {
	catalog       *product.Catalog
	search        *searchuc.Service
	recommend     *recommenduc.Service
	track         *trackuc.Service
	chat          *chatuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// Services groups the use cases the server dispatches to.
type Services struct {
	Search    *searchuc.Service
	Recommend *recommenduc.Service
	Track     *trackuc.Service
	Chat      *chatuc.Service
	Health    *healthuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(catalog *product.Catalog, svc Services, logger *zap.Logger) *Server {
	s := &Server{
		catalog:   catalog,
		search:    svc.Search,
		recommend: svc.Recommend,
		track:     svc.Track,
		chat:      svc.Chat,
		health:    svc.Health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, CodeProductNotFound),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/recommendations", s.Recommendations)
		r.Post("/track", s.Track)
		r.Post("/chatbot", s.Chatbot)
		r.Get("/products", s.ListProducts)
		r.Get("/products/{id}", s.GetProduct)
	})
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !s.decode(w, r, &req) {
		return
	}

	results, err := s.search.Search(r.Context(), req.UserID, req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: searchItems(results)})
}

// Recommendations handles POST /api/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !s.decode(w, r, &req) {
		return
	}

	results, err := s.recommend.Recommend(r.Context(), req.UserID, req.ProductID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendResponse{Recommendations: recommendItems(results)})
}

// Track handles POST /api/track.
func (s *Server) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.track.Track(r.Context(), req.UserID, req.Type, req.ProductID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TrackResponse{Success: true, Message: trackedMessage})
}

// Chatbot handles POST /api/chatbot.
func (s *Server) Chatbot(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !s.decode(w, r, &req) {
		return
	}

	reply, err := s.chat.Chat(r.Context(), req.UserID, req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Message:  reply.Message,
		Products: chatItems(reply.Results),
	})
}

// ListProducts handles GET /api/products with an optional category filter.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := s.catalog.All()
	if category := r.URL.Query().Get("category"); category != "" {
		products = s.catalog.ByCategory(category)
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = productResponse(&products[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// GetProduct handles GET /api/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productResponse(&p))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// decode reads and validates the JSON body. It writes the error response itself.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validation.Struct(dst); err != nil {
		s.handleDomainError(w, r, err)
		return false
	}
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// validationHandler reports which field was rejected.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, validationMessage(err))
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logger.FromContext(r.Context()).Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
