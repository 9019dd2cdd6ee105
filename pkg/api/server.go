// Package api maps the JSON HTTP surface onto the cart, account and contact
// services.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "cupstory/docs"
	"cupstory/pkg/account"
	"cupstory/pkg/cart"
	"cupstory/pkg/contact"
	"cupstory/pkg/logger"
	"cupstory/pkg/metrics"
	"cupstory/pkg/otel"
)

// Deps are the collaborators of a Server. Metrics and MetricsHandler are
// optional.
type Deps struct {
	Carts          *cart.Service
	Accounts       *account.Service
	Contacts       contact.Sink
	Log            *logger.Logger
	Tracer         trace.Tracer
	Metrics        *metrics.ServerMetrics
	MetricsHandler http.Handler
	AllowedOrigin  string
}

// Server holds the HTTP handlers.
type Server struct {
	carts    *cart.Service
	accounts *account.Service
	contacts contact.Sink
	log      *logger.Logger
	tracer   trace.Tracer
	metrics  *metrics.ServerMetrics
	metricsH http.Handler
	origin   string
}

// New builds a Server from d.
func New(d Deps) *Server {
	origin := d.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return &Server{
		carts:    d.Carts,
		accounts: d.Accounts,
		contacts: d.Contacts,
		log:      d.Log,
		tracer:   d.Tracer,
		metrics:  d.Metrics,
		metricsH: d.MetricsHandler,
		origin:   origin,
	}
}

// Router returns the routed handler tree. Routes are registered on the root
// router so mux.CORSMethodMiddleware can list their methods.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.traceMiddleware)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	r.Use(mux.CORSMethodMiddleware(r))
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", welcomeHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/login", s.loginHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/register", s.registerHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/users", s.listUsersHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/cart", s.getCartHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/cart/add", s.addToCartHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/cart/clear", s.clearCartHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/contact", s.contactHandler).Methods(http.MethodPost, http.MethodOptions)

	if s.metricsH != nil {
		r.Handle("/metrics", s.metricsH).Methods(http.MethodGet)
	}
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.ExtractHTTP(r.Context(), r.Header)
		if s.tracer != nil {
			ctx = otel.InjectTracing(ctx, s.tracer)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// corsMiddleware runs after mux.CORSMethodMiddleware has set the allowed
// methods and answers preflight requests itself.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
