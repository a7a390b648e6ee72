// Package api exposes the storefront over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "nostalgiajars/docs"
	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/identity"
	"nostalgiajars/pkg/live"
	"nostalgiajars/pkg/logger"
	"nostalgiajars/pkg/metrics"
	"nostalgiajars/pkg/otel"
	"nostalgiajars/pkg/storefront"
)

// Config lists the collaborators the API is built from. All fields are required.
type Config struct {
	Log        *logger.Logger
	Catalog    *catalog.Catalog
	Registry   storefront.Registry
	Verifier   identity.Verifier
	CodeSender identity.CodeSender
	Hub        *live.Hub
	Metrics    *metrics.Metrics
	Tracer     trace.Tracer
	VisitorTTL time.Duration

	// SecureCookie marks the visitor cookie Secure; set when serving TLS.
	SecureCookie bool
}

// API holds the handlers' dependencies.
type API struct {
	log          *logger.Logger
	catalog      *catalog.Catalog
	registry     storefront.Registry
	verifier     identity.Verifier
	codes        identity.CodeSender
	hub          *live.Hub
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	visitorTTL   time.Duration
	secureCookie bool

	locks keyedMutex
}

// New builds the router.
func New(cfg Config) http.Handler {
	a := &API{
		log:          cfg.Log,
		catalog:      cfg.Catalog,
		registry:     cfg.Registry,
		verifier:     cfg.Verifier,
		codes:        cfg.CodeSender,
		hub:          cfg.Hub,
		metrics:      cfg.Metrics,
		tracer:       cfg.Tracer,
		visitorTTL:   cfg.VisitorTTL,
		secureCookie: cfg.SecureCookie,
	}

	r := mux.NewRouter()
	r.Use(a.traceMiddleware)
	r.Use(a.metrics.Middleware)

	r.HandleFunc("/healthz", a.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	r.HandleFunc("/products", a.listProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/products/featured", a.featuredProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", a.getProductHandler).Methods(http.MethodGet)

	ws := r.NewRoute().Subrouter()
	ws.Use(a.liveMiddleware)
	ws.HandleFunc("/ws", a.liveHandler).Methods(http.MethodGet)

	v := r.NewRoute().Subrouter()
	v.Use(a.visitorMiddleware)

	v.HandleFunc("/basket", a.getBasketHandler).Methods(http.MethodGet)
	v.HandleFunc("/basket", a.clearBasketHandler).Methods(http.MethodDelete)
	v.HandleFunc("/basket/items", a.addItemHandler).Methods(http.MethodPost)
	v.HandleFunc("/basket/items/{id:[0-9]+}", a.setQuantityHandler).Methods(http.MethodPut)
	v.HandleFunc("/basket/items/{id:[0-9]+}", a.removeItemHandler).Methods(http.MethodDelete)
	v.HandleFunc("/basket/show", a.showBasketHandler).Methods(http.MethodPost)
	v.HandleFunc("/basket/hide", a.hideBasketHandler).Methods(http.MethodPost)

	v.HandleFunc("/session", a.getSessionHandler).Methods(http.MethodGet)
	v.HandleFunc("/session/prompt/show", a.showPromptHandler).Methods(http.MethodPost)
	v.HandleFunc("/session/prompt/hide", a.hidePromptHandler).Methods(http.MethodPost)
	v.HandleFunc("/login/otp/code", a.sendCodeHandler).Methods(http.MethodPost)
	v.HandleFunc("/login/otp/verify", a.verifyCodeHandler).Methods(http.MethodPost)
	v.HandleFunc("/login/google", a.googleLoginHandler).Methods(http.MethodPost)
	v.HandleFunc("/logout", a.logoutHandler).Methods(http.MethodPost)
	v.HandleFunc("/profile", a.profileHandler).Methods(http.MethodGet)

	v.HandleFunc("/quiz", a.getQuizHandler).Methods(http.MethodGet)
	v.HandleFunc("/quiz/heat", a.answerHeatHandler).Methods(http.MethodPost)
	v.HandleFunc("/quiz/mood", a.answerMoodHandler).Methods(http.MethodPost)
	v.HandleFunc("/quiz/reset", a.resetQuizHandler).Methods(http.MethodPost)

	v.HandleFunc("/state", a.getStateHandler).Methods(http.MethodGet)

	return r
}

func (a *API) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), a.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
