package router

import (
	"net/http"
	"strings"

	"pnsMembership/internal/config"
	handlers "pnsMembership/internal/handler"
	"pnsMembership/internal/metrics"
	"pnsMembership/internal/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// New builds the route table and wraps it in the global middleware.
func New(h *handlers.Handlers, reg *metrics.Registry, cfg *config.Config, logger *zap.SugaredLogger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, "Not found", http.StatusNotFound)
	})
	if reg != nil {
		r.Use(middleware.Metrics(reg))
		r.Handle("/metrics", reg.Handler()).Methods(http.MethodGet)
	}

	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit.PerSecond, cfg.LoginRateLimit.Burst)
	member := middleware.RequireSession(h.MemberSessions)
	staff := middleware.RequireSession(h.StaffSessions)

	r.HandleFunc("/health", h.Health)

	api := r.PathPrefix("/api").Subrouter()

	// members
	api.HandleFunc("/auth/register", h.Register)
	api.Handle("/auth/login", limiter.Middleware(http.HandlerFunc(h.MemberLogin)))
	api.HandleFunc("/auth/logout", h.MemberLogout)
	api.Handle("/profile", member(http.HandlerFunc(h.GetProfile)))
	api.Handle("/profile/photo", member(http.HandlerFunc(h.ChangePhoto)))

	// staff
	api.Handle("/admin/login", limiter.Middleware(http.HandlerFunc(h.StaffLogin)))
	api.HandleFunc("/admin/logout", h.StaffLogout)

	// stats is registered ahead of {id} so it is not read as an id
	api.Handle("/memberships/stats", staff(http.HandlerFunc(h.MembershipStats)))
	api.Handle("/memberships", staff(http.HandlerFunc(h.Memberships)))
	api.Handle("/memberships/{id}", staff(http.HandlerFunc(h.Membership)))

	api.Handle("/admin/users", staff(http.HandlerFunc(h.StaffUsers)))
	api.Handle("/admin/users/{id}", staff(http.HandlerFunc(h.StaffUser)))
	api.Handle("/admin/posts", staff(http.HandlerFunc(h.Posts)))
	api.Handle("/admin/posts/{id}", staff(http.HandlerFunc(h.Post)))
	api.Handle("/admin/upload", staff(http.HandlerFunc(h.UploadImage)))

	api.Handle("/dashboard/stats", staff(http.HandlerFunc(h.DashboardStats)))
	api.Handle("/dashboard/previews", staff(http.HandlerFunc(h.UploadPreview)))
	api.HandleFunc("/previews/latest", h.LatestPreview)

	prefix := cfg.Uploads.PublicPrefix + "/"
	r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, noListing(http.FileServer(http.Dir(cfg.Uploads.Dir)))))

	return middleware.Chain(r,
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.CORS(cfg.AllowedOrigins),
	)
}

// noListing hides directory indexes of the uploads folder.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			handlers.WriteError(w, "Not found", http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
