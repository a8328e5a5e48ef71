package handler

import (
	"net/http"

	"videohub/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// route is one row of the API table. Access is enforced by middleware.Gate
// before the handler runs.
type route struct {
	method  string
	path    string
	access  middleware.Access
	handler gin.HandlerFunc
}

type Handlers struct {
	Auth         *AuthHandler
	Videos       *VideoHandler
	Interactions *InteractionHandler
	Genres       *GenreHandler
	Media        *MediaHandler
	Health       *HealthHandler
}

// routes is the permission table of the API, relative to /api.
func routes(h Handlers) []route {
	return []route{
		{http.MethodPost, "/auth/register", middleware.AccessCredentials, h.Auth.Register},
		{http.MethodPost, "/auth/login", middleware.AccessCredentials, h.Auth.Login},
		{http.MethodPost, "/auth/refresh", middleware.AccessCredentials, h.Auth.RefreshToken},
		{http.MethodPost, "/auth/logout", middleware.AccessCredentials, h.Auth.Logout},
		{http.MethodGet, "/auth/me", middleware.AccessAuthenticated, h.Auth.Me},

		{http.MethodGet, "/videos", middleware.AccessPublic, h.Videos.List},
		{http.MethodGet, "/videos/my_favorites", middleware.AccessAuthenticated, h.Interactions.MyFavorites},
		{http.MethodGet, "/videos/:id", middleware.AccessPublic, h.Videos.Get},
		{http.MethodPost, "/videos", middleware.AccessPrivileged, h.Videos.Create},
		{http.MethodPost, "/videos/media", middleware.AccessPrivileged, h.Media.Upload},
		{http.MethodPut, "/videos/:id", middleware.AccessPrivileged, h.Videos.Replace},
		{http.MethodPatch, "/videos/:id", middleware.AccessPrivileged, h.Videos.Patch},
		{http.MethodDelete, "/videos/:id", middleware.AccessPrivileged, h.Videos.Delete},
		{http.MethodPost, "/videos/:id/toggle_like", middleware.AccessAuthenticated, h.Interactions.ToggleLike},
		{http.MethodPost, "/videos/:id/toggle_favorite", middleware.AccessAuthenticated, h.Interactions.ToggleFavorite},
		{http.MethodPost, "/videos/:id/rate", middleware.AccessAuthenticated, h.Interactions.Rate},
		{http.MethodGet, "/videos/:id/my_rating", middleware.AccessAuthenticated, h.Interactions.MyRating},

		{http.MethodGet, "/genres", middleware.AccessPrivileged, h.Genres.List},
		{http.MethodPost, "/genres", middleware.AccessPrivileged, h.Genres.Create},
		{http.MethodGet, "/genres/:id", middleware.AccessPrivileged, h.Genres.Get},
		{http.MethodPut, "/genres/:id", middleware.AccessPrivileged, h.Genres.Rename},
		{http.MethodPatch, "/genres/:id", middleware.AccessPrivileged, h.Genres.Rename},
		{http.MethodDelete, "/genres/:id", middleware.AccessPrivileged, h.Genres.Delete},
		{http.MethodGet, "/genres/:id/videos", middleware.AccessPrivileged, h.Genres.Videos},
	}
}

type RouterConfig struct {
	Logger         zerolog.Logger
	Tokens         middleware.TokenValidator
	Limiter        middleware.Limiter // nil disables rate limiting
	CORSOrigins    []string
	MetricsEnabled bool
}

// NewRouter builds the gin engine. Middleware order: recovery, request log,
// metrics, CORS, authentication, rate limit, then the per-route gate.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))

	if h.Health != nil {
		r.GET("/healthz", h.Health.Health)
	}

	authenticate := middleware.Authenticate(cfg.Tokens)
	var limit gin.HandlerFunc
	if cfg.Limiter != nil {
		limit = middleware.RateLimit(cfg.Limiter)
	}

	api := r.Group("/api")
	for _, rt := range routes(h) {
		chain := make([]gin.HandlerFunc, 0, 4)
		if rt.access != middleware.AccessCredentials {
			chain = append(chain, authenticate)
		}
		if limit != nil {
			chain = append(chain, limit)
		}
		chain = append(chain, middleware.Gate(rt.access), rt.handler)
		api.Handle(rt.method, rt.path, chain...)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}
