package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/accounthub/internal/http/handlers"
	"github.com/geocoder89/accounthub/internal/http/middlewares"
	"github.com/geocoder89/accounthub/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20

type Deps struct {
	Auth     handlers.AccountAuthenticator
	Profiles handlers.ProfileManager
	Sessions middlewares.SessionVerifier

	// AuthLimiter throttles signup/signin. Nil means an in-memory limiter.
	AuthLimiter middlewares.Limiter

	Checks []handlers.Check

	Prom           *observability.Prom
	MetricsHandler http.Handler

	ServiceName  string
	Tracing      bool
	SecureCookie bool
	CORSOrigins  []string
	Release      bool
}

func NewRouter(log *slog.Logger, deps Deps) *gin.Engine {
	if deps.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	if deps.Tracing {
		r.Use(otelgin.Middleware(deps.ServiceName))
	}
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORS(deps.CORSOrigins))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(deps.Checks...)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	limiter := deps.AuthLimiter
	if limiter == nil {
		limiter = middlewares.NewMemoryLimiter(10, time.Minute)
	}

	authHandler := handlers.NewAuthHandler(deps.Auth, deps.SecureCookie)
	usersHandler := handlers.NewUsersHandler(deps.Profiles)
	authMW := middlewares.NewAuthMiddleware(deps.Sessions)

	throttle := middlewares.RateLimit(limiter, middlewares.KeyByRouteAndIP)

	r.POST("/signup", withJSONBody(throttle, authHandler.SignUp)...)
	r.POST("/signin", withJSONBody(throttle, authHandler.SignIn)...)
	r.POST("/signout", authHandler.SignOut)

	users := r.Group("/users", authMW.RequireAuth())
	users.GET("/me", usersHandler.GetMe)
	users.PATCH("/me", withJSONBody(usersHandler.UpdateMe)...)
	users.GET("/:id", usersHandler.GetByID)

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Resource not found")
	})

	return r
}

func withJSONBody(next ...gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middlewares.MaxBodyBytes(maxBodyBytes), middlewares.RequireJSON()}
	return append(chain, next...)
}
