package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/hercules-fit/hercules-api/config"
	_ "github.com/hercules-fit/hercules-api/docs"
	"github.com/hercules-fit/hercules-api/internal/api/handler"
	"github.com/hercules-fit/hercules-api/internal/api/middleware"
	"github.com/hercules-fit/hercules-api/internal/service"
)

// NewRouter assembles the gin engine: global middleware, the public auth and
// media surface, and the bearer-protected API under /api/v1.
func NewRouter(cfg *config.Config, h *handler.Handler, tokens *service.TokenManager) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxBodyBytes

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.Default())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(limiter.Middleware())
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Media downloads are public so that <img> tags can reference them
	// without a bearer token.
	r.GET("/media/profile/:filename", h.ProfilePhoto)
	r.GET("/media/posts/:filename", h.PostImage)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	authed := v1.Group("")
	authed.Use(middleware.Auth(tokens))
	{
		authed.PUT("/auth/password", h.ChangePassword)
		authed.DELETE("/auth/account", h.DeleteAccount)

		authed.GET("/users/me", h.GetProfile)
		authed.PUT("/users/me", h.UpdateProfile)
		authed.GET("/users/me/name", h.GetFullName)
		authed.PUT("/users/me/name", h.UpdateFullName)
		authed.GET("/users/me/weight", h.GetWeight)
		authed.GET("/users/me/summary", h.GetOwnSummary)
		authed.PUT("/users/me/photo", h.UpdateProfilePhoto)
		authed.GET("/users/:id/summary", h.GetUserSummary)
		authed.GET("/users/:id/friends", h.ListFriends)
		authed.POST("/users/lookup", h.LookupUser)
		authed.POST("/users/search", h.SearchUsers)

		authed.POST("/friends/requests", h.SendFriendRequest)
		authed.GET("/friends/requests", h.ListPendingRequests)
		authed.PUT("/friends/requests/accept", h.AcceptFriendRequest)
		authed.DELETE("/friends/requests/reject", h.RejectFriendRequest)
		authed.GET("/friends/status/:a/:b", h.AreFriends)

		authed.POST("/posts", h.CreatePost)
		authed.GET("/posts/:id", h.GetPost)
		authed.DELETE("/posts/:id", h.DeletePost)
		authed.GET("/posts/:id/track", h.GetTrack)
		authed.GET("/posts/:id/comments", h.ListComments)
		authed.POST("/posts/:id/comments", h.AddComment)
		authed.POST("/posts/:id/like", h.LikePost)
		authed.DELETE("/posts/:id/like", h.UnlikePost)
		authed.GET("/feed", h.Feed)

		authed.POST("/messages", h.SendMessage)
		authed.GET("/messages", h.Inbox)
		authed.GET("/conversations/:id", h.Conversation)
		authed.PUT("/messages/:id/read", h.MarkMessageRead)

		authed.POST("/nutrition/meals", h.LogMeal)
		authed.GET("/nutrition/meals", h.ListMeals)
		authed.GET("/nutrition/calories", h.DailyCalories)
		authed.GET("/nutrition/history", h.MealHistory)
		authed.GET("/nutrition/tmb", h.MetabolicRate)
	}

	return r
}
