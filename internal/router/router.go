package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/config"
	"github.com/maniacmeyers/interview-maniac-app/internal/gamification"
	"github.com/maniacmeyers/interview-maniac-app/internal/gemini"
	"github.com/maniacmeyers/interview-maniac-app/internal/handlers"
	"github.com/maniacmeyers/interview-maniac-app/internal/metrics"
	"github.com/maniacmeyers/interview-maniac-app/internal/services"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitError(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func newLimiter(rate time.Duration, limit uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  rate,
		Limit: limit,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateLimitError,
		KeyFunc:      keyFunc,
	})
}

func Setup(log *zap.Logger) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("maniac_session", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(CSRFProtection())
	router.Use(UserLoaderMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Wire the generative client and the services around it.
	client := gemini.NewClient(log)
	scorer := services.NewScorer(log, client,
		config.Conf.Scoring.BatchSize,
		time.Duration(config.Conf.Scoring.BatchDelayMS)*time.Millisecond,
	)
	generator := services.NewGenerator(log, client)

	authHandler := handlers.NewAuthHandler(log)
	geminiHandler := handlers.NewGeminiHandler(log, scorer, generator)
	storiesHandler := handlers.NewStoriesHandler(log, scorer)
	progressHandler := handlers.NewProgressHandler(log, gamification.RecordAction)
	dashboardHandler := handlers.NewDashboardHandler(log)

	// Login attempts and generative calls get their own per-IP budgets.
	authLimiter := newLimiter(time.Minute, 5)
	geminiLimiter := newLimiter(time.Minute, 10)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// The client fetches the CSRF token here before its first POST.
	router.GET("/api/csrf", func(c *gin.Context) {
		token, _ := c.Get("csrf_token")
		c.JSON(http.StatusOK, gin.H{"csrfToken": token})
	})

	router.POST("/register", authLimiter, authHandler.Register)
	router.POST("/login", authLimiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authorized := router.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.GET("/api/me", authHandler.Me)

		geminiRoutes := authorized.Group("/api/gemini")
		geminiRoutes.Use(geminiLimiter)
		{
			geminiRoutes.POST("/generate", geminiHandler.Generate)
			geminiRoutes.POST("/improve", geminiHandler.Improve)
			geminiRoutes.POST("/score", geminiHandler.Score)
		}

		storyRoutes := authorized.Group("/api/stories")
		{
			storyRoutes.POST("", storiesHandler.Save)
			storyRoutes.GET("", storiesHandler.List)
			storyRoutes.POST("/score-all", geminiLimiter, storiesHandler.ScoreAll)
		}

		progressRoutes := authorized.Group("/api/progress")
		{
			progressRoutes.GET("", progressHandler.Get)
			progressRoutes.POST("/action", progressHandler.RecordAction)
		}

		authorized.GET("/dashboard/chart", dashboardHandler.ScoreChart)
	}

	return router
}
