// Package router wires the middleware stack and all routes of the site.
package router

import (
	"strings"
	"time"

	"blog/auth"
	"blog/config"
	"blog/db"
	"blog/handlers"
	"blog/models"
	"blog/templates"
	"blog/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the engine. cache serves the post lists, keyed per viewer.
func New(cache *utils.PageCache) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger)
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGINS, ","),
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.SetHTMLTemplate(templates.Load())

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: config.SESSION_MAX_AGE, HttpOnly: true})
	router.Use(sessions.Sessions(config.SESSION_COOKIE, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	router.Use(utils.NoCache) // No cache by default, the post lists override that

	cache.KeyFunc = auth.ViewerKey
	cached := cache.Handler()
	// Custom Auth Router
	authRouter := &auth.Router{Base: router, LoginURL: config.LOGIN_URL}

	// Post lists
	router.GET("/", cached, handlers.Index)
	router.GET("/group/:slug/", cached, handlers.GroupPosts)
	router.GET("/profile/:username/", cached, handlers.Profile)
	// Posts
	router.GET("/posts/:post_id/", handlers.PostDetail)
	authRouter.POST("/posts/:post_id/", handlers.AddComment)
	authRouter.GETPOST("/create/", handlers.PostCreate)
	authRouter.GETPOST("/posts/:post_id/edit/", handlers.PostEdit)
	authRouter.POST("/posts/:post_id/comment/", handlers.AddComment)

	// Auth, form submissions are rate limited per IP
	limiter := utils.RateLimiter(rate.Limit(float64(config.LOGIN_RATE_PER_MINUTE)/60), config.LOGIN_RATE_PER_MINUTE)
	router.GET("/auth/login/", handlers.Login)
	router.POST("/auth/login/", limiter, handlers.Login)
	router.GET("/auth/signup/", handlers.Signup)
	router.POST("/auth/signup/", limiter, handlers.Signup)
	router.GET("/auth/logout/", handlers.Logout)
	router.POST("/auth/logout/", handlers.Logout)

	// Management
	manage := &auth.Router{Base: router.Group("/manage"), LoginURL: config.LOGIN_URL}
	manage.POST("/groups/", handlers.ManageGroupCreate, models.PermissionAdmin)
	manage.POST("/groups/:slug/delete/", handlers.ManageGroupDelete, models.PermissionAdmin)
	manage.POST("/posts/:post_id/delete/", handlers.ManagePostDelete, models.PermissionAdmin)
	manage.POST("/cache/clear/", handlers.ManageCacheClear(cache), models.PermissionAdmin)
	manage.GET("/status/", handlers.ManageStatus(cache), models.PermissionAdmin)

	router.NoRoute(handlers.NotFound)
	return router
}
