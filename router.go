package main

import (
	"net/http"
	"strings"
	"time"

	"surveillance-map/be/config"
	"surveillance-map/be/handlers"
	"surveillance-map/be/middleware"
	"surveillance-map/be/models"
	"surveillance-map/be/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	cfg     *config.Config
	auth    *services.AuthService
	cameras *services.CameraService
	hub     *services.Hub
}

func setupRouter(deps routerDeps) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	allowOrigin := originMatcher(deps.cfg.Server.AllowedOrigins)
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	if allowsAll(deps.cfg.Server.AllowedOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOriginFunc = allowOrigin
	}
	router.Use(cors.New(corsCfg))

	authHandler := handlers.NewAuthHandler(deps.auth)
	cameraHandler := handlers.NewCameraHandler(deps.cameras, deps.hub, allowOrigin)
	requireGod := []gin.HandlerFunc{
		middleware.AuthMiddleware(deps.auth),
		middleware.RequireRole(models.RolePrivileged),
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339Nano)})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", middleware.AuthMiddleware(deps.auth), authHandler.Verify)
			auth.POST("/logout", middleware.AuthMiddleware(deps.auth), authHandler.Logout)
		}

		api.GET("/live", cameraHandler.LiveFeed)

		cameras := api.Group("/cameras")
		{
			cameras.GET("", cameraHandler.GetCameras)
			cameras.GET("/:id", cameraHandler.GetCamera)
			cameras.POST("", append(requireGod, cameraHandler.CreateCamera)...)
			cameras.PUT("/:id", append(requireGod, cameraHandler.UpdateCamera)...)
			cameras.DELETE("/:id", append(requireGod, cameraHandler.DeleteCamera)...)
		}
	}

	// The map viewer and admin console are plain static assets.
	var files http.Handler
	if dir := deps.cfg.Server.StaticDir; dir != "" {
		files = http.FileServer(http.Dir(dir))
	}
	router.NoRoute(func(c *gin.Context) {
		if files == nil || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})

	return router, nil
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}

func originMatcher(origins []string) func(string) bool {
	if allowsAll(origins) {
		return func(string) bool { return true }
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(origin string) bool {
		_, ok := allowed[origin]
		return ok
	}
}
