package api

import (
	"Pressroom/internal/api/middleware"
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/metrics", "/api/ping"))
	r.Use(middleware.CORSMiddleware(group.AllowedOrigins))
	logger.SetupGin(r, group.LogIndex)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		recommendGroup := apiGroup.Group("/recommendations")
		{
			authOptGroup := recommendGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.RecommendHandler.Recommend)
			}

			authGroup := recommendGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware(group.TokenBlacklist))
			{
				authGroup.GET("/profile", group.RecommendHandler.Profile)
			}

			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("/hot/refresh", group.RecommendHandler.RefreshHot)
			}
		}

		behaviorGroup := apiGroup.Group("/behavior")
		behaviorGroup.Use(middleware.AuthMiddleware(group.TokenBlacklist))
		{
			behaviorGroup.POST("/actions", group.BehaviorHandler.TrackAction)
		}
	}

	return r
}
