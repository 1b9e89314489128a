package api

import (
	"Pressroom/internal/api/handler"
	"Pressroom/internal/pkg/redis"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	RecommendHandler *handler.RecommendHandler
	BehaviorHandler  *handler.BehaviorHandler

	// TokenBlacklist CMS 写入的已注销 Token
	TokenBlacklist redis.Cache
	LogIndex       string
	AllowedOrigins []string
}
