package wire

import (
	"Pressroom/internal/api"
	"Pressroom/internal/api/config"
	"Pressroom/internal/api/handler"
	"Pressroom/internal/job"
	"Pressroom/internal/pkg/cron"
	"Pressroom/internal/pkg/kafka"
	"Pressroom/internal/pkg/redis"
	"Pressroom/internal/repository"
	"Pressroom/internal/service"
	"Pressroom/internal/strategy"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	RecommendSvc service.RecommendService
}

// Services 与传输层无关的核心组件，测试可直接替换存储实现后复用
type Services struct {
	Recommend service.RecommendService
	Profile   service.ProfileService
	Behavior  service.BehaviorService
	HotList   service.HotListService
}

// BuildServices 组装策略与服务
func BuildServices(catalog repository.ArticleRepo, behavior repository.BehaviorRepo, cache redis.Cache, cfg config.RecommendConfig) *Services {
	hot := strategy.NewHot(catalog, cache, cfg)
	profiles := service.NewProfileService(catalog, behavior, cache, cfg)

	recommend := service.NewRecommendService(catalog, behavior, profiles, cfg,
		hot,
		strategy.NewSimilar(catalog),
		strategy.NewRelated(catalog, cfg),
		strategy.NewPreference(catalog, behavior, hot, cfg),
		strategy.NewCollaborative(catalog, behavior, hot, cfg),
	)

	return &Services{
		Recommend: recommend,
		Profile:   profiles,
		Behavior:  service.NewBehaviorService(catalog, behavior, profiles),
		HotList:   service.NewHotListService(hot, cfg.WarmSizes),
	}
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	catalog := repository.NewGuardedArticleRepo(
		repository.NewArticleRepo(db),
		repository.NewGuard("catalog", cfg.Recommend.StoreTimeout, cfg.Breaker),
	)
	behavior := repository.NewGuardedBehaviorRepo(
		repository.NewBehaviorRepo(db),
		repository.NewGuard("behavior", cfg.Recommend.StoreTimeout, cfg.Breaker),
	)
	cache := redis.NewCache(redis.Rdb, cfg.Recommend.CacheTimeout)

	svcs := BuildServices(catalog, behavior, cache, cfg.Recommend)

	handlers := &api.HandlersGroup{
		RecommendHandler: handler.NewRecommendHandler(svcs.Recommend, svcs.Profile, svcs.HotList),
		BehaviorHandler:  handler.NewBehaviorHandler(svcs.Behavior),
		TokenBlacklist:   cache,
		LogIndex:         cfg.Logstash.Index,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, svcs.Profile)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewHotListJob(svcs.HotList), cfg.Recommend.WarmCron)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		RecommendSvc: svcs.Recommend,
	}, nil
}
