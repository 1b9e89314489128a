package handler

import (
	"Pressroom/internal/api/dto"
	"Pressroom/internal/model"
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/response"
	"Pressroom/internal/service"
	log "log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type RecommendHandler struct {
	recommendSvc service.RecommendService
	profileSvc   service.ProfileService
	hotListSvc   service.HotListService
}

func NewRecommendHandler(recommendSvc service.RecommendService, profileSvc service.ProfileService, hotListSvc service.HotListService) *RecommendHandler {
	return &RecommendHandler{
		recommendSvc: recommendSvc,
		profileSvc:   profileSvc,
		hotListSvc:   hotListSvc,
	}
}

// Recommend 推荐失败时返回空列表，不向调用方暴露错误
func (s *RecommendHandler) Recommend(c *gin.Context) {
	query := parseRecommendQuery(c)

	// 只认 Token 中的用户，匿名请求不写行为日志，个性化策略由服务端降级为 hot
	userID := c.GetUint64(consts.ContextUserID)

	ctx := c.Request.Context()
	articles, err := s.recommendSvc.Recommend(ctx, &service.RecommendRequest{
		UserID:        userID,
		Strategy:      query.Strategy,
		SeedArticleID: query.ArticleID,
		Limit:         query.Limit,
	})
	if err != nil {
		log.WarnContext(ctx, "recommend failed, returning empty list", "strategy", query.Strategy, "err", err)
		articles = nil
	}

	response.Success(c, toSummaries(articles))
}

// parseRecommendQuery 逐个字段解析，非法值按缺省处理
func parseRecommendQuery(c *gin.Context) dto.RecommendQueryDTO {
	query := dto.RecommendQueryDTO{Strategy: c.Query("strategy")}
	if id, err := strconv.ParseUint(c.Query("article_id"), 10, 64); err == nil {
		query.ArticleID = id
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		query.Limit = limit
	}
	return query
}

// Profile 当前用户画像
func (s *RecommendHandler) Profile(c *gin.Context) {
	userID := c.GetUint64(consts.ContextUserID)

	profile, err := s.profileSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "load profile failed", "user_id", userID, "err", err)
		response.Error(c, service.ErrDependencyUnavailable)
		return
	}
	response.Success(c, profile)
}

// RefreshHot 手动刷新热门榜缓存
func (s *RecommendHandler) RefreshHot(c *gin.Context) {
	if err := s.hotListSvc.Warm(c.Request.Context()); err != nil {
		log.ErrorContext(c.Request.Context(), "refresh hot list failed", "err", err)
		response.Error(c, service.ErrDependencyUnavailable)
		return
	}
	response.Success(c, nil)
}

func toSummaries(articles []*model.Article) []*dto.ArticleSummaryDTO {
	list := make([]*dto.ArticleSummaryDTO, 0, len(articles))
	for _, a := range articles {
		var summary dto.ArticleSummaryDTO
		if err := copier.Copy(&summary, a); err != nil {
			log.Warn("copy article summary failed", "article_id", a.ID, "err", err)
			continue
		}
		summary.PublishedAt = a.CreatedAt.Format(time.DateTime)
		list = append(list, &summary)
	}
	return list
}
