package service

import (
	"Pressroom/internal/model"
	"Pressroom/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type BehaviorService interface {
	// TrackAction 记录点赞/分享/评论，并失效画像缓存
	TrackAction(ctx context.Context, userID uint64, action string, articleID uint64) error
}

type behaviorServiceImpl struct {
	catalog  repository.ArticleRepo
	behavior repository.BehaviorRepo
	profiles ProfileService
}

func NewBehaviorService(catalog repository.ArticleRepo, behavior repository.BehaviorRepo, profiles ProfileService) BehaviorService {
	return &behaviorServiceImpl{
		catalog:  catalog,
		behavior: behavior,
		profiles: profiles,
	}
}

func (s *behaviorServiceImpl) TrackAction(ctx context.Context, userID uint64, action string, articleID uint64) error {
	if userID == 0 {
		return UnauthorizedError
	}
	if !model.ValidAction(action) {
		return ErrActionNotSupported
	}

	article, err := s.catalog.GetArticle(ctx, articleID)
	if err != nil {
		log.ErrorContext(ctx, "get article failed", "article_id", articleID, "err", err)
		return ErrDependencyUnavailable
	}
	if article == nil || !article.Published() {
		return ErrArticleNotFound
	}

	err = s.behavior.AppendAction(ctx, &model.ArticleAction{
		UserID:    userID,
		Action:    action,
		ArticleID: articleID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.ErrorContext(ctx, "append action failed", "user_id", userID, "action", action, "err", err)
		return ErrDependencyUnavailable
	}

	if err = s.profiles.Invalidate(ctx, userID); err != nil {
		log.WarnContext(ctx, "invalidate profile failed", "user_id", userID, "err", err)
	}
	return nil
}
