package repository

import (
	"Pressroom/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BehaviorRepo 行为日志，只追加
type BehaviorRepo interface {
	// AppendView 同一 (user, article) 在 window 内已有记录时不写入，返回 false
	AppendView(ctx context.Context, view *model.ArticleView, window time.Duration) (bool, error)
	ListViews(ctx context.Context, userID uint64, since time.Time, limit int) ([]*model.ArticleView, error)
	ListViewsByArticles(ctx context.Context, articleIDs []uint64, excludeUserID uint64, since time.Time, limit int) ([]*model.ArticleView, error)
	ListViewsByUsers(ctx context.Context, userIDs []uint64, since time.Time, limit int) ([]*model.ArticleView, error)
	AppendAction(ctx context.Context, action *model.ArticleAction) error
}

type BehaviorRepoImpl struct {
	db *gorm.DB
}

func NewBehaviorRepo(db *gorm.DB) BehaviorRepo {
	return &BehaviorRepoImpl{db}
}

func (s *BehaviorRepoImpl) AppendView(ctx context.Context, view *model.ArticleView, window time.Duration) (bool, error) {
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now()
	}

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 加锁读，避免并发请求同时通过去重检查
		var ids []uint64
		err := tx.Model(&model.ArticleView{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND article_id = ? AND viewed_at > ?",
				view.UserID, view.ArticleID, view.ViewedAt.Add(-window)).
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			return nil
		}
		if err = tx.Create(view).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (s *BehaviorRepoImpl) ListViews(ctx context.Context, userID uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	var views []*model.ArticleView
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND viewed_at >= ?", userID, since).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error
	return views, err
}

func (s *BehaviorRepoImpl) ListViewsByArticles(ctx context.Context, articleIDs []uint64, excludeUserID uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	if len(articleIDs) == 0 {
		return []*model.ArticleView{}, nil
	}
	var views []*model.ArticleView
	err := s.db.WithContext(ctx).
		Where("article_id IN ? AND user_id <> ? AND viewed_at >= ?", articleIDs, excludeUserID, since).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error
	return views, err
}

func (s *BehaviorRepoImpl) ListViewsByUsers(ctx context.Context, userIDs []uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	if len(userIDs) == 0 {
		return []*model.ArticleView{}, nil
	}
	var views []*model.ArticleView
	err := s.db.WithContext(ctx).
		Where("user_id IN ? AND viewed_at >= ?", userIDs, since).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error
	return views, err
}

func (s *BehaviorRepoImpl) AppendAction(ctx context.Context, action *model.ArticleAction) error {
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(action).Error
}
