package repository

import (
	"Pressroom/internal/model"
	"context"
	"time"
)

type guardedArticleRepo struct {
	next  ArticleRepo
	guard *Guard
}

// NewGuardedArticleRepo 目录读取加超时与熔断
func NewGuardedArticleRepo(next ArticleRepo, guard *Guard) ArticleRepo {
	return &guardedArticleRepo{next: next, guard: guard}
}

func (s *guardedArticleRepo) GetArticle(ctx context.Context, id uint64) (*model.Article, error) {
	return guardCall(ctx, s.guard, func(ctx context.Context) (*model.Article, error) {
		return s.next.GetArticle(ctx, id)
	})
}

func (s *guardedArticleRepo) ListArticles(ctx context.Context, filter ArticleFilter, order ArticleOrder, limit int) ([]*model.Article, error) {
	return guardCall(ctx, s.guard, func(ctx context.Context) ([]*model.Article, error) {
		return s.next.ListArticles(ctx, filter, order, limit)
	})
}

func (s *guardedArticleRepo) GetArticlesByIds(ctx context.Context, ids []uint64) ([]*model.Article, error) {
	return guardCall(ctx, s.guard, func(ctx context.Context) ([]*model.Article, error) {
		return s.next.GetArticlesByIds(ctx, ids)
	})
}

type guardedBehaviorRepo struct {
	next  BehaviorRepo
	guard *Guard
}

// NewGuardedBehaviorRepo 行为日志读写加超时与熔断
func NewGuardedBehaviorRepo(next BehaviorRepo, guard *Guard) BehaviorRepo {
	return &guardedBehaviorRepo{next: next, guard: guard}
}

func (s *guardedBehaviorRepo) AppendView(ctx context.Context, view *model.ArticleView, window time.Duration) (bool, error) {
	return guardCall(ctx, s.guard, func(ctx context.Context) (bool, error) {
		return s.next.AppendView(ctx, view, window)
	})
}

func (s *guardedBehaviorRepo) ListViews(ctx context.Context, userID uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	return guardCall(ctx, s.guard, func(ctx context.Context) ([]*model.ArticleView, error) {
		return s.next.ListViews(ctx, userID, since, limit)
	})
}

func (s *guardedBehaviorRepo) ListViewsByArticles(ctx context.Context, articleIDs []uint64, excludeUserID uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	return guardCall(ctx, s.guard, func(ctx context.Context) ([]*model.ArticleView, error) {
		return s.next.ListViewsByArticles(ctx, articleIDs, excludeUserID, since, limit)
	})
}

func (s *guardedBehaviorRepo) ListViewsByUsers(ctx context.Context, userIDs []uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	return guardCall(ctx, s.guard, func(ctx context.Context) ([]*model.ArticleView, error) {
		return s.next.ListViewsByUsers(ctx, userIDs, since, limit)
	})
}

func (s *guardedBehaviorRepo) AppendAction(ctx context.Context, action *model.ArticleAction) error {
	_, err := guardCall(ctx, s.guard, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.AppendAction(ctx, action)
	})
	return err
}
