package strategy

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/repository"
	"context"
	"time"
)

const preferenceCategories = 3

// Preference 用户兴趣类目下的最新文章，排除近期读过的
type Preference struct {
	catalog  repository.ArticleRepo
	behavior repository.BehaviorRepo
	hot      Strategy
	cfg      config.RecommendConfig
	now      func() time.Time
}

func NewPreference(catalog repository.ArticleRepo, behavior repository.BehaviorRepo, hot Strategy, cfg config.RecommendConfig) *Preference {
	return &Preference{catalog: catalog, behavior: behavior, hot: hot, cfg: cfg, now: time.Now}
}

func (p *Preference) Kind() Kind {
	return KindUser
}

func (p *Preference) Score(ctx context.Context, req *Request, size int) ([]ScoredCandidate, error) {
	if size <= 0 {
		return []ScoredCandidate{}, nil
	}
	// 冷启动
	if req.Profile.Cold() {
		return p.hot.Score(ctx, req, size)
	}

	categories := req.Profile.RecentCategories
	if len(categories) == 0 {
		categories = req.Profile.Interests
	}
	if len(categories) > preferenceCategories {
		categories = categories[:preferenceCategories]
	}

	recent, err := p.behavior.ListViews(ctx, req.UserID, p.now().Add(-p.cfg.RecentViewWindow), p.cfg.ScanLimit)
	if err != nil {
		return nil, err
	}

	articles, err := p.catalog.ListArticles(ctx, repository.ArticleFilter{
		CategoryIDs: categories,
		ExcludeIDs:  distinctArticleIDs(recent),
	}, repository.OrderByCreatedAt, size)
	if err != nil {
		return nil, err
	}
	return byRecency(articles, KindUser, size), nil
}
