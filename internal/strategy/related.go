package strategy

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/repository"
	"context"
)

// Related 按共同标签数排序，种子无标签时退化为同类目最新
type Related struct {
	catalog   repository.ArticleRepo
	scanLimit int
}

func NewRelated(catalog repository.ArticleRepo, cfg config.RecommendConfig) *Related {
	return &Related{catalog: catalog, scanLimit: cfg.ScanLimit}
}

func (r *Related) Kind() Kind {
	return KindRelated
}

func (r *Related) Score(ctx context.Context, req *Request, size int) ([]ScoredCandidate, error) {
	if req.SeedArticleID == 0 || size <= 0 {
		return []ScoredCandidate{}, nil
	}

	seed, err := r.catalog.GetArticle(ctx, req.SeedArticleID)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return []ScoredCandidate{}, nil
	}

	tagIDs := seed.TagIDs()
	if len(tagIDs) == 0 {
		latest, err := r.catalog.ListArticles(ctx, repository.ArticleFilter{
			CategoryIDs: []uint64{seed.CategoryID},
			ExcludeIDs:  []uint64{seed.ID},
		}, repository.OrderByCreatedAt, size)
		if err != nil {
			return nil, err
		}
		return byRecency(latest, KindRelated, size), nil
	}

	pool, err := r.catalog.ListArticles(ctx, repository.ArticleFilter{
		TagIDs:     tagIDs,
		ExcludeIDs: []uint64{seed.ID},
	}, repository.OrderByViews, max(r.scanLimit, size))
	if err != nil {
		return nil, err
	}

	seedTags := make(map[uint64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		seedTags[id] = struct{}{}
	}

	items := make([]scoredArticle, 0, len(pool))
	for _, a := range pool {
		shared := 0
		for _, t := range a.Tags {
			if _, ok := seedTags[t.ID]; ok {
				shared++
			}
		}
		if shared == 0 {
			continue
		}
		items = append(items, scoredArticle{article: a, score: float64(shared)})
	}
	return rank(items, KindRelated, size), nil
}
