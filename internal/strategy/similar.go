package strategy

import (
	"Pressroom/internal/model"
	"Pressroom/internal/pkg/util"
	"Pressroom/internal/repository"
	"context"
	"math"
	"time"
)

const (
	sameCategoryScore  = 50
	sharedKeywordScore = 10
	recencyBonusMax    = 20
	recencyBonusDays   = 30
)

// Similar 同类目 + 标题关键词重合 + 发布时间接近
type Similar struct {
	catalog repository.ArticleRepo
}

func NewSimilar(catalog repository.ArticleRepo) *Similar {
	return &Similar{catalog: catalog}
}

func (s *Similar) Kind() Kind {
	return KindSimilar
}

func (s *Similar) Score(ctx context.Context, req *Request, size int) ([]ScoredCandidate, error) {
	if req.SeedArticleID == 0 || size <= 0 {
		return []ScoredCandidate{}, nil
	}

	seed, err := s.catalog.GetArticle(ctx, req.SeedArticleID)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return []ScoredCandidate{}, nil
	}

	// 先按浏览量取 2 倍候选，同类目优先，不足再从其他类目补
	poolSize := 2 * size
	pool, err := s.catalog.ListArticles(ctx, repository.ArticleFilter{
		CategoryIDs: []uint64{seed.CategoryID},
		ExcludeIDs:  []uint64{seed.ID},
	}, repository.OrderByViews, poolSize)
	if err != nil {
		return nil, err
	}
	if len(pool) < poolSize {
		more, err := s.catalog.ListArticles(ctx, repository.ArticleFilter{
			ExcludeCategoryIDs: []uint64{seed.CategoryID},
			ExcludeIDs:         []uint64{seed.ID},
		}, repository.OrderByViews, poolSize-len(pool))
		if err != nil {
			return nil, err
		}
		pool = append(pool, more...)
	}

	seedKeywords := util.ExtractKeywords(seed.Title)
	items := make([]scoredArticle, 0, len(pool))
	for _, a := range pool {
		items = append(items, scoredArticle{article: a, score: similarity(seed, seedKeywords, a)})
	}
	return rank(items, KindSimilar, size), nil
}

func similarity(seed *model.Article, seedKeywords []string, candidate *model.Article) float64 {
	score := 0.0
	if candidate.CategoryID == seed.CategoryID {
		score += sameCategoryScore
	}
	score += sharedKeywordScore * float64(util.SharedKeywords(seedKeywords, util.ExtractKeywords(candidate.Title)))
	score += recencyBonus(seed.CreatedAt, candidate.CreatedAt)
	return score
}

// recencyBonus 两篇文章发布间隔 0 天得满分，30 天线性衰减到 0
func recencyBonus(seed, candidate time.Time) float64 {
	days := math.Abs(seed.Sub(candidate).Hours()) / 24
	return recencyBonusMax * math.Max(0, 1-days/recencyBonusDays)
}
