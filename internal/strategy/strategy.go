package strategy

import (
	"Pressroom/internal/model"
	"Pressroom/internal/pkg/consts"
	"context"
	"sort"
)

// Kind 推荐策略类型
type Kind string

const (
	KindHot           Kind = consts.StrategyHot
	KindSimilar       Kind = consts.StrategySimilar
	KindRelated       Kind = consts.StrategyRelated
	KindUser          Kind = consts.StrategyUser
	KindCollaborative Kind = consts.StrategyCollaborative
)

// ParseKind 未知或空值返回 hot
func ParseKind(s string) Kind {
	switch k := Kind(s); k {
	case KindHot, KindSimilar, KindRelated, KindUser, KindCollaborative:
		return k
	default:
		return KindHot
	}
}

// Personal 是否依赖登录用户
func (k Kind) Personal() bool {
	return k == KindUser || k == KindCollaborative
}

// Request 单次打分的上下文
type Request struct {
	UserID        uint64
	SeedArticleID uint64
	Profile       *model.UserProfile
}

// ScoredCandidate 打分结果，分值只在同一策略内可比
type ScoredCandidate struct {
	ArticleID uint64  `json:"article_id"`
	Score     float64 `json:"score"`
	Strategy  Kind    `json:"strategy"`
}

// Strategy 打分器，数据访问失败直接返回 error，由调用方决定回退
type Strategy interface {
	Kind() Kind
	Score(ctx context.Context, req *Request, size int) ([]ScoredCandidate, error)
}

type scoredArticle struct {
	article *model.Article
	score   float64
}

// rank 分数降序, 浏览量降序, ID 升序
func rank(items []scoredArticle, kind Kind, size int) []ScoredCandidate {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.article.ViewCount != b.article.ViewCount {
			return a.article.ViewCount > b.article.ViewCount
		}
		return a.article.ID < b.article.ID
	})
	if size >= 0 && len(items) > size {
		items = items[:size]
	}

	out := make([]ScoredCandidate, 0, len(items))
	for _, it := range items {
		out = append(out, ScoredCandidate{ArticleID: it.article.ID, Score: it.score, Strategy: kind})
	}
	return out
}

// byRecency 保留仓库返回的时间倒序，分值为创建时间戳
func byRecency(articles []*model.Article, kind Kind, size int) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, min(len(articles), size))
	for _, a := range articles {
		if len(out) >= size {
			break
		}
		out = append(out, ScoredCandidate{ArticleID: a.ID, Score: float64(a.CreatedAt.Unix()), Strategy: kind})
	}
	return out
}

func distinctArticleIDs(views []*model.ArticleView) []uint64 {
	seen := make(map[uint64]struct{}, len(views))
	ids := make([]uint64, 0, len(views))
	for _, v := range views {
		if _, ok := seen[v.ArticleID]; ok {
			continue
		}
		seen[v.ArticleID] = struct{}{}
		ids = append(ids, v.ArticleID)
	}
	return ids
}
