package strategy

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/model"
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/metrics"
	"Pressroom/internal/pkg/redis"
	"Pressroom/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

// Hot 全站热门，与用户无关，按请求条数缓存
type Hot struct {
	catalog repository.ArticleRepo
	cache   redis.Cache
	ttl     time.Duration
}

func NewHot(catalog repository.ArticleRepo, cache redis.Cache, cfg config.RecommendConfig) *Hot {
	return &Hot{catalog: catalog, cache: cache, ttl: cfg.HotTTL}
}

// hotList 缓存内容，Articles 为计算时的文章快照，目录不可用时直接返回
type hotList struct {
	Candidates []ScoredCandidate `json:"candidates"`
	Articles   []*model.Article  `json:"articles"`
}

// Snapshotter 能在目录不可用时给出缓存文章的策略
type Snapshotter interface {
	// Snapshot 只读缓存，按 sizes 顺序取第一个命中的榜单
	Snapshot(ctx context.Context, sizes ...int) ([]*model.Article, bool)
}

func (h *Hot) Kind() Kind {
	return KindHot
}

func (h *Hot) Score(ctx context.Context, _ *Request, size int) ([]ScoredCandidate, error) {
	if size <= 0 {
		return []ScoredCandidate{}, nil
	}

	list, ok := h.load(ctx, size)
	if ok {
		return list.Candidates, nil
	}
	return h.Refresh(ctx, size)
}

func (h *Hot) Snapshot(ctx context.Context, sizes ...int) ([]*model.Article, bool) {
	for _, size := range sizes {
		if size <= 0 {
			continue
		}
		if list, ok := h.load(ctx, size); ok && len(list.Articles) > 0 {
			return list.Articles, true
		}
	}
	return nil, false
}

func (h *Hot) load(ctx context.Context, size int) (*hotList, bool) {
	var cached hotList
	ok, err := redis.GetJSON(ctx, h.cache, hotKey(size), &cached)
	switch {
	case err != nil:
		metrics.CacheResults.WithLabelValues("hot", "error").Inc()
		log.WarnContext(ctx, "hot list cache read failed", "size", size, "err", err)
		return nil, false
	case ok:
		metrics.CacheResults.WithLabelValues("hot", "hit").Inc()
		return &cached, true
	default:
		metrics.CacheResults.WithLabelValues("hot", "miss").Inc()
		return nil, false
	}
}

// Refresh 重新计算并覆盖缓存
func (h *Hot) Refresh(ctx context.Context, size int) ([]ScoredCandidate, error) {
	articles, err := h.catalog.ListArticles(ctx, repository.ArticleFilter{}, repository.OrderByHotScore, size)
	if err != nil {
		return nil, err
	}

	items := make([]scoredArticle, 0, len(articles))
	byID := make(map[uint64]*model.Article, len(articles))
	for _, a := range articles {
		items = append(items, scoredArticle{article: a, score: a.HotScore()})
		byID[a.ID] = a
	}
	result := rank(items, KindHot, size)

	list := hotList{Candidates: result, Articles: make([]*model.Article, 0, len(result))}
	for _, c := range result {
		list.Articles = append(list.Articles, byID[c.ArticleID])
	}
	if err = redis.SetJSON(ctx, h.cache, hotKey(size), list, h.ttl); err != nil {
		log.WarnContext(ctx, "hot list cache write failed", "size", size, "err", err)
	}
	return result, nil
}

func hotKey(size int) string {
	return consts.HotListKey + strconv.Itoa(size)
}
