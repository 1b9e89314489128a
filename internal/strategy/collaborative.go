package strategy

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/repository"
	"context"
	"sort"
	"time"
)

// Neighbor 与目标用户有共同阅读的其他用户
type Neighbor struct {
	UserID      uint64
	CommonViews int
}

// Collaborative 基于用户的协同过滤
type Collaborative struct {
	catalog  repository.ArticleRepo
	behavior repository.BehaviorRepo
	hot      Strategy
	cfg      config.RecommendConfig
	now      func() time.Time
}

func NewCollaborative(catalog repository.ArticleRepo, behavior repository.BehaviorRepo, hot Strategy, cfg config.RecommendConfig) *Collaborative {
	return &Collaborative{catalog: catalog, behavior: behavior, hot: hot, cfg: cfg, now: time.Now}
}

func (c *Collaborative) Kind() Kind {
	return KindCollaborative
}

func (c *Collaborative) Score(ctx context.Context, req *Request, size int) ([]ScoredCandidate, error) {
	if size <= 0 {
		return []ScoredCandidate{}, nil
	}
	if req.UserID == 0 {
		return c.hot.Score(ctx, req, size)
	}

	since := c.now().Add(-c.cfg.ProfileLookback)
	own, err := c.behavior.ListViews(ctx, req.UserID, since, c.cfg.ScanLimit)
	if err != nil {
		return nil, err
	}
	if len(own) == 0 {
		return c.hot.Score(ctx, req, size)
	}

	ownIDs := distinctArticleIDs(own)
	neighbors, err := c.Neighbors(ctx, req.UserID, ownIDs, since)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return c.hot.Score(ctx, req, size)
	}

	neighborIDs := make([]uint64, 0, len(neighbors))
	for _, n := range neighbors {
		neighborIDs = append(neighborIDs, n.UserID)
	}
	views, err := c.behavior.ListViewsByUsers(ctx, neighborIDs, since, c.cfg.ScanLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(ownIDs))
	for _, id := range ownIDs {
		seen[id] = struct{}{}
	}
	// 文章 -> 看过它的邻居
	readers := make(map[uint64]map[uint64]struct{})
	for _, v := range views {
		if _, ok := seen[v.ArticleID]; ok {
			continue
		}
		if readers[v.ArticleID] == nil {
			readers[v.ArticleID] = make(map[uint64]struct{})
		}
		readers[v.ArticleID][v.UserID] = struct{}{}
	}
	if len(readers) == 0 {
		return []ScoredCandidate{}, nil
	}

	candidateIDs := make([]uint64, 0, len(readers))
	for id := range readers {
		candidateIDs = append(candidateIDs, id)
	}
	sort.Slice(candidateIDs, func(i, j int) bool {
		a, b := len(readers[candidateIDs[i]]), len(readers[candidateIDs[j]])
		if a != b {
			return a > b
		}
		return candidateIDs[i] < candidateIDs[j]
	})
	// 只回表前若干个，下线文章在回表后剔除
	if limit := 4 * size; len(candidateIDs) > limit {
		candidateIDs = candidateIDs[:limit]
	}

	articles, err := c.catalog.GetArticlesByIds(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	items := make([]scoredArticle, 0, len(articles))
	for _, a := range articles {
		if !a.Published() {
			continue
		}
		items = append(items, scoredArticle{article: a, score: float64(len(readers[a.ID]))})
	}
	return rank(items, KindCollaborative, size), nil
}

// Neighbors 共同阅读数不少于 NeighborMinCommon 的用户，按共同数降序取前 NeighborLimit 个
func (c *Collaborative) Neighbors(ctx context.Context, userID uint64, articleIDs []uint64, since time.Time) ([]Neighbor, error) {
	views, err := c.behavior.ListViewsByArticles(ctx, articleIDs, userID, since, c.cfg.ScanLimit)
	if err != nil {
		return nil, err
	}

	common := make(map[uint64]map[uint64]struct{})
	for _, v := range views {
		if common[v.UserID] == nil {
			common[v.UserID] = make(map[uint64]struct{})
		}
		common[v.UserID][v.ArticleID] = struct{}{}
	}

	neighbors := make([]Neighbor, 0, len(common))
	for uid, articles := range common {
		if len(articles) >= c.cfg.NeighborMinCommon {
			neighbors = append(neighbors, Neighbor{UserID: uid, CommonViews: len(articles)})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].CommonViews != neighbors[j].CommonViews {
			return neighbors[i].CommonViews > neighbors[j].CommonViews
		}
		return neighbors[i].UserID < neighbors[j].UserID
	})
	if len(neighbors) > c.cfg.NeighborLimit {
		neighbors = neighbors[:c.cfg.NeighborLimit]
	}
	return neighbors, nil
}
