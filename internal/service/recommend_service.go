package service

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/model"
	"Pressroom/internal/pkg/metrics"
	"Pressroom/internal/repository"
	"Pressroom/internal/strategy"
	"context"
	"fmt"
	log "log/slog"
	"sync"
	"time"
)

// RecommendRequest 推荐请求，UserID 为 0 表示匿名
type RecommendRequest struct {
	UserID        uint64
	Strategy      string
	SeedArticleID uint64
	Limit         int
}

type RecommendService interface {
	Recommend(ctx context.Context, req *RecommendRequest) ([]*model.Article, error)
	// Wait 等待后台的阅读记录写完
	Wait()
}

type recommendServiceImpl struct {
	catalog    repository.ArticleRepo
	behavior   repository.BehaviorRepo
	profiles   ProfileService
	hot        strategy.Strategy
	strategies map[strategy.Kind]strategy.Strategy
	cfg        config.RecommendConfig
	now        func() time.Time
	wg         sync.WaitGroup
}

// NewRecommendService strategies 中必须包含 hot
func NewRecommendService(
	catalog repository.ArticleRepo,
	behavior repository.BehaviorRepo,
	profiles ProfileService,
	cfg config.RecommendConfig,
	strategies ...strategy.Strategy,
) RecommendService {
	table := make(map[strategy.Kind]strategy.Strategy, len(strategies))
	for _, st := range strategies {
		table[st.Kind()] = st
	}
	hot, ok := table[strategy.KindHot]
	if !ok {
		panic("recommend service requires a hot strategy")
	}
	return &recommendServiceImpl{
		catalog:    catalog,
		behavior:   behavior,
		profiles:   profiles,
		hot:        hot,
		strategies: table,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *recommendServiceImpl) Recommend(ctx context.Context, req *RecommendRequest) ([]*model.Article, error) {
	kind, limit := s.normalize(req)
	start := time.Now()
	metrics.RecommendRequests.WithLabelValues(string(kind)).Inc()
	defer func() {
		metrics.RecommendDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}()

	if req.UserID > 0 && req.SeedArticleID > 0 {
		defer s.recordView(ctx, req.UserID, req.SeedArticleID)
	}

	picked := newPicker(req.SeedArticleID)
	size := limit
	if req.SeedArticleID > 0 {
		size++
	}
	sreq := &strategy.Request{UserID: req.UserID, SeedArticleID: req.SeedArticleID}

	primary, err := s.score(ctx, kind, sreq, size)
	picked.add(primary)
	// 热门榜缓存的 key 按条数区分，回表失败时依次尝试
	hotSizes := []int{size}

	if kind == strategy.KindHot {
		if err != nil {
			return nil, fmt.Errorf("hot strategy: %w", err)
		}
	} else if err != nil || picked.len() < limit {
		reason := "short"
		if err != nil {
			reason = "error"
			log.WarnContext(ctx, "strategy failed, falling back to hot", "strategy", kind, "err", err)
		}
		metrics.RecommendFallbacks.WithLabelValues(string(kind), reason).Inc()

		backfillSize := size + picked.len()
		hotSizes = []int{backfillSize, size}
		backfill, hotErr := s.hot.Score(ctx, sreq, backfillSize)
		if hotErr != nil {
			if picked.len() == 0 {
				return nil, fmt.Errorf("hot fallback: %w", hotErr)
			}
			log.WarnContext(ctx, "hot backfill failed", "strategy", kind, "err", hotErr)
		}
		picked.add(backfill)
	}

	articles, dropped, err := s.hydrate(ctx, picked.ids, limit)
	if err != nil {
		if cached, ok := s.hotSnapshot(ctx, req.SeedArticleID, limit, hotSizes); ok {
			metrics.RecommendFallbacks.WithLabelValues(string(kind), "snapshot").Inc()
			log.WarnContext(ctx, "hydrate failed, serving cached hot list", "strategy", kind, "err", err)
			return cached, nil
		}
		return nil, err
	}

	// 缓存的候选里有已下线文章时，再从热门榜补一轮
	if short := limit - len(articles); short > 0 && dropped > 0 {
		articles = append(articles, s.topUp(ctx, sreq, picked, limit, short)...)
	}
	return articles, nil
}

// topUp 取更长的热门榜，只回表新出现的候选
func (s *recommendServiceImpl) topUp(ctx context.Context, sreq *strategy.Request, picked *picker, limit, short int) []*model.Article {
	more, err := s.hot.Score(ctx, sreq, picked.len()+limit)
	if err != nil {
		log.WarnContext(ctx, "hot top-up failed", "err", err)
		return nil
	}
	before := picked.len()
	picked.add(more)
	extra, _, err := s.hydrate(ctx, picked.ids[before:], short)
	if err != nil {
		log.WarnContext(ctx, "hydrate top-up failed", "err", err)
		return nil
	}
	return extra
}

// hotSnapshot 目录不可用时使用热门榜缓存里的文章快照
func (s *recommendServiceImpl) hotSnapshot(ctx context.Context, seedID uint64, limit int, sizes []int) ([]*model.Article, bool) {
	snap, ok := s.hot.(strategy.Snapshotter)
	if !ok {
		return nil, false
	}
	cached, ok := snap.Snapshot(ctx, sizes...)
	if !ok {
		return nil, false
	}
	result := make([]*model.Article, 0, min(limit, len(cached)))
	for _, a := range cached {
		if a == nil || a.ID == seedID || !a.Published() {
			continue
		}
		result = append(result, a)
		if len(result) >= limit {
			break
		}
	}
	return result, true
}

func (s *recommendServiceImpl) Wait() {
	s.wg.Wait()
}

// normalize 未知策略与匿名的个性化请求都按 hot 处理
func (s *recommendServiceImpl) normalize(req *RecommendRequest) (strategy.Kind, int) {
	kind := strategy.ParseKind(req.Strategy)
	if kind.Personal() && req.UserID == 0 {
		kind = strategy.KindHot
	}
	if _, ok := s.strategies[kind]; !ok {
		kind = strategy.KindHot
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return kind, limit
}

func (s *recommendServiceImpl) score(ctx context.Context, kind strategy.Kind, sreq *strategy.Request, size int) ([]strategy.ScoredCandidate, error) {
	if kind == strategy.KindUser {
		profile, err := s.profiles.Profile(ctx, sreq.UserID)
		if err != nil {
			return nil, fmt.Errorf("build profile: %w", err)
		}
		sreq.Profile = profile
	}
	return s.strategies[kind].Score(ctx, sreq, size)
}

// hydrate 按候选顺序回表，剔除未发布文章；dropped 为被剔除的候选数
func (s *recommendServiceImpl) hydrate(ctx context.Context, ids []uint64, limit int) ([]*model.Article, int, error) {
	if len(ids) == 0 {
		return []*model.Article{}, 0, nil
	}
	articles, err := s.catalog.GetArticlesByIds(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("hydrate candidates: %w", err)
	}

	byID := make(map[uint64]*model.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}
	result := make([]*model.Article, 0, min(limit, len(ids)))
	dropped := 0
	for _, id := range ids {
		a, ok := byID[id]
		if !ok || !a.Published() {
			dropped++
			continue
		}
		result = append(result, a)
		if len(result) >= limit {
			break
		}
	}
	return result, dropped, nil
}

// recordView 异步写阅读记录，写完后失效画像缓存；不受请求取消影响
func (s *recommendServiceImpl) recordView(ctx context.Context, userID, articleID uint64) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RecordTimeout)
		defer cancel()

		view := &model.ArticleView{UserID: userID, ArticleID: articleID, ViewedAt: s.now()}
		created, err := s.behavior.AppendView(ctx, view, s.cfg.ViewDedupWindow)
		if err != nil {
			log.WarnContext(ctx, "record view failed", "user_id", userID, "article_id", articleID, "err", err)
			return
		}
		if err = s.profiles.Invalidate(ctx, userID); err != nil {
			log.WarnContext(ctx, "invalidate profile failed", "user_id", userID, "err", err)
		}
		log.DebugContext(ctx, "view recorded", "user_id", userID, "article_id", articleID, "created", created)
	}()
}

// picker 按加入顺序去重，排除种子文章
type picker struct {
	seen map[uint64]struct{}
	ids  []uint64
}

func newPicker(exclude ...uint64) *picker {
	p := &picker{seen: make(map[uint64]struct{})}
	for _, id := range exclude {
		if id > 0 {
			p.seen[id] = struct{}{}
		}
	}
	return p
}

func (p *picker) add(candidates []strategy.ScoredCandidate) {
	for _, c := range candidates {
		if _, ok := p.seen[c.ArticleID]; ok {
			continue
		}
		p.seen[c.ArticleID] = struct{}{}
		p.ids = append(p.ids, c.ArticleID)
	}
}

func (p *picker) len() int {
	return len(p.ids)
}
