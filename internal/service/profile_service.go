package service

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/model"
	"Pressroom/internal/pkg/consts"
	"Pressroom/internal/pkg/metrics"
	"Pressroom/internal/pkg/redis"
	"Pressroom/internal/repository"
	"context"
	log "log/slog"
	"slices"
	"sort"
	"strconv"
	"time"
)

const (
	profileInterests        = 5
	profileRecentCategories = 3
	profileFavoriteTags     = 10
	activeLevelPerView      = 2
	activeLevelMax          = 100
)

type ProfileService interface {
	// Profile 优先读缓存，未命中时重建
	Profile(ctx context.Context, userID uint64) (*model.UserProfile, error)
	// BuildProfile 从行为日志重建画像并写入缓存
	BuildProfile(ctx context.Context, userID uint64) (*model.UserProfile, error)
	// Invalidate 删除缓存，下次读取时重建
	Invalidate(ctx context.Context, userID uint64) error
}

type profileServiceImpl struct {
	catalog  repository.ArticleRepo
	behavior repository.BehaviorRepo
	cache    redis.Cache
	cfg      config.RecommendConfig
	now      func() time.Time
}

func NewProfileService(catalog repository.ArticleRepo, behavior repository.BehaviorRepo, cache redis.Cache, cfg config.RecommendConfig) ProfileService {
	return &profileServiceImpl{
		catalog:  catalog,
		behavior: behavior,
		cache:    cache,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *profileServiceImpl) Profile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	var profile model.UserProfile
	ok, err := redis.GetJSON(ctx, s.cache, profileKey(userID), &profile)
	switch {
	case err != nil:
		metrics.CacheResults.WithLabelValues("profile", "error").Inc()
		log.WarnContext(ctx, "profile cache read failed", "user_id", userID, "err", err)
	case ok:
		metrics.CacheResults.WithLabelValues("profile", "hit").Inc()
		return &profile, nil
	default:
		metrics.CacheResults.WithLabelValues("profile", "miss").Inc()
	}
	return s.BuildProfile(ctx, userID)
}

func (s *profileServiceImpl) BuildProfile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	now := s.now()
	views, err := s.behavior.ListViews(ctx, userID, now.Add(-s.cfg.ProfileLookback), s.cfg.ProfileMaxEvents)
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		UserID:           userID,
		Interests:        []uint64{},
		RecentCategories: []uint64{},
		FavoriteTags:     []uint64{},
		BuiltAt:          now,
	}

	if len(views) > 0 {
		articles, err := s.catalog.GetArticlesByIds(ctx, uniqueArticleIDs(views))
		if err != nil {
			return nil, err
		}
		fillProfile(profile, views, articles)
	}

	if err = redis.SetJSON(ctx, s.cache, profileKey(userID), profile, s.cfg.ProfileTTL); err != nil {
		log.WarnContext(ctx, "profile cache write failed", "user_id", userID, "err", err)
	}
	return profile, nil
}

func (s *profileServiceImpl) Invalidate(ctx context.Context, userID uint64) error {
	return s.cache.Delete(ctx, profileKey(userID))
}

// fillProfile 每条阅读记录计一次类目、时段与标签
func fillProfile(profile *model.UserProfile, views []*model.ArticleView, articles []*model.Article) {
	byID := make(map[uint64]*model.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}

	categories := make(map[uint64]int)
	tags := make(map[uint64]int)
	var hours [24]int

	for _, v := range views {
		hours[v.ViewedAt.Local().Hour()]++
		a, ok := byID[v.ArticleID]
		if !ok {
			continue
		}
		categories[a.CategoryID]++
		for _, t := range a.Tags {
			tags[t.ID]++
		}
	}

	profile.Interests = topN(categories, profileInterests)
	profile.RecentCategories = slices.Clone(profile.Interests[:min(len(profile.Interests), profileRecentCategories)])
	profile.FavoriteTags = topN(tags, profileFavoriteTags)
	profile.ActiveLevel = min(activeLevelMax, len(views)*activeLevelPerView)

	// 众数小时，相同时取更早的
	modal := 0
	for h := 1; h < 24; h++ {
		if hours[h] > hours[modal] {
			modal = h
		}
	}
	profile.ReadingTimeBucket = model.ReadingBucket(modal)
}

// topN 计数降序, ID 升序
func topN(counts map[uint64]int, n int) []uint64 {
	ids := make([]uint64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

func uniqueArticleIDs(views []*model.ArticleView) []uint64 {
	seen := make(map[uint64]struct{}, len(views))
	ids := make([]uint64, 0, len(views))
	for _, v := range views {
		if _, ok := seen[v.ArticleID]; !ok {
			seen[v.ArticleID] = struct{}{}
			ids = append(ids, v.ArticleID)
		}
	}
	return ids
}

func profileKey(userID uint64) string {
	return consts.UserProfileKey + strconv.FormatUint(userID, 10)
}
