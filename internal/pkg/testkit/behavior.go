package testkit

import (
	"Pressroom/internal/model"
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

// BehaviorLog 内存版 BehaviorRepo
type BehaviorLog struct {
	mu      sync.Mutex
	views   []*model.ArticleView
	actions []*model.ArticleAction
	nextID  uint64
	faults
}

func NewBehaviorLog() *BehaviorLog {
	return &BehaviorLog{}
}

// Seed 直接写入阅读记录，不做去重
func (b *BehaviorLog) Seed(views ...*model.ArticleView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range views {
		b.nextID++
		v.ID = b.nextID
		b.views = append(b.views, v)
	}
}

// Views 某用户对某文章的全部阅读记录
func (b *BehaviorLog) Views(userID, articleID uint64) []*model.ArticleView {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*model.ArticleView
	for _, v := range b.views {
		if v.UserID == userID && v.ArticleID == articleID {
			out = append(out, v)
		}
	}
	return out
}

func (b *BehaviorLog) Actions() []*model.ArticleAction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.actions)
}

func (b *BehaviorLog) AppendView(_ context.Context, view *model.ArticleView, window time.Duration) (bool, error) {
	if err := b.hit("AppendView"); err != nil {
		return false, err
	}
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	cutoff := view.ViewedAt.Add(-window)
	for _, v := range b.views {
		if v.UserID == view.UserID && v.ArticleID == view.ArticleID && v.ViewedAt.After(cutoff) {
			return false, nil
		}
	}
	b.nextID++
	view.ID = b.nextID
	b.views = append(b.views, view)
	return true, nil
}

func (b *BehaviorLog) ListViews(_ context.Context, userID uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	if err := b.hit("ListViews"); err != nil {
		return nil, err
	}
	return b.filter(func(v *model.ArticleView) bool {
		return v.UserID == userID && !v.ViewedAt.Before(since)
	}, limit), nil
}

func (b *BehaviorLog) ListViewsByArticles(_ context.Context, articleIDs []uint64, excludeUserID uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	if err := b.hit("ListViewsByArticles"); err != nil {
		return nil, err
	}
	return b.filter(func(v *model.ArticleView) bool {
		return v.UserID != excludeUserID && slices.Contains(articleIDs, v.ArticleID) && !v.ViewedAt.Before(since)
	}, limit), nil
}

func (b *BehaviorLog) ListViewsByUsers(_ context.Context, userIDs []uint64, since time.Time, limit int) ([]*model.ArticleView, error) {
	if err := b.hit("ListViewsByUsers"); err != nil {
		return nil, err
	}
	return b.filter(func(v *model.ArticleView) bool {
		return slices.Contains(userIDs, v.UserID) && !v.ViewedAt.Before(since)
	}, limit), nil
}

func (b *BehaviorLog) AppendAction(_ context.Context, action *model.ArticleAction) error {
	if err := b.hit("AppendAction"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}
	b.actions = append(b.actions, action)
	return nil
}

// filter 按 viewed_at 倒序返回
func (b *BehaviorLog) filter(keep func(*model.ArticleView) bool, limit int) []*model.ArticleView {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*model.ArticleView
	for _, v := range b.views {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ViewedAt.After(out[j].ViewedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
