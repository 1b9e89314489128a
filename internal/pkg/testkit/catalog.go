package testkit

import (
	"Pressroom/internal/model"
	"Pressroom/internal/repository"
	"context"
	"slices"
	"sort"
	"sync"
)

// Catalog 内存版 ArticleRepo，排序规则与 SQL 实现一致
type Catalog struct {
	mu       sync.Mutex
	articles map[uint64]*model.Article
	faults
}

func NewCatalog(articles ...*model.Article) *Catalog {
	c := &Catalog{articles: make(map[uint64]*model.Article)}
	c.Add(articles...)
	return c
}

func (c *Catalog) Add(articles ...*model.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range articles {
		c.articles[a.ID] = a
	}
}

func (c *Catalog) GetArticle(_ context.Context, id uint64) (*model.Article, error) {
	if err := c.hit("GetArticle"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.articles[id]
	if !ok || a.IsDeleted {
		return nil, nil
	}
	return a, nil
}

func (c *Catalog) ListArticles(_ context.Context, filter repository.ArticleFilter, order repository.ArticleOrder, limit int) ([]*model.Article, error) {
	if err := c.hit("ListArticles"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	c.mu.Lock()
	var out []*model.Article
	for _, a := range c.articles {
		if !a.Published() || !matches(a, filter) {
			continue
		}
		out = append(out, a)
	}
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch order {
		case repository.OrderByCreatedAt:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID < b.ID
		case repository.OrderByHotScore:
			if a.HotScore() != b.HotScore() {
				return a.HotScore() > b.HotScore()
			}
		}
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		return a.ID < b.ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Catalog) GetArticlesByIds(_ context.Context, ids []uint64) ([]*model.Article, error) {
	if err := c.hit("GetArticlesByIds"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := c.articles[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func matches(a *model.Article, f repository.ArticleFilter) bool {
	if len(f.CategoryIDs) > 0 && !slices.Contains(f.CategoryIDs, a.CategoryID) {
		return false
	}
	if slices.Contains(f.ExcludeCategoryIDs, a.CategoryID) {
		return false
	}
	if slices.Contains(f.ExcludeIDs, a.ID) {
		return false
	}
	if len(f.TagIDs) > 0 {
		for _, t := range a.Tags {
			if slices.Contains(f.TagIDs, t.ID) {
				return true
			}
		}
		return false
	}
	return true
}
