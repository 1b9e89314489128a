package testkit

import (
	"Pressroom/internal/model"
	"time"
)

// Epoch 测试数据的基准时间
var Epoch = time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)

// ArticleOpt 修改测试文章
type ArticleOpt func(*model.Article)

// NewArticle 默认已发布、创建于 Epoch
func NewArticle(id, categoryID uint64, title string, opts ...ArticleOpt) *model.Article {
	a := &model.Article{
		ID:         id,
		CategoryID: categoryID,
		Title:      title,
		Status:     model.ArticleStatusPublished,
		CreatedAt:  Epoch,
		UpdatedAt:  Epoch,
		Category:   model.Category{ID: categoryID},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func WithCounters(views, likes, comments int64) ArticleOpt {
	return func(a *model.Article) {
		a.ViewCount, a.LikeCount, a.CommentCount = views, likes, comments
	}
}

func WithTags(tagIDs ...uint64) ArticleOpt {
	return func(a *model.Article) {
		for _, id := range tagIDs {
			a.Tags = append(a.Tags, model.Tag{ID: id})
		}
	}
}

func CreatedAt(t time.Time) ArticleOpt {
	return func(a *model.Article) {
		a.CreatedAt = t
	}
}

func WithStatus(status int8) ArticleOpt {
	return func(a *model.Article) {
		a.Status = status
	}
}

// View 构造阅读记录
func View(userID, articleID uint64, at time.Time) *model.ArticleView {
	return &model.ArticleView{UserID: userID, ArticleID: articleID, ViewedAt: at}
}
