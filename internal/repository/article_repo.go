package repository

import (
	"Pressroom/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ArticleOrder 列表排序方式
type ArticleOrder int

const (
	OrderByViews ArticleOrder = iota
	OrderByCreatedAt
	OrderByHotScore
)

// hotScoreExpr 与 model.Article.HotScore 保持一致
const hotScoreExpr = "(0.5 * view_count + 3 * comment_count + 2 * like_count) DESC"

// ArticleFilter 列表过滤条件，空字段表示不限制
type ArticleFilter struct {
	CategoryIDs        []uint64
	ExcludeCategoryIDs []uint64
	TagIDs             []uint64 // 至少命中一个标签
	ExcludeIDs         []uint64
}

// ArticleRepo 内容目录只读访问
type ArticleRepo interface {
	GetArticle(ctx context.Context, id uint64) (*model.Article, error)
	ListArticles(ctx context.Context, filter ArticleFilter, order ArticleOrder, limit int) ([]*model.Article, error)
	GetArticlesByIds(ctx context.Context, ids []uint64) ([]*model.Article, error)
}

type ArticleRepoImpl struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) ArticleRepo {
	return &ArticleRepoImpl{db}
}

func (s *ArticleRepoImpl) GetArticle(ctx context.Context, id uint64) (*model.Article, error) {
	var article model.Article
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// ListArticles 只返回已发布文章
func (s *ArticleRepoImpl) ListArticles(ctx context.Context, filter ArticleFilter, order ArticleOrder, limit int) ([]*model.Article, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := s.db.WithContext(ctx).Model(&model.Article{}).
		Preload("Category").
		Preload("Tags").
		Where("status = ? AND is_deleted = ?", model.ArticleStatusPublished, false)

	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.ExcludeCategoryIDs) > 0 {
		query = query.Where("category_id NOT IN ?", filter.ExcludeCategoryIDs)
	}
	if len(filter.TagIDs) > 0 {
		sub := s.db.Model(&model.ArticleTag{}).Select("article_id").Where("tag_id IN ?", filter.TagIDs)
		query = query.Where("id IN (?)", sub)
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filter.ExcludeIDs)
	}

	switch order {
	case OrderByCreatedAt:
		query = query.Order("created_at DESC").Order("id ASC")
	case OrderByHotScore:
		query = query.Order(hotScoreExpr).Order("view_count DESC").Order("id ASC")
	default:
		query = query.Order("view_count DESC").Order("id ASC")
	}

	var articles []*model.Article
	err := query.Limit(limit).Find(&articles).Error
	return articles, err
}

// GetArticlesByIds 不保证顺序，也不过滤状态
func (s *ArticleRepoImpl) GetArticlesByIds(ctx context.Context, ids []uint64) ([]*model.Article, error) {
	if len(ids) == 0 {
		return []*model.Article{}, nil
	}
	var articles []*model.Article
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("id IN ?", ids).
		Find(&articles).Error
	return articles, err
}
