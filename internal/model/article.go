package model

import (
	"time"
)

const (
	ArticleStatusDraft     int8 = 0
	ArticleStatusPublished int8 = 1
	ArticleStatusOffline   int8 = 2
)

type Article struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	CategoryID   uint64    `gorm:"not null;index:idx_category_id" json:"category_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	CoverURL     string    `gorm:"type:varchar(512)" json:"cover_url"`
	ViewCount    int64     `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int64     `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64     `gorm:"not null;default:0" json:"comment_count"`
	Status       int8      `gorm:"not null;default:0;index:idx_status_created,priority:1" json:"status"` // 0:草稿, 1:已发布, 2:下线
	IsDeleted    bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt    time.Time `gorm:"index:idx_status_created,priority:2" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联关系
	Category Category `gorm:"foreignKey:CategoryID;references:ID" json:"category"`
	Tags     []Tag    `gorm:"many2many:article_tags;joinForeignKey:ArticleID;joinReferences:TagID" json:"tags"`
}

func (Article) TableName() string {
	return "articles"
}

// Published 已发布且未删除
func (a *Article) Published() bool {
	return a.Status == ArticleStatusPublished && !a.IsDeleted
}

// TagIDs 文章的标签 ID，保持关联顺序
func (a *Article) TagIDs() []uint64 {
	ids := make([]uint64, 0, len(a.Tags))
	for _, t := range a.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// HotScore 热度分 = 0.5*浏览 + 3*评论 + 2*点赞
func (a *Article) HotScore() float64 {
	return 0.5*float64(a.ViewCount) + 3*float64(a.CommentCount) + 2*float64(a.LikeCount)
}
