package model

import (
	"time"
)

// ArticleView 阅读事件，只追加不修改
type ArticleView struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_viewed,priority:1" json:"userId"`
	ArticleID uint64    `gorm:"not null;index:idx_article_id" json:"articleId"`
	Duration  int       `gorm:"not null;default:0" json:"duration"` // 阅读时长(秒)
	ViewedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_user_viewed,priority:2" json:"viewedAt"`
}

func (ArticleView) TableName() string {
	return "article_views"
}
