package model

import (
	"time"
)

const (
	ActionLike    = "like"
	ActionShare   = "share"
	ActionComment = "comment"
)

// ArticleAction 互动事件 (点赞/分享/评论)，只追加不修改
type ArticleAction struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_created,priority:1" json:"userId"`
	Action    string    `gorm:"type:varchar(16);not null" json:"action"`
	ArticleID uint64    `gorm:"not null;index:idx_article_id" json:"articleId"`
	CreatedAt time.Time `gorm:"not null;index:idx_user_created,priority:2" json:"createdAt"`
}

func (ArticleAction) TableName() string {
	return "article_actions"
}

// ValidAction 是否为支持的互动类型
func ValidAction(action string) bool {
	switch action {
	case ActionLike, ActionShare, ActionComment:
		return true
	default:
		return false
	}
}
