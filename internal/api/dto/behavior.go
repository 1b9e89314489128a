package dto

// ActionDTO 互动事件上报
type ActionDTO struct {
	ArticleID uint64 `json:"article_id" binding:"required"`
	Action    string `json:"action" binding:"required" validate:"oneof=like share comment"`
}
