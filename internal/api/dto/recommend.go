package dto

// RecommendQueryDTO 推荐查询参数，非法值、未知策略与超范围条数都由服务端纠正
// 用户身份只取自 Token，不接受查询参数
type RecommendQueryDTO struct {
	Strategy  string `form:"strategy"`
	ArticleID uint64 `form:"article_id"`
	Limit     int    `form:"limit"`
}

// CategoryDTO 类目
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ArticleSummaryDTO 推荐结果中的文章摘要
type ArticleSummaryDTO struct {
	ID           uint64      `json:"id"`
	Title        string      `json:"title"`
	CoverURL     string      `json:"cover_url"`
	CategoryID   uint64      `json:"category_id"`
	Category     CategoryDTO `json:"category"`
	ViewCount    int64       `json:"view_count"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	PublishedAt  string      `json:"created_at"`
}
