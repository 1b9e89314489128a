package model

type ArticleTag struct {
	ArticleID uint64 `gorm:"primaryKey" json:"articleId"`
	TagID     uint64 `gorm:"primaryKey;index:idx_tag_id" json:"tagId"`
}

func (ArticleTag) TableName() string {
	return "article_tags"
}
