package model

import "time"

type Tag struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_tag_name" json:"name"`
	Description *string   `gorm:"type:varchar(255)" json:"description,omitempty"` // 默认可为空
	CreatedAt   time.Time `json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}
