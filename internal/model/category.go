package model

import "time"

type Category struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_category_name" json:"name"`
	ParentID  uint64    `gorm:"not null;default:0" json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
