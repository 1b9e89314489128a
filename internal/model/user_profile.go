package model

import "time"

const (
	ReadingMorning   = "morning"
	ReadingAfternoon = "afternoon"
	ReadingEvening   = "evening"
	ReadingNight     = "night"
)

// UserProfile 用户兴趣画像，由阅读事件推导，只存在于缓存
type UserProfile struct {
	UserID            uint64    `json:"user_id"`
	Interests         []uint64  `json:"interests"`
	RecentCategories  []uint64  `json:"recent_categories"`
	ReadingTimeBucket string    `json:"reading_time_bucket"`
	ActiveLevel       int       `json:"active_level"`
	FavoriteTags      []uint64  `json:"favorite_tags"`
	BuiltAt           time.Time `json:"built_at"`
}

// Cold 没有任何兴趣数据
func (p *UserProfile) Cold() bool {
	return p == nil || len(p.Interests) == 0
}

// ReadingBucket 小时 -> 阅读时段
func ReadingBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return ReadingMorning
	case hour >= 12 && hour < 18:
		return ReadingAfternoon
	case hour >= 18 && hour < 23:
		return ReadingEvening
	default:
		return ReadingNight
	}
}
