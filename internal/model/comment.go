package model

import "time"

// Comment 评论模型，未登录访客使用 GuestName 署名
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	MovieID   int64     `gorm:"not null;index:idx_comments_movie_id;comment:电影ID" json:"movie_id"`
	UserID    *int64    `gorm:"index:idx_comments_user_id;comment:评论用户ID" json:"user_id"`
	GuestName string    `gorm:"size:80;not null;default:'';comment:访客昵称" json:"guest_name"`
	Text      string    `gorm:"type:text;not null;comment:评论内容" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_created_at;comment:评论时间" json:"created_at"`

	// 关联关系
	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// DisplayName 登录用户显示用户名，否则显示访客昵称，都没有时为 Guest
func (c *Comment) DisplayName() string {
	if c.User != nil && c.User.UserName != "" {
		return c.User.UserName
	}
	if c.GuestName != "" {
		return c.GuestName
	}
	return "Guest"
}
