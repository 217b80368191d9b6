package model

import "time"

// DownloadHistory 下载记录，只追加
type DownloadHistory struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:下载记录ID" json:"id"`
	MovieID      int64     `gorm:"not null;index:idx_download_histories_movie_id;comment:电影ID" json:"movie_id"`
	UserID       *int64    `gorm:"comment:用户ID" json:"user_id"`
	IPAddress    string    `gorm:"size:45;not null;comment:客户端IP" json:"ip_address"`
	DownloadedAt time.Time `gorm:"not null;index:idx_download_histories_downloaded_at;comment:下载时间" json:"downloaded_at"`

	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (DownloadHistory) TableName() string {
	return "download_histories"
}
