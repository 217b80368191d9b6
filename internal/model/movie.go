package model

import "time"

// Movie 电影模型
// TotalViews / DownloadCount 是 WatchHistory / DownloadHistory 行数的冗余计数，
// 只允许通过列级原子自增或对账任务修改。
type Movie struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;comment:电影ID" json:"id"`
	Name          string    `gorm:"size:200;not null;index:idx_movies_name;comment:片名" json:"name"`
	Description   string    `gorm:"type:text;comment:简介" json:"description"`
	GenreID       *int64    `gorm:"index:idx_movies_genre_id;comment:类型ID" json:"genre_id"`
	ImageURL      string    `gorm:"size:500;comment:海报地址" json:"image_url"`
	VideoURL      string    `gorm:"size:500;comment:播放地址" json:"video_url"`
	DownloadURL   string    `gorm:"size:500;comment:下载地址" json:"download_url"`
	TotalViews    int64     `gorm:"not null;default:0;comment:播放次数" json:"total_views"`
	DownloadCount int64     `gorm:"not null;default:0;comment:下载次数" json:"download_count"`
	UploadedAt    time.Time `gorm:"autoCreateTime;index:idx_movies_uploaded_at;comment:上传时间" json:"uploaded_at"`

	// 关联关系
	Genre *Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:SET NULL" json:"genre,omitempty"`
}

func (Movie) TableName() string {
	return "movies"
}

// GenreName 返回类型名称，未设置时为空串
func (m *Movie) GenreName() string {
	if m.Genre == nil {
		return ""
	}
	return m.Genre.Name
}
