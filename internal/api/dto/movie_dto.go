package dto

import "time"

// HomeRequest 首页筛选参数
type HomeRequest struct {
	Q     string `form:"q"`
	Genre string `form:"genre"`
	Sort  string `form:"sort"` // trending, new
}

// MovieInfo 电影信息
type MovieInfo struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Genre         string    `json:"genre"`
	ImageURL      string    `json:"image_url"`
	VideoURL      string    `json:"video_url"`
	DownloadURL   string    `json:"download_url"`
	TotalViews    int64     `json:"total_views"`
	DownloadCount int64     `json:"download_count"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// HomeData 首页数据
type HomeData struct {
	SearchQuery   string      `json:"search_query"`
	SelectedGenre string      `json:"selected_genre"`
	SelectedSort  string      `json:"selected_sort"`
	Trending      []MovieInfo `json:"trending_movies"`
	NewReleases   []MovieInfo `json:"new_releases"`
	Movies        []MovieInfo `json:"movies"`
	Genres        []string    `json:"genres"`
	TotalMovies   int64       `json:"total_movies"`
}

// WatchPageData 观看页数据
type WatchPageData struct {
	Movie         MovieInfo     `json:"movie"`
	Comments      []CommentInfo `json:"comments"`
	LastCommentID int64         `json:"last_comment_id"`
	TotalViews    int64         `json:"total_views"`
	LiveViewers   int64         `json:"live_viewers"`
}

// LatestMovie 最近上传的电影
type LatestMovie struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Genre       string `json:"genre"`
	DownloadURL string `json:"download_url"`
}

// MovieCreateRequest 新增电影请求（管理员）
type MovieCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Genre       string `json:"genre" binding:"max=60"`
	ImageURL    string `json:"image_url" binding:"max=500"`
	VideoURL    string `json:"video_url" binding:"max=500"`
	DownloadURL string `json:"download_url" binding:"max=500"`
}
