package dto

// CommentCreateRequest 发表评论请求，表单与 JSON 均可
type CommentCreateRequest struct {
	Text      string `json:"text" form:"text" binding:"max=2000"`
	GuestName string `json:"guest_name" form:"guest_name" binding:"max=80"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID               int64   `json:"id"`
	GuestName        string  `json:"guest_name"`
	User             *string `json:"user"`
	DisplayName      string  `json:"display_name"`
	Text             string  `json:"text"`
	CreatedAtDisplay string  `json:"created_at_display"`
	CreatedAtISO     string  `json:"created_at_iso"`
}

// CommentFeedData 评论轮询结果
type CommentFeedData struct {
	Comments    []CommentInfo `json:"comments"`
	Count       int64         `json:"count"`
	TotalViews  int64         `json:"total_views"`
	LiveViewers int64         `json:"live_viewers"`
}

// CommentCreatedData 发表评论后的返回
type CommentCreatedData struct {
	Count         int64       `json:"count"`
	LatestComment CommentInfo `json:"latest_comment"`
}

// CountData 通用计数返回
type CountData struct {
	Count int64 `json:"count"`
}
