package dto

// WatchStartedData 开始观看返回
type WatchStartedData struct {
	WatchID int64  `json:"watch_id"`
	Status  string `json:"status"`
}

// WatchStoppedData 结束观看返回，duration 为 HH:MM:SS，小时可超过 24
type WatchStoppedData struct {
	Status   string `json:"status"`
	Duration string `json:"duration"`
}
