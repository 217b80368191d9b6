package dto

// MovieSuggestion 搜索建议项
type MovieSuggestion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchSyncData 全量同步搜索索引结果
type SearchSyncData struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
