package model

// All 返回需要自动迁移的全部模型，顺序满足外键依赖
func All() []interface{} {
	return []interface{}{
		&User{},
		&Genre{},
		&Movie{},
		&Comment{},
		&WatchHistory{},
		&DownloadHistory{},
		&Visitor{},
	}
}
