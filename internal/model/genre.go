package model

// Genre 电影类型
type Genre struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;comment:类型ID" json:"id"`
	Name string `gorm:"size:60;not null;uniqueIndex;comment:类型名称" json:"name"`
}

func (Genre) TableName() string {
	return "genres"
}
