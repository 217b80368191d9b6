package model

import "time"

// Visitor 访客，每个 IP 一行
// 与 WatchHistory 没有外键，按 ip_address 软关联
type Visitor struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:访客ID" json:"id"`
	IPAddress  string    `gorm:"size:45;not null;uniqueIndex:uq_visitors_ip_address;comment:IP地址" json:"ip_address"`
	Country    string    `gorm:"size:100;not null;default:'';comment:国家" json:"country"`
	City       string    `gorm:"size:100;not null;default:'';comment:城市" json:"city"`
	Lat        float64   `gorm:"not null;default:0;comment:纬度" json:"lat"`
	Lng        float64   `gorm:"not null;default:0;comment:经度" json:"lng"`
	FirstVisit time.Time `gorm:"not null;comment:首次访问" json:"first_visit"`
	LastVisit  time.Time `gorm:"not null;index:idx_visitors_last_visit;comment:最近访问" json:"last_visit"`
	Known      bool      `gorm:"not null;default:false;comment:是否已知访客" json:"known"`
	VisitCount int64     `gorm:"not null;default:1;comment:访问次数" json:"visit_count"`
}

func (Visitor) TableName() string {
	return "visitors"
}
